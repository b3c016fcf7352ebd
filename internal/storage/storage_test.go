package storage

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Storage {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func TestPreferences(t *testing.T) {
	store := openTestStore(t)

	t.Run("Defaults", func(t *testing.T) {
		prefs, err := store.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if prefs.DefaultAlgorithm != 3 {
			t.Errorf("DefaultAlgorithm = %d, want 3", prefs.DefaultAlgorithm)
		}
		if !prefs.CacheEnabled {
			t.Error("Expected cache enabled by default")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		prefs := DefaultPreferences()
		prefs.DefaultAlgorithm = 2
		prefs.CacheEnabled = false
		if err := store.SavePreferences(prefs); err != nil {
			t.Fatalf("SavePreferences failed: %v", err)
		}

		loaded, err := store.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if loaded.DefaultAlgorithm != 2 || loaded.CacheEnabled {
			t.Errorf("Loaded %+v, want algorithm 2 and cache disabled", loaded)
		}
	})

	t.Run("OutOfRangeAlgorithmIgnored", func(t *testing.T) {
		if err := store.UpdateDefaultAlgorithm(5); err != nil {
			t.Fatalf("UpdateDefaultAlgorithm failed: %v", err)
		}
		prefs, err := store.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if prefs.DefaultAlgorithm != 2 {
			t.Errorf("DefaultAlgorithm = %d, out-of-range update must retain previous value", prefs.DefaultAlgorithm)
		}

		if err := store.UpdateDefaultAlgorithm(1); err != nil {
			t.Fatalf("UpdateDefaultAlgorithm failed: %v", err)
		}
		prefs, err = store.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if prefs.DefaultAlgorithm != 1 {
			t.Errorf("DefaultAlgorithm = %d, want 1", prefs.DefaultAlgorithm)
		}
	})
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.Attempts != 0 {
		t.Errorf("Fresh stats report %d attempts", stats.Attempts)
	}
	if stats.SolveRate() != 0 {
		t.Errorf("Fresh stats report %.2f%% solve rate", stats.SolveRate())
	}

	if err := store.RecordSolve("Algorithm3-IW(1)", true, 42, 100*time.Millisecond); err != nil {
		t.Fatalf("RecordSolve failed: %v", err)
	}
	if err := store.RecordSolve("Algorithm3-UCS (no solution)", false, 7, 50*time.Millisecond); err != nil {
		t.Fatalf("RecordSolve failed: %v", err)
	}

	stats, err = store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.Attempts != 2 || stats.Solves != 1 {
		t.Errorf("Attempts/Solves = %d/%d, want 2/1", stats.Attempts, stats.Solves)
	}
	if stats.TotalExpanded != 49 {
		t.Errorf("TotalExpanded = %d, want 49", stats.TotalExpanded)
	}
	if stats.SolvesByLabel["Algorithm3-IW(1)"] != 1 {
		t.Errorf("SolvesByLabel = %v", stats.SolvesByLabel)
	}
	if stats.SolveRate() != 50 {
		t.Errorf("SolveRate() = %.2f, want 50", stats.SolveRate())
	}
}

func TestSolutionCache(t *testing.T) {
	store := openTestStore(t)

	mapContent := []byte("0 G \n")

	_, found, err := store.LookupSolution(mapContent)
	if err != nil {
		t.Fatalf("LookupSolution failed: %v", err)
	}
	if found {
		t.Fatal("Lookup hit on an empty cache")
	}

	sol := CachedSolution{Trail: "0r0r", Label: "Algorithm2-UCS", Steps: 2}
	if err := store.SaveSolution(mapContent, sol); err != nil {
		t.Fatalf("SaveSolution failed: %v", err)
	}

	got, found, err := store.LookupSolution(mapContent)
	if err != nil {
		t.Fatalf("LookupSolution failed: %v", err)
	}
	if !found {
		t.Fatal("Lookup missed a cached solution")
	}
	if got.Trail != "0r0r" || got.Steps != 2 {
		t.Errorf("Cached solution = %+v", got)
	}
	if got.SavedAt.IsZero() {
		t.Error("SavedAt not stamped on save")
	}

	// A different map must not hit the same entry.
	_, found, err = store.LookupSolution([]byte("0G \n"))
	if err != nil {
		t.Fatalf("LookupSolution failed: %v", err)
	}
	if found {
		t.Error("Lookup hit for different map content")
	}
}
