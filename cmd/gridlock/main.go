package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hailam/gridlock/internal/board"
	"github.com/hailam/gridlock/internal/search"
	"github.com/hailam/gridlock/internal/storage"
)

var (
	algorithmFlag = flag.Int("algorithm", 0, "solver algorithm: 1 fixed IW, 2 UCS, 3 iterative widening (default: stored preference)")
	dbDir         = flag.String("db", "", "data directory override")
	noCache       = flag.Bool("no-cache", false, "bypass the solution cache")
	noStore       = flag.Bool("no-store", false, "run without the persistent store")
	cpuprofile    = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: gridlock [flags] <map-file>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	mapPath := flag.Arg(0)
	content, err := os.ReadFile(mapPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	initial, err := board.LoadReader(bytes.NewReader(content))
	if err != nil {
		log.Fatalf("[Main] %s: %v", mapPath, err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		if loaded, err := store.LoadPreferences(); err != nil {
			log.Printf("[Main] Warning: failed to load preferences: %v", err)
		} else {
			prefs = loaded
		}
	}

	algorithm := search.Algorithm(prefs.DefaultAlgorithm)
	if *algorithmFlag != 0 {
		if a := search.Algorithm(*algorithmFlag); a.Valid() {
			algorithm = a
			if store != nil {
				if err := store.UpdateDefaultAlgorithm(*algorithmFlag); err != nil {
					log.Printf("[Main] Warning: failed to store algorithm preference: %v", err)
				}
			}
		} else {
			log.Printf("[Main] Ignoring out-of-range -algorithm %d, keeping %d", *algorithmFlag, int(algorithm))
		}
	}

	cacheEnabled := prefs.CacheEnabled && !*noCache && store != nil
	if cacheEnabled {
		if reported := tryCache(store, content, initial); reported {
			return
		}
	}

	solver := search.New(algorithm)
	outcome, err := solver.Solve(initial)
	if err != nil {
		log.Fatalf("[Main] Search aborted: %v", err)
	}

	search.WriteReport(os.Stdout, outcome)

	if store == nil {
		return
	}
	if err := store.RecordSolve(outcome.Label(), outcome.Solved, outcome.Expanded, outcome.Elapsed); err != nil {
		log.Printf("[Main] Warning: failed to record statistics: %v", err)
	}
	if outcome.Solved {
		prefs.LastSolved = time.Now()
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("[Main] Warning: failed to save preferences: %v", err)
		}
		if cacheEnabled {
			sol := storage.CachedSolution{
				Trail: outcome.Trail,
				Label: outcome.Label(),
				Steps: outcome.Steps(),
			}
			if err := store.SaveSolution(content, sol); err != nil {
				log.Printf("[Main] Warning: failed to cache solution: %v", err)
			}
		}
	}
}

// openStore opens the badger store, honoring -no-store and -db. A store
// failure degrades to a one-shot run rather than aborting the solve.
func openStore() *storage.Storage {
	if *noStore {
		return nil
	}

	var (
		store *storage.Storage
		err   error
	)
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.OpenDefault()
	}
	if err != nil {
		log.Printf("[Main] Warning: store unavailable: %v (running without persistence)", err)
		return nil
	}
	return store
}

// tryCache replays a cached solution against the freshly loaded board and
// reports it when it still wins. Returns true when a report was printed.
func tryCache(store *storage.Storage, content []byte, initial *board.Board) bool {
	sol, found, err := store.LookupSolution(content)
	if err != nil {
		log.Printf("[Main] Warning: cache lookup failed: %v", err)
		return false
	}
	if !found {
		return false
	}

	final, err := board.Replay(initial, sol.Trail)
	if err != nil || !final.Winning() {
		log.Printf("[Main] Warning: cached solution no longer replays, re-solving")
		return false
	}

	log.Printf("[Main] Cache hit, cached %s", sol.SavedAt.Format(time.RFC3339))
	fmt.Printf("Solution path: %s\n", sol.Trail)
	fmt.Printf("Number of pieces in the puzzle: %d\n", initial.NumPieces)
	fmt.Printf("Number of steps in solution: %d\n", sol.Steps)
	fmt.Printf("Number of empty spaces: %d\n", final.EmptyCells())
	fmt.Printf("Solved by %s (cached)\n", sol.Label)
	return true
}
