package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences    = "preferences"
	keyStats          = "stats"
	solutionKeyPrefix = "soln:"
)

// Preferences stores solver settings that survive across runs.
type Preferences struct {
	DefaultAlgorithm int       `json:"default_algorithm"`
	CacheEnabled     bool      `json:"cache_enabled"`
	LastSolved       time.Time `json:"last_solved"`
}

// DefaultPreferences returns the out-of-the-box solver settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		DefaultAlgorithm: 3,
		CacheEnabled:     true,
	}
}

// SolveStats stores cumulative solver statistics.
type SolveStats struct {
	Attempts      int            `json:"attempts"`
	Solves        int            `json:"solves"`
	TotalExpanded uint64         `json:"total_expanded"`
	TotalTime     time.Duration  `json:"total_time"`
	SolvesByLabel map[string]int `json:"solves_by_label"`
}

// NewSolveStats returns empty statistics.
func NewSolveStats() *SolveStats {
	return &SolveStats{
		SolvesByLabel: make(map[string]int),
	}
}

// SolveRate returns the fraction of attempts that solved, as a percentage.
func (s *SolveStats) SolveRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Solves) / float64(s.Attempts) * 100
}

// CachedSolution is a finished solution stored under the hash of the map
// content. Only solutions are cached; the explored set is never persisted.
type CachedSolution struct {
	Trail   string    `json:"trail"`
	Label   string    `json:"label"`
	Steps   int       `json:"steps"`
	SavedAt time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent solver state.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves solver preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads solver preferences, returning defaults if not found.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// UpdateDefaultAlgorithm stores a new default algorithm. Values outside the
// recognized 1..3 range are ignored and the previous value retained.
func (s *Storage) UpdateDefaultAlgorithm(algorithm int) error {
	if algorithm < 1 || algorithm > 3 {
		return nil
	}
	prefs, err := s.LoadPreferences()
	if err != nil {
		return err
	}
	prefs.DefaultAlgorithm = algorithm
	return s.SavePreferences(prefs)
}

// SaveStats saves solver statistics.
func (s *Storage) SaveStats(stats *SolveStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads solver statistics, returning empty stats if not found.
func (s *Storage) LoadStats() (*SolveStats, error) {
	stats := NewSolveStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordSolve records a finished solver run and updates statistics.
func (s *Storage) RecordSolve(label string, solved bool, expanded uint64, elapsed time.Duration) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Attempts++
	stats.TotalExpanded += expanded
	stats.TotalTime += elapsed
	if solved {
		stats.Solves++
		if stats.SolvesByLabel == nil {
			stats.SolvesByLabel = make(map[string]int)
		}
		stats.SolvesByLabel[label]++
	}

	return s.SaveStats(stats)
}

// solutionKey derives the cache key for a map's raw content.
func solutionKey(mapContent []byte) []byte {
	return []byte(fmt.Sprintf("%s%016x", solutionKeyPrefix, xxhash.Sum64(mapContent)))
}

// SaveSolution caches a finished solution under the map content hash.
func (s *Storage) SaveSolution(mapContent []byte, sol CachedSolution) error {
	sol.SavedAt = time.Now()
	data, err := json.Marshal(sol)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(solutionKey(mapContent), data)
	})
}

// LookupSolution returns the cached solution for a map, if any.
func (s *Storage) LookupSolution(mapContent []byte) (CachedSolution, bool, error) {
	var sol CachedSolution
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(solutionKey(mapContent))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &sol); err != nil {
				return err
			}
			found = true
			return nil
		})
	})

	return sol, found, err
}
