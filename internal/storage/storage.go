package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyOptions = "options"
	keyStats   = "stats"
)

// EngineOptions are the persisted analysis defaults.
type EngineOptions struct {
	HashSizeMB   int           `json:"hash_size_mb"`
	SearchDepth  int           `json:"search_depth"`
	MoveTime     time.Duration `json:"move_time"`
	LastAnalyzed time.Time     `json:"last_analyzed"`
}

// DefaultOptions returns the options used when nothing has been saved.
func DefaultOptions() *EngineOptions {
	return &EngineOptions{
		HashSizeMB:  64,
		SearchDepth: 6,
		MoveTime:    5 * time.Second,
	}
}

// AnalyzeStats accumulates analysis totals across runs.
type AnalyzeStats struct {
	Analyses      int           `json:"analyses"`
	TotalNodes    uint64        `json:"total_nodes"`
	TotalTime     time.Duration `json:"total_time"`
	DeepestSearch int           `json:"deepest_search"`
	MatesFound    int           `json:"mates_found"`
}

// AnalyzeRecord is one completed analysis to fold into the stats.
type AnalyzeRecord struct {
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	Mate    bool
}

// Storage wraps BadgerDB. Values are JSON documents keyed by name.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the store in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the store at the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOptions persists the engine options.
func (s *Storage) SaveOptions(opts *EngineOptions) error {
	opts.LastAnalyzed = time.Now()
	return s.put(keyOptions, opts)
}

// LoadOptions loads the engine options, falling back to defaults when
// nothing has been saved.
func (s *Storage) LoadOptions() (*EngineOptions, error) {
	opts := DefaultOptions()
	if err := s.get(keyOptions, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// SaveStats persists the analysis totals.
func (s *Storage) SaveStats(stats *AnalyzeStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads the analysis totals, empty when nothing has been saved.
func (s *Storage) LoadStats() (*AnalyzeStats, error) {
	stats := &AnalyzeStats{}
	if err := s.get(keyStats, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordAnalysis folds one completed analysis into the stored totals.
func (s *Storage) RecordAnalysis(rec AnalyzeRecord) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Analyses++
	stats.TotalNodes += rec.Nodes
	stats.TotalTime += rec.Elapsed
	if rec.Depth > stats.DeepestSearch {
		stats.DeepestSearch = rec.Depth
	}
	if rec.Mate {
		stats.MatesFound++
	}

	return s.SaveStats(stats)
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get unmarshals into v, leaving it untouched when the key is absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
