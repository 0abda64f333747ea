// Package store persists the lifetime statistics between runs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack-survival/internal/statistics"
)

// DefaultFile is the stats file name used when none is configured.
const DefaultFile = "stats.json"

// ErrMalformedStats reports a stats file that exists but cannot be used.
// Load recovers from it by starting over with an empty record.
var ErrMalformedStats = errors.New("malformed stats file")

// Record is the on-disk form of the statistics.
type Record struct {
	statistics.Stats
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// FileStore keeps the statistics in a single JSON file.
type FileStore struct {
	path   string
	clock  quartz.Clock
	logger *log.Logger
	mu     sync.Mutex
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock sets the clock used to stamp saved records.
func WithClock(clock quartz.Clock) Option {
	return func(s *FileStore) { s.clock = clock }
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger.WithPrefix("store")
		}
	}
}

// NewFileStore creates a store backed by path. The file and its directory
// are created on first save.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		clock:  quartz.NewReal(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns the stats file location under the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "blackjack-survival", DefaultFile), nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// LoadRecord reads the stored record. A missing file yields an empty record
// and no error. Unusable contents yield ErrMalformedStats.
func (s *FileStore) LoadRecord() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedStats, err)
	}
	if err := rec.Validate(); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedStats, err)
	}
	return rec, nil
}

// Load returns the stored statistics, falling back to an empty record when
// the file is missing or unusable.
func (s *FileStore) Load() statistics.Stats {
	rec, err := s.LoadRecord()
	if err != nil {
		s.logger.Warn("Starting with empty statistics", "path", s.path, "error", err)
		return statistics.Stats{}
	}
	return rec.Stats
}

// Save writes stats atomically, stamped with the current time.
func (s *FileStore) Save(stats statistics.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{Stats: stats, UpdatedAt: s.clock.Now().UTC()}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating stats directory: %w", err)
	}
	return writeFileAtomic(s.path, data, 0o644)
}

// StatsChanged saves the new record. Failures are logged and otherwise
// ignored so that a read-only disk never interrupts play.
func (s *FileStore) StatsChanged(stats statistics.Stats) {
	if err := s.Save(stats); err != nil {
		s.logger.Error("Failed to save statistics", "path", s.path, "error", err)
		return
	}
	s.logger.Debug("Saved statistics", "path", s.path, "games", stats.GamesPlayed)
}
