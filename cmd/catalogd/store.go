package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/catalog"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
)

// errNotLoaded is served until a valid catalog file has been read
var errNotLoaded = errors.New("catalog not loaded")

// Store holds the last valid catalog body. The body is served verbatim;
// decoding only validates it.
type Store struct {
	path    string
	metrics *Metrics

	mu       sync.RWMutex
	body     []byte
	songs    int
	loadedAt time.Time
	lastErr  error
}

// NewStore creates an empty store for the file at path
func NewStore(path string, metrics *Metrics) *Store {
	return &Store{path: path, metrics: metrics, lastErr: errNotLoaded}
}

// Reload reads the file again. An unreadable or invalid file leaves the
// published catalog untouched.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.metrics.Reloads.WithLabelValues("read_error").Inc()
		s.fail(fmt.Errorf("reading %s: %w", s.path, err))
		return err
	}

	songs, report, err := catalog.DecodeBytes(data)
	if err != nil {
		s.metrics.Reloads.WithLabelValues("invalid").Inc()
		logging.Warn().Err(err).Str("path", s.path).Msg("Rejecting catalog file; keeping the last good one")
		s.mu.Lock()
		if s.body == nil {
			s.lastErr = err
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.body = data
	s.songs = len(songs)
	s.loadedAt = time.Now()
	s.lastErr = nil
	s.mu.Unlock()

	s.metrics.Reloads.WithLabelValues("success").Inc()
	s.metrics.Songs.Set(float64(len(songs)))
	logging.Info().
		Str("path", s.path).
		Int("songs", len(songs)).
		Int("skipped", report.Skipped).
		Int("degraded", report.Degraded).
		Msg("Catalog loaded")
	return nil
}

func (s *Store) fail(err error) {
	logging.Error().Err(err).Msg("Catalog file unreadable")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.body == nil {
		s.lastErr = err
	}
}

// Body returns the published catalog, or the reason there is none
func (s *Store) Body() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.body == nil {
		return nil, s.lastErr
	}
	return s.body, nil
}

// Status describes the published catalog
func (s *Store) Status() (songs int, loadedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.songs, s.loadedAt
}
