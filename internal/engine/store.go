package engine

import (
	"sync"
	"time"

	"salesdash/internal/models"
)

// Store owns the loaded dataset. The server starts with an empty store and
// the background loader swaps the dataset in once; every swap is a full
// replacement, never a partial update.
type Store struct {
	mu       sync.RWMutex
	data     *models.Dataset
	source   string
	loadedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// SetData replaces the dataset wholesale and records which source file won
// the fallback chain.
func (s *Store) SetData(d *models.Dataset, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
	s.source = source
	s.loadedAt = time.Now()
}

// Ready reports whether a dataset has been loaded.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data != nil
}

func (s *Store) Meta() (models.Meta, string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return models.Meta{}, "", time.Time{}
	}
	return s.data.Meta, s.source, s.loadedAt
}

// Records returns the full record list (nil-safe).
func (s *Store) Records() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil
	}
	return s.data.Records
}
