package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/pscheid92/pokedex/internal/domain"
)

// RecordStore is an append-only, insertion-ordered record collection.
type RecordStore struct {
	mu      sync.RWMutex
	records []domain.Record
}

var _ domain.RecordRepository = (*RecordStore)(nil)

func NewRecordStore(seed ...domain.Record) *RecordStore {
	return &RecordStore{records: slices.Clone(seed)}
}

func (s *RecordStore) List(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

// Create appends a record with ID = len + 1. The length read and the
// append share one write lock.
func (s *RecordStore) Create(_ context.Context, name, recordType string) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := domain.Record{
		ID:   len(s.records) + 1,
		Name: name,
		Type: recordType,
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *RecordStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
