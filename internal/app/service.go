package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pscheid92/pokedex/internal/domain"
)

// CreateRecordRequest carries the decoded fields of a create-record submission.
type CreateRecordRequest struct {
	Name string
	Type string

	// CreatedBy is the submitting visitor's name, for the audit log only.
	CreatedBy string
}

// Service orchestrates the record use cases.
type Service struct {
	records domain.RecordRepository
}

func NewService(records domain.RecordRepository) *Service {
	return &Service{records: records}
}

// ListRecords returns every record in insertion order.
func (s *Service) ListRecords(ctx context.Context) ([]domain.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// CreateRecord appends a record and returns it with its assigned id.
func (s *Service) CreateRecord(ctx context.Context, req CreateRecordRequest) (*domain.Record, error) {
	record, err := s.records.Create(ctx, req.Name, req.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	slog.InfoContext(ctx, "Record created", "record_id", record.ID, "name", record.Name, "type", record.Type, "created_by", req.CreatedBy)
	return &record, nil
}

// CountRecords reports the collection size.
func (s *Service) CountRecords(ctx context.Context) (int, error) {
	n, err := s.records.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}
