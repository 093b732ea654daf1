package domain

import "context"

// Record is a single catalogued creature.
type Record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RecordRepository is the append-only record collection.
// Create assigns ID = current length + 1; implementations must make the
// length read and the append atomic so ids stay sequential.
type RecordRepository interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, name, recordType string) (Record, error)
	Count(ctx context.Context) (int, error)
}

// SeedRecords returns the records a fresh collection starts with.
func SeedRecords() []Record {
	return []Record{
		{ID: 1, Name: "Bulbasaur", Type: "Grass"},
		{ID: 2, Name: "Charmander", Type: "Fire"},
		{ID: 3, Name: "Squirtle", Type: "Water"},
	}
}
