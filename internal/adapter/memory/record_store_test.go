package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/pscheid92/pokedex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore_SeedAndList(t *testing.T) {
	store := NewRecordStore(domain.SeedRecords()...)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SeedRecords(), records)
}

func TestRecordStore_CreateAssignsNextID(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(domain.SeedRecords()...)

	record, err := store.Create(ctx, "Pikachu", "Electric")
	require.NoError(t, err)
	assert.Equal(t, domain.Record{ID: 4, Name: "Pikachu", Type: "Electric"}, record)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, record, records[3])
}

func TestRecordStore_EmptyStartsAtOne(t *testing.T) {
	store := NewRecordStore()

	record, err := store.Create(context.Background(), "Eevee", "Normal")
	require.NoError(t, err)
	assert.Equal(t, 1, record.ID)
}

func TestRecordStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(domain.SeedRecords()...)

	records, err := store.List(ctx)
	require.NoError(t, err)
	records[0].Name = "MissingNo"

	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bulbasaur", again[0].Name)
}

func TestRecordStore_SeedIsCopied(t *testing.T) {
	seed := domain.SeedRecords()
	store := NewRecordStore(seed...)
	seed[0].Name = "changed"

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bulbasaur", records[0].Name)
}

func TestRecordStore_ConcurrentCreateKeepsIDsSequential(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	const writers = 50
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, "Magikarp", "Water")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, writers)
	for i, r := range records {
		assert.Equal(t, i+1, r.ID)
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers, count)
}
