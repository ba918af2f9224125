package store

import (
	"context"
	"testing"

	"barhop/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeAggregatesReviewSet(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(kv.NewMemory())

	require.NoError(t, storage.Venues.Create(ctx, testVenue("v1", "Le Zinc")))

	addAndRecompute := func(id string, rating int) {
		require.NoError(t, storage.Reviews.Create(ctx, testReview(id, "v1", rating)))
		require.NoError(t, storage.Ratings.Recompute(ctx, "v1"))
	}

	addAndRecompute("r1", 5)
	venue, err := storage.Venues.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, venue.ReviewCount)
	assert.Equal(t, 5.0, venue.Rating)

	addAndRecompute("r2", 4)
	venue, err = storage.Venues.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 2, venue.ReviewCount)
	assert.Equal(t, 4.5, venue.Rating)

	// 5+4+4 = 13, mean 4.333... rounds to 4.3.
	addAndRecompute("r3", 4)
	venue, err = storage.Venues.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 3, venue.ReviewCount)
	assert.Equal(t, 4.3, venue.Rating)

	// 13+2 = 15, mean 3.75 rounds half away from zero to 3.8.
	addAndRecompute("r4", 2)
	venue, err = storage.Venues.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 4, venue.ReviewCount)
	assert.Equal(t, 3.8, venue.Rating)
}

func TestRecomputeEmptyReviewSet(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(kv.NewMemory())

	venue := testVenue("v1", "Le Zinc")
	venue.Rating = 4.2
	venue.ReviewCount = 7
	require.NoError(t, storage.Venues.Create(ctx, venue))

	require.NoError(t, storage.Ratings.Recompute(ctx, "v1"))

	got, err := storage.Venues.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.ReviewCount)
	assert.Equal(t, 0.0, got.Rating)
}

func TestRecomputeSkipsMissingVenue(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	storage := NewStorage(db)

	require.NoError(t, storage.Reviews.Create(ctx, testReview("r1", "gone", 5)))

	// A venue deleted concurrently with a review write: the recompute
	// is a silent no-op, not an error.
	require.NoError(t, storage.Ratings.Recompute(ctx, "gone"))

	_, err := db.Get(ctx, "venue:gone")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRecomputeOnlyCountsOwnVenue(t *testing.T) {
	ctx := context.Background()
	storage := NewStorage(kv.NewMemory())

	require.NoError(t, storage.Venues.Create(ctx, testVenue("1", "Le Zinc")))
	require.NoError(t, storage.Venues.Create(ctx, testVenue("10", "Chez Marcel")))
	require.NoError(t, storage.Reviews.Create(ctx, testReview("r1", "1", 5)))
	require.NoError(t, storage.Reviews.Create(ctx, testReview("r2", "10", 1)))
	require.NoError(t, storage.Reviews.Create(ctx, testReview("r3", "10", 1)))

	require.NoError(t, storage.Ratings.Recompute(ctx, "1"))
	require.NoError(t, storage.Ratings.Recompute(ctx, "10"))

	venue, err := storage.Venues.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, venue.ReviewCount)
	assert.Equal(t, 5.0, venue.Rating)

	venue, err = storage.Venues.GetByID(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, 2, venue.ReviewCount)
	assert.Equal(t, 1.0, venue.Rating)
}
