package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revu/internal/domain/catalog"
	"revu/internal/infra/storage/memory"
)

func TestGeneratorEntriesAreConsistent(t *testing.T) {
	generator := NewGenerator(42)

	entries := append(generator.Cars(25), generator.Restaurants(25)...)
	require.Len(t, entries, 50)

	for _, entry := range entries {
		assert.NotEmpty(t, entry.Entity.ID)
		assert.NotEmpty(t, entry.Entity.Name)
		assert.GreaterOrEqual(t, entry.Entity.Price, 1)
		assert.LessOrEqual(t, entry.Entity.Price, 4)

		var agg catalog.Aggregate
		for _, rating := range entry.Ratings {
			assert.GreaterOrEqual(t, rating.Rating, 1)
			assert.LessOrEqual(t, rating.Rating, 5)
			assert.NotEmpty(t, rating.Text)
			agg = agg.WithRating(rating.Rating)
		}
		assert.Equal(t, agg, entry.Entity.Aggregate)

		if len(entry.Ratings) > 0 {
			last := entry.Ratings[len(entry.Ratings)-1]
			assert.Equal(t, last.UserID, entry.Entity.LastReviewUserID)
		} else {
			assert.Empty(t, entry.Entity.LastReviewUserID)
		}
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	first := NewGenerator(7).Cars(10)
	second := NewGenerator(7).Cars(10)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Entity.Name, second[i].Entity.Name)
		assert.Equal(t, first[i].Entity.Aggregate, second[i].Entity.Aggregate)
		assert.Len(t, second[i].Ratings, len(first[i].Ratings))
	}
}

func TestCarsUseKnownMakes(t *testing.T) {
	for _, entry := range NewGenerator(1).Cars(30) {
		_, known := carMakeModels[entry.Entity.Maker]
		assert.True(t, known, "unknown make %q", entry.Entity.Maker)
		assert.Equal(t, makeToCountry[entry.Entity.Maker], entry.Entity.Country)
		assert.Contains(t, carTypes, entry.Entity.Classification)
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	entries := NewGenerator(3).Cars(8)

	require.NoError(t, Apply(ctx, store, catalog.Cars, entries))

	listed, err := store.ListEntities(ctx, catalog.Cars, catalog.BuildQuery(catalog.Cars, catalog.Filters{}))
	require.NoError(t, err)
	assert.Len(t, listed, len(entries))

	for _, entry := range entries {
		ratings, err := store.ListRatings(ctx, catalog.Cars, entry.Entity.ID)
		require.NoError(t, err)
		assert.Len(t, ratings, len(entry.Ratings))
	}
}
