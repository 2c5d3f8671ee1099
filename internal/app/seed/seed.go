package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"revu/internal/domain/catalog"
)

// Entry pairs a generated entity with its historical ratings. The entity's
// aggregate fields are precomputed from the ratings, so seeded data satisfies
// the same consistency invariant live ingestion maintains.
type Entry struct {
	Entity  catalog.Entity
	Ratings []catalog.Rating
}

// Generator produces deterministic sample data for a given seed.
type Generator struct {
	rand *rand.Rand
	now  time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		now:  time.Now().UTC(),
	}
}

// Cars generates n sample cars with 0..5 reviews each.
func (g *Generator) Cars(n int) []Entry {
	makes := make([]string, 0, len(carMakeModels))
	for carMake := range carMakeModels {
		makes = append(makes, carMake)
	}
	sort.Strings(makes)

	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		carMake := makes[g.rand.Intn(len(makes))]
		models := carMakeModels[carMake]
		model := models[g.rand.Intn(len(models))]
		year := 2018 + g.rand.Intn(8)
		country, ok := makeToCountry[carMake]
		if !ok {
			country = "USA"
		}
		entries = append(entries, g.entry(
			fmt.Sprintf("%s %s (%d)", carMake, model, year),
			carTypes[g.rand.Intn(len(carTypes))],
			carMake,
			country,
		))
	}
	return entries
}

// Restaurants generates n sample restaurants with 0..5 reviews each.
func (g *Generator) Restaurants(n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, g.entry(
			restaurantNames[g.rand.Intn(len(restaurantNames))],
			restaurantCategories[g.rand.Intn(len(restaurantCategories))],
			restaurantCities[g.rand.Intn(len(restaurantCities))],
			restaurantCountries[g.rand.Intn(len(restaurantCountries))],
		))
	}
	return entries
}

func (g *Generator) entry(name, classification, maker, country string) Entry {
	created := g.now.Add(-time.Duration(1+g.rand.Intn(365*24)) * time.Hour)

	ratings := make([]catalog.Rating, 0, 5)
	var agg catalog.Aggregate
	for i := 0; i < g.rand.Intn(6); i++ {
		review := reviewPool[g.rand.Intn(len(reviewPool))]
		at := created.Add(time.Duration(1+g.rand.Intn(int(g.now.Sub(created)/time.Minute)+1)) * time.Minute)
		ratings = append(ratings, catalog.Rating{
			ID:        catalog.RatingID(uuid.NewString()),
			Rating:    review.Rating,
			Text:      review.Text,
			UserID:    fmt.Sprintf("User #%d", 1+g.rand.Intn(1000)),
			Timestamp: at,
		})
		agg = agg.WithRating(review.Rating)
	}

	entity := catalog.Entity{
		ID:             catalog.EntityID(uuid.NewString()),
		Name:           name,
		Classification: classification,
		Maker:          maker,
		Country:        country,
		Price:          1 + g.rand.Intn(4),
		Aggregate:      agg,
		Timestamp:      created,
	}
	if len(ratings) > 0 {
		entity.LastReviewUserID = ratings[len(ratings)-1].UserID
	}
	return Entry{Entity: entity, Ratings: ratings}
}

// Apply writes the entries through the store's administrative save paths.
func Apply(ctx context.Context, store catalog.Store, kind catalog.Kind, entries []Entry) error {
	for _, entry := range entries {
		entity := entry.Entity
		if err := store.SaveEntity(ctx, kind, &entity); err != nil {
			return fmt.Errorf("seed: save %s %q: %w", kind.Name, entity.ID, err)
		}
		for _, rating := range entry.Ratings {
			if err := store.SaveRating(ctx, kind, entity.ID, rating); err != nil {
				return fmt.Errorf("seed: save rating for %s %q: %w", kind.Name, entity.ID, err)
			}
		}
	}
	return nil
}
