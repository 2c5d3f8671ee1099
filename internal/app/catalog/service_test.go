package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "revu/internal/domain/catalog"
	"revu/internal/infra/storage/memory"
)

func seedCars(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	cars := []domain.Entity{
		{ID: "camry", Name: "Toyota Camry", Classification: "Sedan", Maker: "Toyota", Country: "Japan", Price: 2,
			Aggregate: domain.Aggregate{NumRatings: 10, SumRating: 45, AvgRating: 4.5}},
		{ID: "f150", Name: "Ford F-150", Classification: "Truck", Maker: "Ford", Country: "USA", Price: 3,
			Aggregate: domain.Aggregate{NumRatings: 25, SumRating: 75, AvgRating: 3.0}},
		{ID: "golf", Name: "VW Golf", Classification: "Hatchback", Maker: "Volkswagen", Country: "Germany", Price: 2,
			Aggregate: domain.Aggregate{NumRatings: 4, SumRating: 20, AvgRating: 5.0}},
	}
	for i := range cars {
		require.NoError(t, store.SaveEntity(ctx, domain.Cars, &cars[i]))
	}
}

func ids(entities []domain.Entity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, string(e.ID))
	}
	return out
}

func TestServiceListDefaultSortIsAvgRatingDesc(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}

	entities, err := service.List(context.Background(), domain.Cars, domain.Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"golf", "camry", "f150"}, ids(entities))
}

func TestServiceListReviewSortIsNumRatingsDesc(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}

	entities, err := service.List(context.Background(), domain.Cars, domain.Filters{Sort: domain.SortByReview})
	require.NoError(t, err)
	assert.Equal(t, []string{"f150", "camry", "golf"}, ids(entities))
}

func TestServiceListFilters(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}
	ctx := context.Background()

	entities, err := service.List(ctx, domain.Cars, domain.Filters{Maker: "Toyota"})
	require.NoError(t, err)
	assert.Equal(t, []string{"camry"}, ids(entities))

	entities, err = service.List(ctx, domain.Cars, domain.Filters{Price: "$$"})
	require.NoError(t, err)
	assert.Equal(t, []string{"golf", "camry"}, ids(entities))

	entities, err = service.List(ctx, domain.Cars, domain.Filters{Classification: "Sedan", Country: "USA"})
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestServiceGet(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}
	ctx := context.Background()

	entity, err := service.Get(ctx, domain.Cars, "camry")
	require.NoError(t, err)
	assert.Equal(t, "Toyota Camry", entity.Name)

	_, err = service.Get(ctx, domain.Cars, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Get(ctx, domain.Cars, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestServiceRatingsNewestFirst(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, store.SaveRating(ctx, domain.Cars, "camry", domain.Rating{
			ID:        domain.RatingID(text),
			Rating:    4,
			Text:      text,
			UserID:    "u",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	ratings, err := service.Ratings(ctx, domain.Cars, "camry")
	require.NoError(t, err)
	require.Len(t, ratings, 3)
	assert.Equal(t, "newest", ratings[0].Text)
	assert.Equal(t, "oldest", ratings[2].Text)
}

func TestServiceWatchDeliversSnapshots(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}
	ctx := context.Background()

	watch, err := service.Watch(ctx, domain.Cars, domain.Filters{})
	require.NoError(t, err)
	defer watch.Close()

	initial := receiveEntities(t, watch)
	assert.Equal(t, []string{"golf", "camry", "f150"}, ids(initial))

	newcomer := domain.Entity{ID: "model3", Name: "Tesla Model 3", Classification: "Sedan", Maker: "Tesla", Country: "USA", Price: 3,
		Aggregate: domain.Aggregate{NumRatings: 1, SumRating: 5, AvgRating: 5}}
	require.NoError(t, store.SaveEntity(ctx, domain.Cars, &newcomer))

	next := receiveEntities(t, watch)
	assert.Contains(t, ids(next), "model3")
	assert.Len(t, next, 4)
}

func TestServiceWatchClosesWithContext(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}

	ctx, cancel := context.WithCancel(context.Background())
	watch, err := service.Watch(ctx, domain.Cars, domain.Filters{})
	require.NoError(t, err)

	receiveEntities(t, watch)
	cancel()

	select {
	case _, ok := <-watch.Snapshots():
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after context cancel")
	}
}

func TestServiceWatchRatings(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	service := &Service{Store: store}
	ctx := context.Background()

	watch, err := service.WatchRatings(ctx, domain.Cars, "camry")
	require.NoError(t, err)
	defer watch.Close()

	initial := receiveRatings(t, watch)
	assert.Empty(t, initial)

	require.NoError(t, store.SaveRating(ctx, domain.Cars, "camry", domain.Rating{
		ID: "r1", Rating: 5, Text: "love it", UserID: "u", Timestamp: time.Now(),
	}))

	next := receiveRatings(t, watch)
	require.Len(t, next, 1)
	assert.Equal(t, "love it", next[0].Text)

	_, err = service.WatchRatings(ctx, domain.Cars, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (u *fakeUploader) Upload(_ context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.key = key
	u.contentType = contentType
	u.body, _ = io.ReadAll(reader)
	return "https://cdn.example.com/" + key, nil
}

func TestServiceUpdatePhoto(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	uploader := &fakeUploader{}
	service := &Service{Store: store, Photos: uploader}
	ctx := context.Background()

	url, err := service.UpdatePhoto(ctx, domain.Cars, "camry", "front.JPG", bytes.NewReader([]byte("jpeg-bytes")), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/cars/camry/"))
	assert.True(t, strings.HasSuffix(uploader.key, ".jpg"))
	assert.Equal(t, "image/jpeg", uploader.contentType)
	assert.Equal(t, []byte("jpeg-bytes"), uploader.body)

	entity, err := store.Entity(ctx, domain.Cars, "camry")
	require.NoError(t, err)
	assert.Equal(t, url, entity.Photo)
}

func TestServiceUpdatePhotoErrors(t *testing.T) {
	store := memory.NewStore()
	seedCars(t, store)
	ctx := context.Background()

	service := &Service{Store: store, Photos: &fakeUploader{}}
	_, err := service.UpdatePhoto(ctx, domain.Cars, "ghost", "a.png", bytes.NewReader(nil), "image/png")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("bucket unreachable")
	service = &Service{Store: store, Photos: &fakeUploader{err: boom}}
	_, err = service.UpdatePhoto(ctx, domain.Cars, "camry", "a.png", bytes.NewReader(nil), "image/png")
	assert.ErrorIs(t, err, boom)

	entity, err := store.Entity(ctx, domain.Cars, "camry")
	require.NoError(t, err)
	assert.Empty(t, entity.Photo)
}

func receiveEntities(t *testing.T, watch domain.EntityWatch) []domain.Entity {
	t.Helper()
	select {
	case snapshot := <-watch.Snapshots():
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for entity snapshot")
		return nil
	}
}

func receiveRatings(t *testing.T, watch domain.RatingWatch) []domain.Rating {
	t.Helper()
	select {
	case snapshot := <-watch.Snapshots():
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for rating snapshot")
		return nil
	}
}
