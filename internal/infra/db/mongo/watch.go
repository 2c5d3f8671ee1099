package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"revu/internal/domain/catalog"
)

// changeWatch re-runs its query after every change-stream event and emits the
// full result set. Emissions are replacements, never deltas: a slow consumer
// skips intermediate states and receives the latest snapshot.
type changeWatch[T any] struct {
	ch     chan []T
	cancel context.CancelFunc
}

func (w *changeWatch[T]) Snapshots() <-chan []T { return w.ch }

func (w *changeWatch[T]) Close() { w.cancel() }

func runWatch[T any](ctx context.Context, col *mongo.Collection, load func(context.Context) ([]T, error)) (*changeWatch[T], error) {
	stream, err := col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w := &changeWatch[T]{
		ch:     make(chan []T, 1),
		cancel: cancel,
	}

	emit := func() bool {
		snapshot, err := load(watchCtx)
		if err != nil {
			return watchCtx.Err() == nil
		}
		select {
		case <-w.ch:
		default:
		}
		select {
		case w.ch <- snapshot:
		case <-watchCtx.Done():
			return false
		}
		return true
	}

	go func() {
		defer close(w.ch)
		defer stream.Close(context.Background())
		if !emit() {
			return
		}
		for stream.Next(watchCtx) {
			if !emit() {
				return
			}
		}
	}()

	return w, nil
}

// WatchEntities opens a change stream over the kind's collection and
// delivers the filtered listing after every change.
func (s *Store) WatchEntities(ctx context.Context, kind catalog.Kind, query catalog.Query) (catalog.EntityWatch, error) {
	return runWatch(ctx, s.db.Collection(kind.Collection), func(ctx context.Context) ([]catalog.Entity, error) {
		return s.ListEntities(ctx, kind, query)
	})
}

// WatchRatings opens a change stream over the kind's ratings collection and
// delivers the entity's reviews after every change.
func (s *Store) WatchRatings(ctx context.Context, kind catalog.Kind, id catalog.EntityID) (catalog.RatingWatch, error) {
	if _, err := s.Entity(ctx, kind, id); err != nil {
		return nil, err
	}
	return runWatch(ctx, s.db.Collection(kind.RatingsCollection), func(ctx context.Context) ([]catalog.Rating, error) {
		return s.ListRatings(ctx, kind, id)
	})
}
