package memory

import (
	"context"

	"revu/internal/domain/catalog"
)

// entityWatch delivers the full current result set of its query whenever any
// matching collection changes. The channel holds at most one pending
// snapshot; a newer one replaces an undelivered older one, so slow consumers
// always see the latest state rather than a backlog.
type entityWatch struct {
	store  *Store
	id     int
	kind   catalog.Kind
	query  catalog.Query
	ch     chan []catalog.Entity
	closed bool
}

func (w *entityWatch) Snapshots() <-chan []catalog.Entity { return w.ch }

func (w *entityWatch) Close() {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	delete(w.store.entityWatches, w.id)
	close(w.ch)
}

func (w *entityWatch) pushLocked(snapshot []catalog.Entity) {
	if w.closed {
		return
	}
	select {
	case <-w.ch:
	default:
	}
	w.ch <- snapshot
}

type ratingWatch struct {
	store    *Store
	id       int
	kind     catalog.Kind
	entityID catalog.EntityID
	ch       chan []catalog.Rating
	closed   bool
}

func (w *ratingWatch) Snapshots() <-chan []catalog.Rating { return w.ch }

func (w *ratingWatch) Close() {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	delete(w.store.ratingWatches, w.id)
	close(w.ch)
}

func (w *ratingWatch) pushLocked(snapshot []catalog.Rating) {
	if w.closed {
		return
	}
	select {
	case <-w.ch:
	default:
	}
	w.ch <- snapshot
}

// WatchEntities registers a live listing query. The current result set is
// delivered immediately, then again after every relevant change.
func (s *Store) WatchEntities(ctx context.Context, kind catalog.Kind, query catalog.Query) (catalog.EntityWatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextWatchID++
	w := &entityWatch{
		store: s,
		id:    s.nextWatchID,
		kind:  kind,
		query: query,
		ch:    make(chan []catalog.Entity, 1),
	}
	s.entityWatches[w.id] = w
	w.pushLocked(s.listEntitiesLocked(kind, query))
	closeOnDone(ctx, w.Close)
	return w, nil
}

// WatchRatings registers a live view over one entity's reviews.
func (s *Store) WatchRatings(ctx context.Context, kind catalog.Kind, id catalog.EntityID) (catalog.RatingWatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[kind.Collection][id]; !ok {
		return nil, catalog.ErrNotFound
	}
	s.nextWatchID++
	w := &ratingWatch{
		store:    s,
		id:       s.nextWatchID,
		kind:     kind,
		entityID: id,
		ch:       make(chan []catalog.Rating, 1),
	}
	s.ratingWatches[w.id] = w
	w.pushLocked(s.ratingsLocked(kind, id))
	closeOnDone(ctx, w.Close)
	return w, nil
}

func (s *Store) notifyEntityWatchesLocked(kind catalog.Kind) {
	for _, w := range s.entityWatches {
		if w.kind.Collection != kind.Collection {
			continue
		}
		w.pushLocked(s.listEntitiesLocked(w.kind, w.query))
	}
}

func (s *Store) notifyRatingWatchesLocked(kind catalog.Kind, id catalog.EntityID) {
	for _, w := range s.ratingWatches {
		if w.kind.RatingsCollection != kind.RatingsCollection || w.entityID != id {
			continue
		}
		w.pushLocked(s.ratingsLocked(w.kind, w.entityID))
	}
}

func closeOnDone(ctx context.Context, closeFn func()) {
	if ctx == nil || ctx.Done() == nil {
		return
	}
	go func() {
		<-ctx.Done()
		closeFn()
	}()
}
