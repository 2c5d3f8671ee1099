package memory

import (
	"context"
	"sort"
	"sync"

	"revu/internal/domain/catalog"
)

// Store is an in-memory catalog store. It backs tests and local runs when no
// document database is configured. Transactions take the store-wide lock for
// their full duration, which makes them trivially serializable; writes are
// buffered and applied only when the transaction function succeeds.
type Store struct {
	mu            sync.RWMutex
	entities      map[string]map[catalog.EntityID]*catalog.Entity
	order         map[string][]catalog.EntityID
	ratings       map[string]map[catalog.EntityID][]catalog.Rating
	entityWatches map[int]*entityWatch
	ratingWatches map[int]*ratingWatch
	nextWatchID   int
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		entities:      make(map[string]map[catalog.EntityID]*catalog.Entity),
		order:         make(map[string][]catalog.EntityID),
		ratings:       make(map[string]map[catalog.EntityID][]catalog.Rating),
		entityWatches: make(map[int]*entityWatch),
		ratingWatches: make(map[int]*ratingWatch),
	}
}

func (s *Store) Entity(ctx context.Context, kind catalog.Kind, id catalog.EntityID) (*catalog.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entityLocked(kind, id)
}

func (s *Store) entityLocked(kind catalog.Kind, id catalog.EntityID) (*catalog.Entity, error) {
	entity, ok := s.entities[kind.Collection][id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	copied := *entity
	return &copied, nil
}

func (s *Store) ListEntities(ctx context.Context, kind catalog.Kind, query catalog.Query) ([]catalog.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listEntitiesLocked(kind, query), nil
}

func (s *Store) listEntitiesLocked(kind catalog.Kind, query catalog.Query) []catalog.Entity {
	matches := make([]catalog.Entity, 0, len(s.order[kind.Collection]))
	for _, id := range s.order[kind.Collection] {
		entity := s.entities[kind.Collection][id]
		if entity == nil || !matchesQuery(entity, query) {
			continue
		}
		matches = append(matches, *entity)
	}
	sortEntities(matches, query)
	return matches
}

func matchesQuery(entity *catalog.Entity, query catalog.Query) bool {
	for _, p := range query.Predicates {
		switch p.Field {
		case catalog.FieldClassification:
			if entity.Classification != p.Value {
				return false
			}
		case catalog.FieldMaker:
			if entity.Maker != p.Value {
				return false
			}
		case catalog.FieldCountry:
			if entity.Country != p.Value {
				return false
			}
		case catalog.FieldPrice:
			if entity.Price != p.Value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func sortEntities(entities []catalog.Entity, query catalog.Query) {
	if query.OrderBy == "" {
		return
	}
	sort.SliceStable(entities, func(i, j int) bool {
		a := sortKey(entities[i], query.OrderBy)
		b := sortKey(entities[j], query.OrderBy)
		if query.Descending {
			return a > b
		}
		return a < b
	})
}

func sortKey(entity catalog.Entity, field string) float64 {
	if field == catalog.FieldNumRatings {
		return float64(entity.NumRatings)
	}
	return entity.AvgRating
}

func (s *Store) ListRatings(ctx context.Context, kind catalog.Kind, id catalog.EntityID) ([]catalog.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.entities[kind.Collection][id]; !ok {
		return nil, catalog.ErrNotFound
	}
	return s.ratingsLocked(kind, id), nil
}

func (s *Store) ratingsLocked(kind catalog.Kind, id catalog.EntityID) []catalog.Rating {
	stored := s.ratings[kind.RatingsCollection][id]
	out := make([]catalog.Rating, len(stored))
	copy(out, stored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (s *Store) SetPhoto(ctx context.Context, kind catalog.Kind, id catalog.EntityID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity, ok := s.entities[kind.Collection][id]
	if !ok {
		return catalog.ErrNotFound
	}
	entity.Photo = url
	s.notifyEntityWatchesLocked(kind)
	return nil
}

func (s *Store) SaveEntity(ctx context.Context, kind catalog.Kind, entity *catalog.Entity) error {
	if entity == nil || entity.ID == "" {
		return catalog.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entities[kind.Collection] == nil {
		s.entities[kind.Collection] = make(map[catalog.EntityID]*catalog.Entity)
	}
	if _, exists := s.entities[kind.Collection][entity.ID]; !exists {
		s.order[kind.Collection] = append(s.order[kind.Collection], entity.ID)
	}
	copied := *entity
	s.entities[kind.Collection][entity.ID] = &copied
	s.notifyEntityWatchesLocked(kind)
	return nil
}

func (s *Store) SaveRating(ctx context.Context, kind catalog.Kind, id catalog.EntityID, rating catalog.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[kind.Collection][id]; !ok {
		return catalog.ErrNotFound
	}
	s.appendRatingLocked(kind, id, rating)
	s.notifyRatingWatchesLocked(kind, id)
	return nil
}

func (s *Store) appendRatingLocked(kind catalog.Kind, id catalog.EntityID, rating catalog.Rating) {
	if s.ratings[kind.RatingsCollection] == nil {
		s.ratings[kind.RatingsCollection] = make(map[catalog.EntityID][]catalog.Rating)
	}
	s.ratings[kind.RatingsCollection][id] = append(s.ratings[kind.RatingsCollection][id], rating)
}

// RunTransaction holds the store lock for the whole unit, so concurrent
// transactions against the same entity serialize instead of losing updates.
// Buffered writes are discarded when fn fails.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx catalog.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &tx{store: s}
	if err := fn(ctx, t); err != nil {
		return err
	}
	t.applyLocked()
	return nil
}

type aggregateWrite struct {
	kind             catalog.Kind
	id               catalog.EntityID
	agg              catalog.Aggregate
	lastReviewUserID string
}

type ratingWrite struct {
	kind   catalog.Kind
	id     catalog.EntityID
	rating catalog.Rating
}

// tx buffers writes until commit. Reads observe committed state; in this
// core every transactional read happens before the first write.
type tx struct {
	store      *Store
	aggregates []aggregateWrite
	inserts    []ratingWrite
}

func (t *tx) Entity(ctx context.Context, kind catalog.Kind, id catalog.EntityID) (*catalog.Entity, error) {
	return t.store.entityLocked(kind, id)
}

func (t *tx) SetAggregate(ctx context.Context, kind catalog.Kind, id catalog.EntityID, agg catalog.Aggregate, lastReviewUserID string) error {
	if _, err := t.store.entityLocked(kind, id); err != nil {
		return err
	}
	t.aggregates = append(t.aggregates, aggregateWrite{kind: kind, id: id, agg: agg, lastReviewUserID: lastReviewUserID})
	return nil
}

func (t *tx) InsertRating(ctx context.Context, kind catalog.Kind, id catalog.EntityID, rating catalog.Rating) error {
	if _, err := t.store.entityLocked(kind, id); err != nil {
		return err
	}
	t.inserts = append(t.inserts, ratingWrite{kind: kind, id: id, rating: rating})
	return nil
}

func (t *tx) applyLocked() {
	for _, w := range t.aggregates {
		entity := t.store.entities[w.kind.Collection][w.id]
		if entity == nil {
			continue
		}
		entity.Aggregate = w.agg
		entity.LastReviewUserID = w.lastReviewUserID
		t.store.notifyEntityWatchesLocked(w.kind)
	}
	for _, w := range t.inserts {
		t.store.appendRatingLocked(w.kind, w.id, w.rating)
		t.store.notifyRatingWatchesLocked(w.kind, w.id)
	}
}

var _ catalog.Store = (*Store)(nil)
