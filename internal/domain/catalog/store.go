package catalog

import "context"

// Tx exposes the operations available inside a store transaction. All writes
// issued through a Tx become visible atomically on commit, or not at all.
type Tx interface {
	// Entity reads the current snapshot of an entity, or ErrNotFound.
	Entity(ctx context.Context, kind Kind, id EntityID) (*Entity, error)
	// SetAggregate writes the derived rating fields and the audit field
	// recording the most recent reviewer.
	SetAggregate(ctx context.Context, kind Kind, id EntityID, agg Aggregate, lastReviewUserID string) error
	// InsertRating appends a rating record under the entity.
	InsertRating(ctx context.Context, kind Kind, id EntityID, rating Rating) error
}

// EntityWatch is a live listing query. Every relevant change delivers the
// full current result set, not a diff. Close releases the underlying watch.
type EntityWatch interface {
	Snapshots() <-chan []Entity
	Close()
}

// RatingWatch mirrors EntityWatch for an entity's rating records.
type RatingWatch interface {
	Snapshots() <-chan []Rating
	Close()
}

// Store is the document-store contract both components depend on. It is
// passed in at construction; there is no shared global client.
//
// RunTransaction executes fn as one atomic unit with serializable isolation
// per entity: concurrent transactions touching the same entity behave as if
// run in some sequential order. Errors returned by fn propagate unchanged;
// store-level aborts (conflict, unavailability, rejected writes) surface
// wrapped in ErrTransactionFailed with zero partial writes remaining.
type Store interface {
	Entity(ctx context.Context, kind Kind, id EntityID) (*Entity, error)
	ListEntities(ctx context.Context, kind Kind, query Query) ([]Entity, error)
	WatchEntities(ctx context.Context, kind Kind, query Query) (EntityWatch, error)
	ListRatings(ctx context.Context, kind Kind, id EntityID) ([]Rating, error)
	WatchRatings(ctx context.Context, kind Kind, id EntityID) (RatingWatch, error)
	SetPhoto(ctx context.Context, kind Kind, id EntityID, url string) error
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// SaveEntity and SaveRating exist for seeding and administrative
	// imports; normal review ingestion goes through RunTransaction.
	SaveEntity(ctx context.Context, kind Kind, entity *Entity) error
	SaveRating(ctx context.Context, kind Kind, id EntityID, rating Rating) error
}
