package ratings

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"revu/internal/domain/catalog"
)

// ReviewInput is a review as submitted by a caller. Timestamps are never
// accepted from callers; the stored rating gets a server-assigned one.
type ReviewInput struct {
	Rating   int
	Text     string
	UserID   string
	PhotoURL string
}

// Publisher receives domain events after a successful commit.
type Publisher interface {
	ReviewSubmitted(ctx context.Context, event catalog.ReviewSubmitted) error
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) ReviewSubmitted(context.Context, catalog.ReviewSubmitted) error { return nil }

// Aggregator ingests reviews and keeps entity aggregate fields consistent
// with the set of stored rating records.
type Aggregator struct {
	Store  catalog.Store
	Events Publisher
	Logger *slog.Logger
	Now    func() time.Time
}

// AddReview validates the input and applies it in a single store transaction:
// read the aggregate snapshot, fold the new rating in, write the aggregate
// plus the audit field, and insert the rating record. Either all effects are
// visible or none are. The created rating is returned for the response body.
func (a *Aggregator) AddReview(ctx context.Context, kind catalog.Kind, entityID catalog.EntityID, input ReviewInput) (catalog.Rating, error) {
	if entityID == "" {
		return catalog.Rating{}, catalog.ErrInvalidArgument
	}
	if input == (ReviewInput{}) {
		return catalog.Rating{}, catalog.ErrInvalidArgument
	}
	if input.Rating < 1 || input.Rating > 5 {
		return catalog.Rating{}, catalog.ErrInvalidRating
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return catalog.Rating{}, catalog.ErrInvalidArgument
	}

	now := a.now()
	rating := catalog.Rating{
		ID:        catalog.RatingID(uuid.NewString()),
		Rating:    input.Rating,
		Text:      text,
		UserID:    input.UserID,
		PhotoURL:  input.PhotoURL,
		Timestamp: now,
	}

	var committed catalog.Aggregate
	err := a.Store.RunTransaction(ctx, func(ctx context.Context, tx catalog.Tx) error {
		entity, err := tx.Entity(ctx, kind, entityID)
		if err != nil {
			return err
		}
		agg := entity.Aggregate.WithRating(rating.Rating)
		if err := tx.SetAggregate(ctx, kind, entityID, agg, rating.UserID); err != nil {
			return err
		}
		if err := tx.InsertRating(ctx, kind, entityID, rating); err != nil {
			return err
		}
		committed = agg
		return nil
	})
	if err != nil {
		if a.Logger != nil {
			a.Logger.Error("review ingestion failed", "kind", kind.Name, "entity_id", entityID, "error", err)
		}
		return catalog.Rating{}, err
	}

	if a.Logger != nil {
		a.Logger.Info("review added",
			"kind", kind.Name,
			"entity_id", entityID,
			"rating", rating.Rating,
			"num_ratings", committed.NumRatings,
			"avg_rating", committed.AvgRating,
		)
	}
	a.publish(ctx, catalog.ReviewSubmitted{
		Kind:       kind.Name,
		EntityID:   string(entityID),
		RatingID:   string(rating.ID),
		UserID:     rating.UserID,
		Rating:     rating.Rating,
		NumRatings: committed.NumRatings,
		AvgRating:  committed.AvgRating,
		At:         now,
	})
	return rating, nil
}

// publish never fails the call: the write already committed, so a broker
// hiccup is logged and dropped.
func (a *Aggregator) publish(ctx context.Context, event catalog.ReviewSubmitted) {
	events := a.Events
	if events == nil {
		return
	}
	if err := events.ReviewSubmitted(ctx, event); err != nil && a.Logger != nil {
		a.Logger.Warn("review event publish failed", "entity_id", event.EntityID, "error", err)
	}
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}
