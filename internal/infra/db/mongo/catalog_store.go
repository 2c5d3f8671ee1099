package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"revu/internal/domain/catalog"
)

// Store implements the catalog store on MongoDB. Entities live in one
// collection per kind; ratings live in a sibling collection keyed by
// entity_id. Review ingestion runs inside a session transaction.
type Store struct {
	db *mongo.Database
}

func NewStore(client *Client) *Store {
	return &Store{db: client.DB}
}

type entityDocument struct {
	ID               string  `bson:"_id"`
	Name             string  `bson:"name"`
	Classification   string  `bson:"classification"`
	Maker            string  `bson:"maker"`
	Country          string  `bson:"country"`
	Price            int     `bson:"price"`
	NumRatings       int     `bson:"num_ratings"`
	SumRating        float64 `bson:"sum_rating"`
	AvgRating        float64 `bson:"avg_rating"`
	LastReviewUserID string  `bson:"last_review_user_id,omitempty"`
	Photo            string  `bson:"photo,omitempty"`
	Timestamp        int64   `bson:"timestamp"`
}

type ratingDocument struct {
	ID        string `bson:"_id"`
	EntityID  string `bson:"entity_id"`
	Rating    int    `bson:"rating"`
	Text      string `bson:"text"`
	UserID    string `bson:"user_id,omitempty"`
	PhotoURL  string `bson:"photo_url,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func newEntityDocument(e *catalog.Entity) entityDocument {
	return entityDocument{
		ID:               string(e.ID),
		Name:             e.Name,
		Classification:   e.Classification,
		Maker:            e.Maker,
		Country:          e.Country,
		Price:            e.Price,
		NumRatings:       e.NumRatings,
		SumRating:        e.SumRating,
		AvgRating:        e.AvgRating,
		LastReviewUserID: e.LastReviewUserID,
		Photo:            e.Photo,
		Timestamp:        e.Timestamp.UnixMilli(),
	}
}

func (d entityDocument) toEntity() catalog.Entity {
	return catalog.Entity{
		ID:             catalog.EntityID(d.ID),
		Name:           d.Name,
		Classification: d.Classification,
		Maker:          d.Maker,
		Country:        d.Country,
		Price:          d.Price,
		Aggregate: catalog.Aggregate{
			NumRatings: d.NumRatings,
			SumRating:  d.SumRating,
			AvgRating:  d.AvgRating,
		},
		LastReviewUserID: d.LastReviewUserID,
		Photo:            d.Photo,
		Timestamp:        timestampToTime(d.Timestamp),
	}
}

func newRatingDocument(id catalog.EntityID, r catalog.Rating) ratingDocument {
	return ratingDocument{
		ID:        string(r.ID),
		EntityID:  string(id),
		Rating:    r.Rating,
		Text:      r.Text,
		UserID:    r.UserID,
		PhotoURL:  r.PhotoURL,
		Timestamp: r.Timestamp.UnixMilli(),
	}
}

func (d ratingDocument) toRating() catalog.Rating {
	return catalog.Rating{
		ID:        catalog.RatingID(d.ID),
		Rating:    d.Rating,
		Text:      d.Text,
		UserID:    d.UserID,
		PhotoURL:  d.PhotoURL,
		Timestamp: timestampToTime(d.Timestamp),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func (s *Store) Entity(ctx context.Context, kind catalog.Kind, id catalog.EntityID) (*catalog.Entity, error) {
	return fetchEntity(ctx, s.db.Collection(kind.Collection), id)
}

func fetchEntity(ctx context.Context, col *mongo.Collection, id catalog.EntityID) (*catalog.Entity, error) {
	var doc entityDocument
	if err := col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	entity := doc.toEntity()
	return &entity, nil
}

func (s *Store) ListEntities(ctx context.Context, kind catalog.Kind, query catalog.Query) ([]catalog.Entity, error) {
	opts := options.Find()
	if query.OrderBy != "" {
		direction := 1
		if query.Descending {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: query.OrderBy, Value: direction}})
	}
	cursor, err := s.db.Collection(kind.Collection).Find(ctx, queryFilter(query), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []catalog.Entity
	for cursor.Next(ctx) {
		var doc entityDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		entities = append(entities, doc.toEntity())
	}
	return entities, cursor.Err()
}

func queryFilter(query catalog.Query) bson.M {
	filter := bson.M{}
	for _, p := range query.Predicates {
		filter[p.Field] = p.Value
	}
	return filter
}

func (s *Store) ListRatings(ctx context.Context, kind catalog.Kind, id catalog.EntityID) ([]catalog.Rating, error) {
	if _, err := s.Entity(ctx, kind, id); err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.db.Collection(kind.RatingsCollection).Find(ctx, bson.M{"entity_id": string(id)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []catalog.Rating
	for cursor.Next(ctx) {
		var doc ratingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ratings = append(ratings, doc.toRating())
	}
	return ratings, cursor.Err()
}

func (s *Store) SetPhoto(ctx context.Context, kind catalog.Kind, id catalog.EntityID, url string) error {
	res, err := s.db.Collection(kind.Collection).UpdateOne(ctx,
		bson.M{"_id": string(id)},
		bson.M{"$set": bson.M{"photo": url}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) SaveEntity(ctx context.Context, kind catalog.Kind, entity *catalog.Entity) error {
	if entity == nil || entity.ID == "" {
		return catalog.ErrInvalidArgument
	}
	doc := newEntityDocument(entity)
	_, err := s.db.Collection(kind.Collection).UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Store) SaveRating(ctx context.Context, kind catalog.Kind, id catalog.EntityID, rating catalog.Rating) error {
	_, err := s.db.Collection(kind.RatingsCollection).InsertOne(ctx, newRatingDocument(id, rating))
	return err
}

// RunTransaction executes fn inside a session transaction. Domain errors
// returned by fn propagate unchanged; driver-level aborts come back wrapped
// in catalog.ErrTransactionFailed. The driver may re-run the whole closure on
// transient errors, which preserves the all-or-nothing contract.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx catalog.Tx) error) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrTransactionFailed, err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(s.db.ReadConcern()).
		SetWriteConcern(s.db.WriteConcern())
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, &storeTx{db: s.db})
	}, txnOpts)
	if err != nil {
		if isDomainError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", catalog.ErrTransactionFailed, err)
	}
	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, catalog.ErrInvalidArgument) ||
		errors.Is(err, catalog.ErrInvalidRating)
}

type storeTx struct {
	db *mongo.Database
}

func (t *storeTx) Entity(ctx context.Context, kind catalog.Kind, id catalog.EntityID) (*catalog.Entity, error) {
	return fetchEntity(ctx, t.db.Collection(kind.Collection), id)
}

func (t *storeTx) SetAggregate(ctx context.Context, kind catalog.Kind, id catalog.EntityID, agg catalog.Aggregate, lastReviewUserID string) error {
	res, err := t.db.Collection(kind.Collection).UpdateOne(ctx,
		bson.M{"_id": string(id)},
		bson.M{"$set": bson.M{
			"num_ratings":         agg.NumRatings,
			"sum_rating":          agg.SumRating,
			"avg_rating":          agg.AvgRating,
			"last_review_user_id": lastReviewUserID,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (t *storeTx) InsertRating(ctx context.Context, kind catalog.Kind, id catalog.EntityID, rating catalog.Rating) error {
	_, err := t.db.Collection(kind.RatingsCollection).InsertOne(ctx, newRatingDocument(id, rating))
	return err
}

var _ catalog.Store = (*Store)(nil)
