package catalog

import (
	"errors"
	"time"
)

var (
	// ErrInvalidArgument is returned when an operation receives a missing
	// entity id or an empty review payload.
	ErrInvalidArgument = errors.New("catalog: invalid argument")
	// ErrInvalidRating is returned when a review rating falls outside 1..5.
	ErrInvalidRating = errors.New("catalog: rating must be between 1 and 5")
	// ErrNotFound is returned when an entity id does not resolve to a document.
	ErrNotFound = errors.New("catalog: not found")
	// ErrTransactionFailed is returned when the store aborts a transaction
	// (conflict, unavailability, write rejection). No partial writes remain.
	ErrTransactionFailed = errors.New("catalog: transaction failed")
)

type EntityID string

type RatingID string

// Kind describes one reviewable entity family. Collection names and the
// filter keys exposed over HTTP differ per kind; everything else is shared.
type Kind struct {
	Name              string
	Collection        string
	RatingsCollection string
	// ClassificationKey and MakerKey are the query-parameter names the
	// listing endpoint accepts for this kind ("type"/"make" for cars,
	// "category"/"city" for restaurants).
	ClassificationKey string
	MakerKey          string
}

var (
	Cars = Kind{
		Name:              "car",
		Collection:        "cars",
		RatingsCollection: "car_ratings",
		ClassificationKey: "type",
		MakerKey:          "make",
	}
	Restaurants = Kind{
		Name:              "restaurant",
		Collection:        "restaurants",
		RatingsCollection: "restaurant_ratings",
		ClassificationKey: "category",
		MakerKey:          "city",
	}
)

// Kinds returns every registered kind.
func Kinds() []Kind {
	return []Kind{Cars, Restaurants}
}

// KindByCollection resolves a kind from its collection name, which is also
// the path segment used in listing URLs.
func KindByCollection(name string) (Kind, bool) {
	for _, kind := range Kinds() {
		if kind.Collection == name {
			return kind, true
		}
	}
	return Kind{}, false
}

// Aggregate holds the derived rating fields of an entity. The invariant is
// AvgRating == SumRating/NumRatings whenever NumRatings > 0, and 0 otherwise.
type Aggregate struct {
	NumRatings int
	SumRating  float64
	AvgRating  float64
}

// WithRating folds one more rating value into the aggregate. Missing or
// negative counters are treated as zero before incrementing.
func (a Aggregate) WithRating(value int) Aggregate {
	num := a.NumRatings
	if num < 0 {
		num = 0
	}
	sum := a.SumRating
	if sum < 0 {
		sum = 0
	}
	num++
	sum += float64(value)
	return Aggregate{
		NumRatings: num,
		SumRating:  sum,
		AvgRating:  sum / float64(num),
	}
}

// Entity is the reviewed subject, the aggregate root owning rating records.
type Entity struct {
	ID             EntityID
	Name           string
	Classification string
	Maker          string
	Country        string
	Price          int
	Aggregate
	LastReviewUserID string
	Photo            string
	Timestamp        time.Time
}

// Rating is one user-submitted review. Ratings are append-only: created
// exactly once, never mutated or deleted.
type Rating struct {
	ID        RatingID
	Rating    int
	Text      string
	UserID    string
	PhotoURL  string
	Timestamp time.Time
}
