package catalog

import "time"

// ReviewSubmitted is emitted after a review transaction commits. The
// aggregate numbers reflect the committed state including the new rating.
type ReviewSubmitted struct {
	Kind       string    `json:"kind"`
	EntityID   string    `json:"entity_id"`
	RatingID   string    `json:"rating_id"`
	UserID     string    `json:"user_id,omitempty"`
	Rating     int       `json:"rating"`
	NumRatings int       `json:"num_ratings"`
	AvgRating  float64   `json:"avg_rating"`
	At         time.Time `json:"at"`
}

// Name identifies the event on the wire.
func (ReviewSubmitted) Name() string { return "catalog.review_submitted" }
