package dto

import (
	"time"

	domain "revu/internal/domain/catalog"
)

// Rating is the public review payload.
type Rating struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type RatingCollection struct {
	Items []Rating `json:"items"`
	Total int      `json:"total"`
}

// MapRating builds a DTO from a domain rating.
func MapRating(rating domain.Rating) Rating {
	return Rating{
		ID:        string(rating.ID),
		Rating:    rating.Rating,
		Text:      rating.Text,
		UserID:    rating.UserID,
		PhotoURL:  rating.PhotoURL,
		Timestamp: rating.Timestamp,
	}
}

// MapRatings maps a ratings snapshot.
func MapRatings(ratings []domain.Rating) RatingCollection {
	items := make([]Rating, 0, len(ratings))
	for _, rating := range ratings {
		items = append(items, MapRating(rating))
	}
	return RatingCollection{Items: items, Total: len(items)}
}
