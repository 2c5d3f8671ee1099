package dto

import (
	"time"

	domain "revu/internal/domain/catalog"
)

// Entity is the public listing payload.
type Entity struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	Classification string    `json:"classification"`
	Maker          string    `json:"maker"`
	Country        string    `json:"country"`
	Price          int       `json:"price"`
	NumRatings     int       `json:"num_ratings"`
	SumRating      float64   `json:"sum_rating"`
	AvgRating      float64   `json:"avg_rating"`
	Photo          string    `json:"photo,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type EntityCollection struct {
	Items []Entity `json:"items"`
	Total int      `json:"total"`
}

// MapEntity builds a DTO from a domain entity.
func MapEntity(kind domain.Kind, entity *domain.Entity) Entity {
	if entity == nil {
		return Entity{}
	}
	return Entity{
		ID:             string(entity.ID),
		Kind:           kind.Name,
		Name:           entity.Name,
		Classification: entity.Classification,
		Maker:          entity.Maker,
		Country:        entity.Country,
		Price:          entity.Price,
		NumRatings:     entity.NumRatings,
		SumRating:      entity.SumRating,
		AvgRating:      entity.AvgRating,
		Photo:          entity.Photo,
		Timestamp:      entity.Timestamp,
	}
}

// MapEntities maps a listing snapshot.
func MapEntities(kind domain.Kind, entities []domain.Entity) EntityCollection {
	items := make([]Entity, 0, len(entities))
	for i := range entities {
		items = append(items, MapEntity(kind, &entities[i]))
	}
	return EntityCollection{Items: items, Total: len(items)}
}
