package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		filters Filters
		want    Query
	}{
		{
			name:    "no filters defaults to rating order",
			kind:    Cars,
			filters: Filters{},
			want: Query{
				Collection: "cars",
				OrderBy:    FieldAvgRating,
				Descending: true,
			},
		},
		{
			name: "all filters combine with AND",
			kind: Cars,
			filters: Filters{
				Classification: "SUV",
				Maker:          "Toyota",
				Country:        "Japan",
				Price:          "$$",
				Sort:           SortByReview,
			},
			want: Query{
				Collection: "cars",
				Predicates: []Predicate{
					{Field: FieldClassification, Value: "SUV"},
					{Field: FieldMaker, Value: "Toyota"},
					{Field: FieldCountry, Value: "Japan"},
					{Field: FieldPrice, Value: 2},
				},
				OrderBy:    FieldNumRatings,
				Descending: true,
			},
		},
		{
			name:    "price tier is the display string length",
			kind:    Restaurants,
			filters: Filters{Price: "$$$$"},
			want: Query{
				Collection: "restaurants",
				Predicates: []Predicate{{Field: FieldPrice, Value: 4}},
				OrderBy:    FieldAvgRating,
				Descending: true,
			},
		},
		{
			name:    "explicit rating sort equals the default",
			kind:    Cars,
			filters: Filters{Sort: SortByRating},
			want: Query{
				Collection: "cars",
				OrderBy:    FieldAvgRating,
				Descending: true,
			},
		},
		{
			name:    "unrecognized sort adds no order clause",
			kind:    Cars,
			filters: Filters{Sort: "Alphabetical"},
			want:    Query{Collection: "cars"},
		},
		{
			name:    "empty values add no predicates",
			kind:    Restaurants,
			filters: Filters{Classification: "", Maker: "", Country: "", Price: ""},
			want: Query{
				Collection: "restaurants",
				OrderBy:    FieldAvgRating,
				Descending: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.kind, tt.filters))
		})
	}
}

func TestBuildQueryIsPure(t *testing.T) {
	filters := Filters{Classification: "Sedan", Price: "$"}
	first := BuildQuery(Cars, filters)
	second := BuildQuery(Cars, filters)
	assert.Equal(t, first, second)
}
