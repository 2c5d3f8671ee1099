package catalog

// Document field names shared by every store implementation. Queries built
// here reference these names; stores translate them to their own schema.
const (
	FieldClassification = "classification"
	FieldMaker          = "maker"
	FieldCountry        = "country"
	FieldPrice          = "price"
	FieldAvgRating      = "avg_rating"
	FieldNumRatings     = "num_ratings"
)

// Recognized sort values. Anything else adds no order clause.
const (
	SortByRating = "Rating"
	SortByReview = "Review"
)

// Filters carries the recognized listing parameters. Empty string means
// "no constraint on that field", never "match empty". Unrecognized query
// parameters are dropped before a Filters value is built, so they cannot
// influence the resulting query.
type Filters struct {
	Classification string
	Maker          string
	Country        string
	// Price is the displayed tier string ("$".."$$$$"); its length is
	// compared against the stored integer tier.
	Price string
	Sort  string
}

// Predicate is one equality constraint; predicates combine with logical AND.
type Predicate struct {
	Field string
	Value any
}

// Query is a composed read descriptor ready for execution by a store. It
// carries no side effects and does not execute itself.
type Query struct {
	Collection string
	Predicates []Predicate
	OrderBy    string
	Descending bool
}

// BuildQuery translates listing filters into a query against the kind's
// entity collection. Empty filter values are skipped; sort defaults to
// average rating descending.
func BuildQuery(kind Kind, filters Filters) Query {
	q := Query{Collection: kind.Collection}
	if filters.Classification != "" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldClassification, Value: filters.Classification})
	}
	if filters.Maker != "" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldMaker, Value: filters.Maker})
	}
	if filters.Country != "" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldCountry, Value: filters.Country})
	}
	if filters.Price != "" {
		q.Predicates = append(q.Predicates, Predicate{Field: FieldPrice, Value: len(filters.Price)})
	}
	switch {
	case filters.Sort == SortByRating || filters.Sort == "":
		q.OrderBy = FieldAvgRating
		q.Descending = true
	case filters.Sort == SortByReview:
		q.OrderBy = FieldNumRatings
		q.Descending = true
	}
	return q
}
