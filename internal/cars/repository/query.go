package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SortAsc  = "asc"
	SortDesc = "dsc"
)

// ListQuery composes the three independent /all-cars parameters into a
// storage predicate and find options. Each parameter is optional and
// they never interact: search builds the filter, sort and limit shape
// the cursor.
type ListQuery struct {
	// Sort is "asc" or "dsc" for price ordering; any other value
	// leaves the order unspecified.
	Sort string
	// Search is a free-text substring matched case-insensitively
	// against brand, model, and location.
	Search string
	// Limit caps the result count when positive; zero or negative
	// means return all matches.
	Limit int64
}

// Filter returns the match predicate. No search term matches every
// document. The term is regex-escaped so it always means substring
// containment, never a pattern.
func (q ListQuery) Filter() bson.M {
	if q.Search == "" {
		return bson.M{}
	}

	re := primitive.Regex{
		Pattern: regexp.QuoteMeta(q.Search),
		Options: "i",
	}
	return bson.M{
		"$or": []bson.M{
			{"brand": re},
			{"model": re},
			{"location": re},
		},
	}
}

// FindOptions returns the sort and limit applied after filtering.
func (q ListQuery) FindOptions() *options.FindOptions {
	opts := options.Find()

	switch q.Sort {
	case SortAsc:
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case SortDesc:
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	}

	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	return opts
}
