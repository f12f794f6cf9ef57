package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListQueryFilter(t *testing.T) {
	tests := []struct {
		name  string
		query ListQuery
		want  bson.M
	}{
		{
			name:  "no search matches everything",
			query: ListQuery{},
			want:  bson.M{},
		},
		{
			name:  "search builds case-insensitive OR over brand, model, location",
			query: ListQuery{Search: "toyota"},
			want: bson.M{
				"$or": []bson.M{
					{"brand": primitive.Regex{Pattern: "toyota", Options: "i"}},
					{"model": primitive.Regex{Pattern: "toyota", Options: "i"}},
					{"location": primitive.Regex{Pattern: "toyota", Options: "i"}},
				},
			},
		},
		{
			name:  "search term is escaped, not interpreted as a pattern",
			query: ListQuery{Search: "c++ (turbo)"},
			want: bson.M{
				"$or": []bson.M{
					{"brand": primitive.Regex{Pattern: `c\+\+ \(turbo\)`, Options: "i"}},
					{"model": primitive.Regex{Pattern: `c\+\+ \(turbo\)`, Options: "i"}},
					{"location": primitive.Regex{Pattern: `c\+\+ \(turbo\)`, Options: "i"}},
				},
			},
		},
		{
			name:  "sort and limit do not affect the filter",
			query: ListQuery{Sort: SortAsc, Limit: 5},
			want:  bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.Filter()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestListQueryFindOptions(t *testing.T) {
	tests := []struct {
		name      string
		query     ListQuery
		wantSort  bson.D
		wantLimit *int64
	}{
		{
			name:     "asc sorts by price ascending",
			query:    ListQuery{Sort: SortAsc},
			wantSort: bson.D{{Key: "price", Value: 1}},
		},
		{
			name:     "dsc sorts by price descending",
			query:    ListQuery{Sort: SortDesc},
			wantSort: bson.D{{Key: "price", Value: -1}},
		},
		{
			name:  "unknown sort leaves order unspecified",
			query: ListQuery{Sort: "price"},
		},
		{
			name:  "absent sort leaves order unspecified",
			query: ListQuery{},
		},
		{
			name:      "positive limit caps the cursor",
			query:     ListQuery{Limit: 10},
			wantLimit: int64Ptr(10),
		},
		{
			name:  "zero limit means no cap",
			query: ListQuery{Limit: 0},
		},
		{
			name:  "negative limit means no cap",
			query: ListQuery{Limit: -3},
		},
		{
			name:      "sort and limit compose",
			query:     ListQuery{Sort: SortDesc, Limit: 2},
			wantSort:  bson.D{{Key: "price", Value: -1}},
			wantLimit: int64Ptr(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.query.FindOptions()

			if tt.wantSort == nil {
				if opts.Sort != nil {
					t.Errorf("expected no sort, got %#v", opts.Sort)
				}
			} else if !reflect.DeepEqual(opts.Sort, tt.wantSort) {
				t.Errorf("Sort = %#v, want %#v", opts.Sort, tt.wantSort)
			}

			if tt.wantLimit == nil {
				if opts.Limit != nil {
					t.Errorf("expected no limit, got %d", *opts.Limit)
				}
			} else if opts.Limit == nil || *opts.Limit != *tt.wantLimit {
				t.Errorf("Limit = %v, want %d", opts.Limit, *tt.wantLimit)
			}
		})
	}
}

func int64Ptr(n int64) *int64 {
	return &n
}
