package handler

import (
	"net/http/httptest"
	"testing"

	"carcloud/internal/cars/repository"
)

func TestListQueryFromRequest(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want repository.ListQuery
	}{
		{
			name: "no parameters",
			url:  "/all-cars",
			want: repository.ListQuery{},
		},
		{
			name: "sort ascending",
			url:  "/all-cars?sort=asc",
			want: repository.ListQuery{Sort: repository.SortAsc},
		},
		{
			name: "sort descending uses dsc spelling",
			url:  "/all-cars?sort=dsc",
			want: repository.ListQuery{Sort: repository.SortDesc},
		},
		{
			name: "search term",
			url:  "/all-cars?search=toyota",
			want: repository.ListQuery{Search: "toyota"},
		},
		{
			name: "positive limit",
			url:  "/all-cars?limit=5",
			want: repository.ListQuery{Limit: 5},
		},
		{
			name: "non-numeric limit means no cap",
			url:  "/all-cars?limit=abc",
			want: repository.ListQuery{},
		},
		{
			name: "zero limit means no cap",
			url:  "/all-cars?limit=0",
			want: repository.ListQuery{},
		},
		{
			name: "negative limit means no cap",
			url:  "/all-cars?limit=-3",
			want: repository.ListQuery{},
		},
		{
			name: "all parameters together",
			url:  "/all-cars?sort=asc&search=tesla&limit=2",
			want: repository.ListQuery{Sort: repository.SortAsc, Search: "tesla", Limit: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got := listQueryFromRequest(r)
			if got != tt.want {
				t.Errorf("listQueryFromRequest() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
