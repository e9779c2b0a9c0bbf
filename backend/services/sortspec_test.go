package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []SortRule
	}{
		{
			name: "empty input yields the default",
			raw:  "",
			want: []SortRule{{SortFieldRating, SortDesc}},
		},
		{
			name: "single token",
			raw:  "price_asc",
			want: []SortRule{{SortFieldPrice, SortAsc}},
		},
		{
			name: "multiple tokens keep order",
			raw:  "rating_desc,price_asc",
			want: []SortRule{{SortFieldRating, SortDesc}, {SortFieldPrice, SortAsc}},
		},
		{
			name: "legacy aliases",
			raw:  "newest,oldest",
			want: []SortRule{{SortFieldDate, SortDesc}, {SortFieldDate, SortAsc}},
		},
		{
			name: "unknown tokens dropped silently",
			raw:  "bogus,price_desc,views_desc",
			want: []SortRule{{SortFieldPrice, SortDesc}},
		},
		{
			name: "only unknown tokens fall back to default",
			raw:  "bogus,also_bogus",
			want: []SortRule{{SortFieldRating, SortDesc}},
		},
		{
			name: "whitespace and case tolerated",
			raw:  " Rating_Desc , PRICE_ASC ",
			want: []SortRule{{SortFieldRating, SortDesc}, {SortFieldPrice, SortAsc}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSortList(tt.raw))
		})
	}
}

func TestParseSortListBounds(t *testing.T) {
	raws := []string{"rating_desc", "rating_desc,price_asc,date_desc", "x,y,z", "newest,bogus"}
	for _, raw := range raws {
		rules := ParseSortList(raw)
		if raw != "x,y,z" {
			assert.LessOrEqual(t, len(rules), len(strings.Split(raw, ",")))
		}
		for _, rule := range rules {
			assert.Contains(t, []string{SortFieldRating, SortFieldPrice, SortFieldDate}, rule.Field)
		}
	}
}

func TestOrderClauses(t *testing.T) {
	clauses := OrderClauses([]SortRule{
		{SortFieldRating, SortDesc},
		{SortFieldPrice, SortAsc},
		{SortFieldDate, SortDesc},
	})
	assert.Equal(t, []string{"rating_avg DESC", "price ASC", "created_at DESC", "id ASC"}, clauses)

	// The id tie-break is always present, even with no rules.
	assert.Equal(t, []string{"id ASC"}, OrderClauses(nil))
}
