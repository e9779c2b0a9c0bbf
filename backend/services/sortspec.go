package services

import "strings"

const (
	SortFieldRating = "rating"
	SortFieldPrice  = "price"
	SortFieldDate   = "date"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortRule is one (field, direction) tie-break key of a course listing sort.
// The first rule is the primary sort; later rules break ties in order.
type SortRule struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// sortTokens is the allow-list of sort tokens accepted from the query string.
// newest/oldest are legacy aliases kept for old bookmarked URLs.
var sortTokens = map[string]SortRule{
	"rating_asc":  {SortFieldRating, SortAsc},
	"rating_desc": {SortFieldRating, SortDesc},
	"price_asc":   {SortFieldPrice, SortAsc},
	"price_desc":  {SortFieldPrice, SortDesc},
	"date_asc":    {SortFieldDate, SortAsc},
	"date_desc":   {SortFieldDate, SortDesc},
	"newest":      {SortFieldDate, SortDesc},
	"oldest":      {SortFieldDate, SortAsc},
}

// sortColumns maps rule fields to the courses columns they order by.
var sortColumns = map[string]string{
	SortFieldRating: "rating_avg",
	SortFieldPrice:  "price",
	SortFieldDate:   "created_at",
}

// ParseSortList turns a comma-separated sort request string into an ordered
// list of sort rules. Sort strings come straight from user-editable query
// parameters, so unknown tokens are dropped rather than rejected. An empty
// string yields the default sort: rating descending.
func ParseSortList(raw string) []SortRule {
	var rules []SortRule
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if rule, ok := sortTokens[token]; ok {
			rules = append(rules, rule)
		}
	}
	if len(rules) == 0 {
		return []SortRule{{SortFieldRating, SortDesc}}
	}
	return rules
}

// OrderClauses renders sort rules as ORDER BY expressions, one per rule, with
// a trailing "id ASC" so rows that tie on every rule keep insertion order.
func OrderClauses(rules []SortRule) []string {
	clauses := make([]string, 0, len(rules)+1)
	for _, rule := range rules {
		column, ok := sortColumns[rule.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if rule.Direction == SortDesc {
			direction = "DESC"
		}
		clauses = append(clauses, column+" "+direction)
	}
	return append(clauses, "id ASC")
}
