package axioma

import (
	"net/url"
	"strconv"
	"strings"
)

// The list endpoints accept OData-style filters restricted to exact-match
// equality predicates joined with "and".

// Equals builds an exact-match predicate for a field.
func Equals(field, value string) string {
	return field + " eq '" + strings.ReplaceAll(value, "'", "''") + "'"
}

// And joins predicates into a single conjunction.
func And(predicates ...string) string {
	return strings.Join(predicates, " and ")
}

// ListOptions carries the optional filter, paging and ordering parameters
// of a collection listing.
type ListOptions struct {
	Filter  string
	Top     int
	Skip    int
	OrderBy string
}

func (o ListOptions) params() url.Values {
	params := url.Values{}
	if o.Filter != "" {
		params.Set("$filter", o.Filter)
	}
	if o.Top > 0 {
		params.Set("$top", strconv.Itoa(o.Top))
	}
	if o.Skip > 0 {
		params.Set("$skip", strconv.Itoa(o.Skip))
	}
	if o.OrderBy != "" {
		params.Set("$orderby", o.OrderBy)
	}
	return params
}
