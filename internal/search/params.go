// Package search keeps the invoice list search term and page in the URL.
package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names on the invoice list route.
const (
	ParamQuery = "query"
	ParamPage  = "page"
)

// State is the list state carried in query parameters.
type State struct {
	Query string
	Page  int
}

// ParseState reads the search term and page from query parameters.
// A page that is not a positive integer becomes 1.
func ParseState(values url.Values) State {
	page, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage)))
	if err != nil || page < 1 {
		page = 1
	}
	return State{Query: values.Get(ParamQuery), Page: page}
}

// Values encodes s with only the list parameters. The page is always present,
// so a missing page and page=1 encode alike.
func (s State) Values() url.Values {
	values := url.Values{ParamPage: {strconv.Itoa(max(s.Page, 1))}}
	if s.Query != "" {
		values.Set(ParamQuery, s.Query)
	}
	return values
}

// Params returns a copy of current with the search term applied. The page is
// always reset to 1; an empty term removes the query parameter.
func Params(current url.Values, term string) url.Values {
	next := make(url.Values, len(current)+2)
	for k, v := range current {
		next[k] = append([]string(nil), v...)
	}

	next.Set(ParamPage, "1")
	if term != "" {
		next.Set(ParamQuery, term)
	} else {
		next.Del(ParamQuery)
	}
	return next
}

// ReplaceURL builds the location for path after the search term changed to term.
func ReplaceURL(path string, current url.Values, term string) string {
	return path + "?" + Params(current, term).Encode()
}

// PageURL builds the location for path showing page, keeping other parameters.
func PageURL(path string, current url.Values, page int) string {
	next := make(url.Values, len(current)+1)
	for k, v := range current {
		next[k] = append([]string(nil), v...)
	}
	next.Set(ParamPage, strconv.Itoa(page))
	return path + "?" + next.Encode()
}
