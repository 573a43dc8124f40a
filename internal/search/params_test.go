package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{raw: "", want: State{Page: 1}},
		{raw: "query=lee&page=3", want: State{Query: "lee", Page: 3}},
		{raw: "page=0", want: State{Page: 1}},
		{raw: "page=-2", want: State{Page: 1}},
		{raw: "page=abc", want: State{Page: 1}},
		{raw: "page=2.5", want: State{Page: 1}},
		{raw: "query=%20paid%20", want: State{Query: " paid ", Page: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseState(values))
		})
	}
}

func TestParams(t *testing.T) {
	current := url.Values{"query": {"old"}, "page": {"4"}, "sort": {"date"}}

	next := Params(current, "new")
	assert.Equal(t, "new", next.Get(ParamQuery))
	assert.Equal(t, "1", next.Get(ParamPage))
	assert.Equal(t, "date", next.Get("sort"))

	cleared := Params(current, "")
	_, present := cleared[ParamQuery]
	assert.False(t, present)
	assert.Equal(t, "1", cleared.Get(ParamPage))

	assert.Equal(t, "old", current.Get(ParamQuery), "current must not be modified")
	assert.Equal(t, "4", current.Get(ParamPage))
}

func TestReplaceURL(t *testing.T) {
	path := "/dashboard/invoices"
	assert.Equal(t, "/dashboard/invoices?page=1&query=Delba+de+Oliveira",
		ReplaceURL(path, url.Values{"page": {"3"}}, "Delba de Oliveira"))
	assert.Equal(t, "/dashboard/invoices?page=1",
		ReplaceURL(path, url.Values{"query": {"x"}, "page": {"2"}}, ""))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/dashboard/invoices?page=2&query=paid",
		PageURL("/dashboard/invoices", url.Values{"query": {"paid"}, "page": {"1"}}, 2))
}

func TestPaginationItems(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{name: "no pages", current: 1, total: 0, want: []int{}},
		{name: "few pages", current: 2, total: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "seven pages", current: 7, total: 7, want: []int{1, 2, 3, 4, 5, 6, 7}},
		{name: "near start", current: 2, total: 10, want: []int{1, 2, 3, Ellipsis, 9, 10}},
		{name: "near end", current: 9, total: 10, want: []int{1, 2, Ellipsis, 8, 9, 10}},
		{name: "middle", current: 5, total: 10, want: []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaginationItems(tt.current, tt.total))
		})
	}
}
