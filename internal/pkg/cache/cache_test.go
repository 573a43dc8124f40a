package cache

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(ttl time.Duration) (*PageCache, *clock) {
	clk := &clock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.now = clk.now
	return c, clk
}

func TestPageCacheGetSet(t *testing.T) {
	c, clk := newTestCache(time.Minute)

	q := url.Values{"query": {"lee"}, "page": {"2"}}
	c.Set("/dashboard/invoices", q, 0, "text/html", []byte("<p>page</p>"))

	e, ok := c.Get("/dashboard/invoices", url.Values{"page": {"2"}, "query": {"lee"}})
	require.True(t, ok)
	assert.Equal(t, "<p>page</p>", string(e.Body))
	assert.Equal(t, "text/html", e.ContentType)

	_, ok = c.Get("/dashboard/invoices", url.Values{"page": {"1"}})
	assert.False(t, ok)

	clk.t = clk.t.Add(time.Minute)
	_, ok = c.Get("/dashboard/invoices", q)
	assert.False(t, ok, "entry must expire after ttl")
}

func TestPageCacheCopiesBody(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	body := []byte("abc")
	c.Set("/p", nil, 0, "text/plain", body)
	body[0] = 'x'

	e, ok := c.Get("/p", nil)
	require.True(t, ok)
	assert.Equal(t, "abc", string(e.Body))
}

func TestPageCacheDisabled(t *testing.T) {
	c, _ := newTestCache(0)
	c.Set("/p", nil, 0, "text/plain", []byte("abc"))
	_, ok := c.Get("/p", nil)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestPageCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("/dashboard/invoices", url.Values{"page": {"1"}}, 0, "text/html", []byte("1"))
	c.Set("/dashboard/invoices", url.Values{"page": {"2"}}, 0, "text/html", []byte("2"))
	c.Set("/dashboard/invoices/abc/edit", nil, 0, "text/html", []byte("e"))
	c.Set("/dashboard/invoices-archive", nil, 0, "text/html", []byte("a"))
	c.Set("/dashboard", nil, 0, "text/html", []byte("d"))

	c.Invalidate("/dashboard/invoices")

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("/dashboard/invoices-archive", nil)
	assert.True(t, ok)
	_, ok = c.Get("/dashboard", nil)
	assert.True(t, ok)
}

func TestPageCacheSweep(t *testing.T) {
	c, clk := newTestCache(time.Minute)
	c.Set("/a", nil, 0, "text/html", []byte("a"))
	clk.t = clk.t.Add(30 * time.Second)
	c.Set("/b", nil, 0, "text/html", []byte("b"))

	removed := c.Sweep(clk.t.Add(45 * time.Second))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())

	removed = c.Sweep(clk.t.Add(2 * time.Minute))
	assert.Equal(t, 1, removed)
	assert.Zero(t, c.Len())
}

func TestPageCacheDropsPageRenderedBeforeInvalidation(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	q := url.Values{"page": {"1"}}

	gen := c.Begin("/dashboard/invoices")
	c.Invalidate("/dashboard/invoices")
	c.Set("/dashboard/invoices", q, gen, "text/html", []byte("stale"))

	_, ok := c.Get("/dashboard/invoices", q)
	assert.False(t, ok, "page rendered before invalidation must not be stored")

	gen = c.Begin("/dashboard/invoices")
	c.Set("/dashboard/invoices", q, gen, "text/html", []byte("fresh"))
	e, ok := c.Get("/dashboard/invoices", q)
	require.True(t, ok)
	assert.Equal(t, "fresh", string(e.Body))
}

func TestPageCacheInvalidateBumpsSubpaths(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	gen := c.Begin("/dashboard/invoices/abc/edit")
	other := c.Begin("/dashboard")
	c.Invalidate("/dashboard/invoices")

	c.Set("/dashboard/invoices/abc/edit", nil, gen, "text/html", []byte("e"))
	c.Set("/dashboard", nil, other, "text/html", []byte("d"))

	_, ok := c.Get("/dashboard/invoices/abc/edit", nil)
	assert.False(t, ok)
	_, ok = c.Get("/dashboard", nil)
	assert.True(t, ok)
}
