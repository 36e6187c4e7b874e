// Package websearch adapts external web-search providers behind a small
// query-in/ranked-links-out interface.
package websearch

import "context"

// Result is one ranked search hit. Providers may return richer payloads,
// but only the title/link pair is consumed here.
type Result struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Provider executes a single search query and returns its ranked results.
// Implementations bound the result count and per-call timeout themselves.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
