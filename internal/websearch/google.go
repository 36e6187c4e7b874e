package websearch

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleClient implements Provider on the Google Custom Search JSON API.
// It is an alternative to Serper for deployments that already carry a
// Google API key and search engine id.
type GoogleClient struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleClient creates a Custom Search backed provider. cx is the
// programmable search engine id.
func NewGoogleClient(ctx context.Context, apiKey, cx string) (*GoogleClient, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleClient{svc: svc, cx: cx}, nil
}

// Search runs one query and returns the organic results.
func (c *GoogleClient) Search(ctx context.Context, query string) ([]Result, error) {
	resp, err := c.svc.Cse.List().Context(ctx).Cx(c.cx).Q(query).Num(resultsPerQuery).Do()
	if err != nil {
		return nil, fmt.Errorf("custom search failed: %w", err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title: item.Title,
			Link:  item.Link,
		})
	}
	return results, nil
}
