package websearch

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const (
	serperBaseURL = "https://google.serper.dev/search"

	// resultsPerQuery bounds the organic results requested per call.
	resultsPerQuery = 10

	// queryTimeout bounds each individual search call.
	queryTimeout = 10 * time.Second
)

// SerperClient implements Provider against the Serper Google-search API.
type SerperClient struct {
	apiKey  string
	baseURL string
	client  *retryablehttp.Client
}

// NewSerperClient creates a client authenticating with apiKey.
func NewSerperClient(apiKey string) *SerperClient {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = stdlog.New(io.Discard, "", 0)
	retryClient.RetryMax = 2
	retryClient.HTTPClient.Timeout = queryTimeout

	return &SerperClient{
		apiKey:  apiKey,
		baseURL: serperBaseURL,
		client:  retryClient,
	}
}

// Search executes one query and returns its organic results.
func (c *SerperClient) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", c.apiKey)
	params.Set("num", strconv.Itoa(resultsPerQuery))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	var results []Result
	gjson.GetBytes(body, "organic").ForEach(func(_, item gjson.Result) bool {
		results = append(results, Result{
			Title: item.Get("title").String(),
			Link:  item.Get("link").String(),
		})
		return true
	})
	return results, nil
}
