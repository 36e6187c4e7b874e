// Package linkedin resolves company pages and personal profiles on LinkedIn
// from web-search results, with a heuristic confidence score per URL.
package linkedin

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/leadgen/internal/types"
	"github.com/jonathan/leadgen/internal/websearch"
)

const (
	domainMarker  = "linkedin.com/"
	companyMarker = "/company/"
	profileMarker = "/in/"
)

// URLType classifies a LinkedIn URL by its path shape.
type URLType string

const (
	// TypeCompany is a company page (linkedin.com/company/...).
	TypeCompany URLType = "company"
	// TypeProfile is a personal profile (linkedin.com/in/...).
	TypeProfile URLType = "profile"
)

// Resolution is the outcome of one URL resolution. URL is the NA sentinel
// when nothing was found; Confidence is a 0-100 heuristic, not a
// probability.
type Resolution struct {
	URL        string             `json:"url"`
	Confidence int                `json:"confidence"`
	Sources    []websearch.Result `json:"sources"`
}

// Pair bundles the independent company and founder resolutions.
type Pair struct {
	Company Resolution `json:"company"`
	Founder Resolution `json:"founder"`
}

// Validation is the result of ValidateURL.
type Validation struct {
	Valid bool    `json:"valid"`
	Type  URLType `json:"type,omitempty"`
	URL   string  `json:"url"`
}

// Resolver builds query variants, runs them through a search provider, and
// extracts scored LinkedIn URLs from the results.
type Resolver struct {
	provider websearch.Provider
}

// NewResolver creates a resolver backed by provider.
func NewResolver(provider websearch.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// SearchCompany resolves the LinkedIn company page for companyName,
// optionally narrowed by city. An empty or NA name short-circuits to a
// zero-confidence result without issuing any external call.
func (r *Resolver) SearchCompany(ctx context.Context, companyName, city string) (Resolution, error) {
	if types.IsNA(companyName) {
		return emptyResolution(), nil
	}

	results := r.executeQueries(ctx, companySearchQueries(companyName, city))
	url := extractURL(results, TypeCompany)
	return Resolution{
		URL:        types.OrNA(url),
		Confidence: confidence(url, results, TypeCompany),
		Sources:    sources(results),
	}, nil
}

// SearchFounder resolves the LinkedIn personal profile for personName,
// optionally narrowed by companyName.
func (r *Resolver) SearchFounder(ctx context.Context, personName, companyName string) (Resolution, error) {
	if types.IsNA(personName) {
		return emptyResolution(), nil
	}

	results := r.executeQueries(ctx, founderSearchQueries(personName, companyName))
	url := extractURL(results, TypeProfile)
	return Resolution{
		URL:        types.OrNA(url),
		Confidence: confidence(url, results, TypeProfile),
		Sources:    sources(results),
	}, nil
}

// SearchAll runs the company and founder resolutions concurrently. The two
// share no state, so no ordering between them is guaranteed.
func (r *Resolver) SearchAll(ctx context.Context, companyName, personName, city string) (Pair, error) {
	var pair Pair

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := r.SearchCompany(gctx, companyName, city)
		pair.Company = res
		return err
	})
	g.Go(func() error {
		res, err := r.SearchFounder(gctx, personName, companyName)
		pair.Founder = res
		return err
	})

	if err := g.Wait(); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// ValidateURL classifies url without any external call.
func ValidateURL(url string) Validation {
	if types.IsNA(url) {
		return Validation{Valid: false, URL: types.NA}
	}

	lower := strings.ToLower(url)
	switch {
	case !strings.Contains(lower, domainMarker):
		return Validation{Valid: false, URL: url}
	case strings.Contains(lower, companyMarker):
		return Validation{Valid: true, Type: TypeCompany, URL: url}
	case strings.Contains(lower, profileMarker):
		return Validation{Valid: true, Type: TypeProfile, URL: url}
	default:
		return Validation{Valid: false, URL: url}
	}
}

// companySearchQueries orders query variants most-specific-first; the
// extraction rule gives the first variant's results priority.
func companySearchQueries(companyName, city string) []string {
	cityStr := ""
	if city != "" {
		cityStr = " " + city
	}
	return []string{
		fmt.Sprintf("site:linkedin.com/company %q%s", companyName, cityStr),
		fmt.Sprintf("site:linkedin.com/company %q", companyName),
		fmt.Sprintf("%q official LinkedIn page%s", companyName, cityStr),
		fmt.Sprintf("%q LinkedIn%s", companyName+" company", cityStr),
	}
}

func founderSearchQueries(personName, companyName string) []string {
	return []string{
		fmt.Sprintf("site:linkedin.com/in %q %q", personName, companyName),
		fmt.Sprintf("site:linkedin.com/in %q", personName),
		fmt.Sprintf("%q %q LinkedIn", personName, companyName),
		fmt.Sprintf("%q LinkedIn profile", personName),
	}
}

// executeQueries runs the variants sequentially, deliberately not in
// parallel, to avoid bursting the provider with several calls at once.
// A failing query is logged and contributes zero results.
func (r *Resolver) executeQueries(ctx context.Context, queries []string) []websearch.Result {
	var all []websearch.Result
	for _, query := range queries {
		results, err := r.provider.Search(ctx, query)
		if err != nil {
			log.Printf("search failed for query %q: %v", query, err)
			continue
		}
		all = append(all, results...)
	}
	return all
}

// extractURL picks the first LinkedIn link of the requested shape from the
// gathered results, falling back to the first generic LinkedIn link if no
// shaped one exists. Returns "" when no LinkedIn link was found at all.
func extractURL(results []websearch.Result, want URLType) string {
	var linkedin []websearch.Result
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Link), domainMarker) {
			linkedin = append(linkedin, r)
		}
	}
	if len(linkedin) == 0 {
		return ""
	}

	marker := companyMarker
	if want == TypeProfile {
		marker = profileMarker
	}
	for _, r := range linkedin {
		if strings.Contains(strings.ToLower(r.Link), marker) {
			return normalizeURL(r.Link)
		}
	}

	// No shape match; fall back to the first generic LinkedIn link even
	// though its shape is unverified.
	return normalizeURL(linkedin[0].Link)
}

// normalizeURL trims whitespace and ensures a scheme prefix.
func normalizeURL(url string) string {
	normalized := strings.TrimSpace(url)
	if normalized == "" {
		return ""
	}
	if !strings.HasPrefix(normalized, "http") {
		normalized = "https://" + normalized
	}
	return normalized
}

// titleKeywords raise confidence when present in any result title.
var titleKeywords = []string{"official", "verified", "company", "profile"}

// confidence scores an extracted URL 0-100 from independent additive
// signals: repetition across results (up to 50), format validity (20),
// keyword-bearing titles (15), LinkedIn-domain presence (10), and shape
// match with the requested type (5).
func confidence(url string, results []websearch.Result, want URLType) int {
	if url == "" {
		return 0
	}

	score := 0

	occurrences := 0
	for _, r := range results {
		if strings.Contains(r.Link, url) {
			occurrences++
		}
	}
	score += min(occurrences*25, 50)

	if ValidateURL(url).Valid {
		score += 20
	}

	for _, r := range results {
		title := strings.ToLower(r.Title)
		matched := false
		for _, kw := range titleKeywords {
			if strings.Contains(title, kw) {
				matched = true
				break
			}
		}
		if matched {
			score += 15
			break
		}
	}

	for _, r := range results {
		if strings.Contains(r.Link, "linkedin.com") {
			score += 10
			break
		}
	}

	lower := strings.ToLower(url)
	if (want == TypeCompany && strings.Contains(lower, companyMarker)) ||
		(want == TypeProfile && strings.Contains(lower, profileMarker)) {
		score += 5
	}

	return min(score, 100)
}

func emptyResolution() Resolution {
	return Resolution{URL: types.NA, Confidence: 0, Sources: []websearch.Result{}}
}

func sources(results []websearch.Result) []websearch.Result {
	if results == nil {
		return []websearch.Result{}
	}
	return results
}
