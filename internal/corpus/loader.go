package corpus

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/jonathan/leadgen/internal/types"
)

// maxSearchResults caps the number of merchants returned by Search.
const maxSearchResults = 50

// MatchMethodFuzzy tags results ranked by the fuzzy index.
const MatchMethodFuzzy = "fuzzy"

// MatchMethodSubstring tags results from the naive fallback scan.
const MatchMethodSubstring = "substring"

// Filters narrows a corpus search. All fields are optional; empty filters
// return the head of the corpus in insertion order.
type Filters struct {
	City     string `json:"city"`
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
}

// ScoredMerchant is a merchant with its match score attached. Score is
// normalized to 0-100, higher is better.
type ScoredMerchant struct {
	types.Merchant
	MatchScore  int    `json:"match_score"`
	MatchMethod string `json:"match_method,omitempty"`
}

// Loader owns the in-memory corpus snapshot and its fuzzy index. It is the
// only mutator of that state; the snapshot+index pair is replaced wholesale
// so readers never observe a half-built index.
type Loader struct {
	dir   string
	store *CacheStore

	mu    sync.RWMutex
	snap  *Snapshot
	index *FuzzyIndex
}

// NewLoader creates a loader reading source documents from dir and caching
// through store.
func NewLoader(dir string, store *CacheStore) *Loader {
	return &Loader{dir: dir, store: store}
}

// LoadAll adopts the cached snapshot when fresh, otherwise rebuilds from the
// source directory and persists the result. A rebuild failure with no valid
// cache to fall back to is fatal to the call.
func (l *Loader) LoadAll() (*Snapshot, error) {
	if cached := l.store.Load(); l.store.IsFresh(cached) {
		log.Printf("cache valid, loaded %d merchants across %d cities",
			cached.MerchantCount, cached.CityCount)
		l.adopt(cached)
		return cached, nil
	}

	log.Printf("cache absent or stale, rebuilding corpus from %s", l.dir)
	snap, err := ParseDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("corpus rebuild failed: %w", err)
	}

	if err := l.store.Save(snap); err != nil {
		return nil, fmt.Errorf("failed to persist corpus snapshot: %w", err)
	}

	l.adopt(snap)
	log.Printf("corpus loaded: %d files, %d merchants, %d cities",
		snap.FileCount, snap.MerchantCount, snap.CityCount)
	return snap, nil
}

// adopt atomically replaces the in-memory snapshot and index.
func (l *Loader) adopt(snap *Snapshot) {
	index := NewFuzzyIndex(snap.Merchants)
	l.mu.Lock()
	l.snap = snap
	l.index = index
	l.mu.Unlock()
}

// Search returns up to 50 merchants matching the filters. With no filters it
// returns the head of the corpus in insertion order. Filter strings are
// joined into one free-text query for the fuzzy index; if the index is not
// built, a naive substring scan is used instead.
func (l *Loader) Search(f Filters) []ScoredMerchant {
	l.mu.RLock()
	snap, index := l.snap, l.index
	l.mu.RUnlock()

	if snap == nil || len(snap.Merchants) == 0 {
		return []ScoredMerchant{}
	}

	var parts []string
	for _, s := range []string{f.City, f.Category, f.Keyword} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	if len(parts) == 0 {
		results := make([]ScoredMerchant, 0, maxSearchResults)
		for _, m := range snap.Merchants {
			if len(results) == maxSearchResults {
				break
			}
			results = append(results, ScoredMerchant{Merchant: m})
		}
		return results
	}

	query := strings.Join(parts, " ")
	if index != nil {
		return fuzzySearch(index, query)
	}
	return substringSearch(snap.Merchants, query)
}

func fuzzySearch(index *FuzzyIndex, query string) []ScoredMerchant {
	hits := index.Query(query)
	results := make([]ScoredMerchant, 0, min(len(hits), maxSearchResults))
	for _, hit := range hits {
		if len(results) == maxSearchResults {
			break
		}
		results = append(results, ScoredMerchant{
			Merchant:    hit.Merchant,
			MatchScore:  int(math.Round((1 - hit.Score) * 100)),
			MatchMethod: MatchMethodFuzzy,
		})
	}
	return results
}

// substringSearch is the fallback when no fuzzy index is available:
// a case-insensitive scan over name, address, highlights and city, scoring
// name hits highest and city hits next.
func substringSearch(merchants []types.Merchant, query string) []ScoredMerchant {
	queryLower := strings.ToLower(query)

	var results []ScoredMerchant
	for _, m := range merchants {
		name := strings.ToLower(m.Name)
		address := strings.ToLower(m.Address)
		highlights := strings.ToLower(m.Highlights)
		city := strings.ToLower(m.SourceCity)

		score := 0
		switch {
		case strings.Contains(name, queryLower):
			score = 5
		case strings.Contains(city, queryLower):
			score = 3
		case strings.Contains(address, queryLower) || strings.Contains(highlights, queryLower):
			score = 2
		default:
			continue
		}
		results = append(results, ScoredMerchant{
			Merchant:    m,
			MatchScore:  score,
			MatchMethod: MatchMethodSubstring,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// SearchByCity returns the merchants of a city by case-insensitive exact
// key match, or an empty list if no key matches.
func (l *Loader) SearchByCity(city string) []types.Merchant {
	l.mu.RLock()
	snap := l.snap
	l.mu.RUnlock()

	if snap == nil {
		return []types.Merchant{}
	}

	cityLower := strings.ToLower(city)
	for name, merchants := range snap.CityIndex {
		if strings.ToLower(name) == cityLower {
			return merchants
		}
	}
	return []types.Merchant{}
}

// Reload unconditionally clears cached and in-memory state, then re-runs
// LoadAll.
func (l *Loader) Reload() (*Snapshot, error) {
	log.Printf("reloading corpus")
	if err := l.ClearCache(); err != nil {
		return nil, err
	}
	return l.LoadAll()
}

// ClearCache removes the persisted snapshot and resets in-memory state.
func (l *Loader) ClearCache() error {
	if err := l.store.Clear(); err != nil {
		return err
	}
	l.mu.Lock()
	l.snap = nil
	l.index = nil
	l.mu.Unlock()
	log.Printf("cache cleared")
	return nil
}

// CacheInfo summarizes the currently loaded snapshot, or returns nil if
// nothing is loaded.
func (l *Loader) CacheInfo() *CacheInfo {
	l.mu.RLock()
	snap := l.snap
	l.mu.RUnlock()

	if snap == nil {
		return nil
	}

	cities := make([]string, 0, len(snap.CityIndex))
	for name := range snap.CityIndex {
		cities = append(cities, name)
	}
	sort.Strings(cities)

	return &CacheInfo{
		LoadTime:      snap.LoadTime,
		FileCount:     snap.FileCount,
		SuccessCount:  snap.SuccessCount,
		MerchantCount: snap.MerchantCount,
		CityCount:     snap.CityCount,
		Cities:        cities,
	}
}
