// Package corpus loads the merchant corpus from markdown source documents,
// caches it on disk, and answers fuzzy search queries over it.
package corpus

import (
	"time"

	"github.com/jonathan/leadgen/internal/types"
)

// Version is the cache blob format version, bumped on incompatible changes.
const Version = "1.0"

// SourceMarker tags merchants that originate from the markdown corpus.
const SourceMarker = "md-corpus"

// Snapshot is one immutable, timestamped materialization of the corpus.
// JSON field names are part of the persisted cache format and must not change.
type Snapshot struct {
	LoadTime      time.Time                   `json:"loadTime"`
	Version       string                      `json:"version"`
	FileCount     int                         `json:"fileCount"`
	SuccessCount  int                         `json:"successCount"`
	MerchantCount int                         `json:"merchantCount"`
	CityCount     int                         `json:"cityCount"`
	Merchants     []types.Merchant            `json:"allMerchants"`
	CityIndex     map[string][]types.Merchant `json:"cityIndex"`
}

// EmptySnapshot returns a snapshot with zero counts and empty collections.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		LoadTime:  time.Now(),
		Version:   Version,
		Merchants: []types.Merchant{},
		CityIndex: map[string][]types.Merchant{},
	}
}

// CacheInfo summarizes a loaded snapshot for status reporting.
type CacheInfo struct {
	LoadTime      time.Time `json:"loadTime"`
	FileCount     int       `json:"fileCount"`
	SuccessCount  int       `json:"successCount"`
	MerchantCount int       `json:"merchantCount"`
	CityCount     int       `json:"cityCount"`
	Cities        []string  `json:"cities"`
}
