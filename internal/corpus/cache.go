package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultCacheTTL is the freshness window for a persisted snapshot.
const DefaultCacheTTL = 24 * time.Hour

// CacheStore persists a single corpus snapshot as a timestamped JSON blob.
type CacheStore struct {
	path string
	ttl  time.Duration
}

// NewCacheStore creates a store writing to path. A non-positive ttl uses
// DefaultCacheTTL.
func NewCacheStore(path string, ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheStore{path: path, ttl: ttl}
}

// Load returns the persisted snapshot, or nil if none exists or the blob
// fails to parse. A corrupt cache is treated as absent, not fatal.
func (s *CacheStore) Load() *Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("failed to parse cache %s: %v", s.path, err)
		return nil
	}
	return &snap
}

// Save durably writes the snapshot. The write goes to a temp file first and
// is renamed into place so a failed write cannot corrupt a prior valid blob.
func (s *CacheStore) Save(snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cache file %s: %w", s.path, err)
	}

	log.Printf("cache saved: %s", s.path)
	return nil
}

// Clear removes the persisted snapshot. Removing an absent blob is a no-op.
func (s *CacheStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file %s: %w", s.path, err)
	}
	return nil
}

// IsFresh reports whether snap exists and its age is within the freshness
// window. Absent and stale snapshots are treated identically by the loader.
func (s *CacheStore) IsFresh(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	return time.Since(snap.LoadTime) < s.ttl
}
