// Package prompts holds the embedded prompt catalogs for the generative
// model: discovery.json carries one prompt per discovery mode, email.json
// the outreach drafting prompt. A catalog is a JSON object mapping an
// operation key to its template text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var catalogFS embed.FS

// Catalogs are parsed once and kept for the life of the process; prompt
// lookups happen on every discovery and drafting call.
var (
	catalogMu sync.RWMutex
	catalogs  = map[string]map[string]string{}
)

// Get returns the template stored under key in the named catalog file
// (e.g. "discovery.json", "balanced").
func Get(filename, key string) (string, error) {
	catalog, err := loadCatalog(filename)
	if err != nil {
		return "", err
	}

	template, ok := catalog[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// List returns the operation keys of a catalog in sorted order. The CLI
// uses it to show which discovery modes are available.
func List(filename string) ([]string, error) {
	catalog, err := loadCatalog(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(catalog))
	for key := range catalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching key are left intact, so a missing
// substitution shows up verbatim in the prompt rather than vanishing.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

func loadCatalog(filename string) (map[string]string, error) {
	catalogMu.RLock()
	catalog, ok := catalogs[filename]
	catalogMu.RUnlock()
	if ok {
		return catalog, nil
	}

	data, err := catalogFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	catalogMu.Lock()
	catalogs[filename] = catalog
	catalogMu.Unlock()
	return catalog, nil
}

// ClearCache drops the parsed catalogs so the next lookup re-reads the
// embedded files. Used by tests.
func ClearCache() {
	catalogMu.Lock()
	catalogs = map[string]map[string]string{}
	catalogMu.Unlock()
}
