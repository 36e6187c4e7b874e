package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jonathan/leadgen/internal/types"
)

// indexFile is the reserved document excluded from parsing.
const indexFile = "index.md"

// jsonBlockRe locates the first fenced JSON code block in a document.
var jsonBlockRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ParseDir reads every *.md file in dir (excluding index.md) and aggregates
// the merchants embedded in their JSON blocks into a Snapshot. Per-file
// failures are logged and skipped; a missing or empty directory yields an
// empty snapshot rather than an error.
func ParseDir(dir string) (*Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("corpus directory %s does not exist", dir)
			return EmptySnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read corpus directory %s: %w", dir, err)
	}

	var mdFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || name == indexFile {
			continue
		}
		mdFiles = append(mdFiles, name)
	}

	log.Printf("found %d corpus files in %s", len(mdFiles), dir)
	if len(mdFiles) == 0 {
		return EmptySnapshot(), nil
	}

	allMerchants := []types.Merchant{}
	cityIndex := map[string][]types.Merchant{}
	successCount := 0

	for _, name := range mdFiles {
		cityName := strings.TrimSuffix(name, ".md")

		merchants, err := parseFile(filepath.Join(dir, name), cityName)
		if err != nil {
			log.Printf("failed to parse %s: %v", name, err)
			continue
		}

		allMerchants = append(allMerchants, merchants...)
		if len(merchants) > 0 {
			cityIndex[cityName] = merchants
			successCount++
		}
		log.Printf("%s: %d merchants", name, len(merchants))
	}

	return &Snapshot{
		LoadTime:      time.Now(),
		Version:       Version,
		FileCount:     len(mdFiles),
		SuccessCount:  successCount,
		MerchantCount: len(allMerchants),
		CityCount:     len(cityIndex),
		Merchants:     allMerchants,
		CityIndex:     cityIndex,
	}, nil
}

// parseFile extracts the merchant array from a single city document.
// A document without a JSON block, or whose block is not an array,
// contributes zero merchants.
func parseFile(path, cityName string) ([]types.Merchant, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	match := jsonBlockRe.FindSubmatch(content)
	if match == nil {
		log.Printf("no JSON block found in %s.md", cityName)
		return nil, nil
	}

	var merchants []types.Merchant
	if err := json.Unmarshal(match[1], &merchants); err != nil {
		// Distinguish "not an array" from malformed JSON: an object or
		// scalar is non-fatal per the corpus contract.
		var probe any
		if probeErr := json.Unmarshal(match[1], &probe); probeErr == nil {
			log.Printf("JSON block in %s.md is not an array", cityName)
			return nil, nil
		}
		return nil, fmt.Errorf("malformed JSON block: %w", err)
	}

	for i := range merchants {
		merchants[i].SourceCity = cityName
		merchants[i].Source = SourceMarker
	}
	return merchants, nil
}
