package corpus

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

// fuzzyField binds a merchant field to its search weight. Name carries the
// highest weight so a match there outranks an equally-close match in a
// lower-weighted field.
type fuzzyField struct {
	name   string
	weight float64
	get    func(types.Merchant) string
}

var fuzzyFields = []fuzzyField{
	{"name", 5, func(m types.Merchant) string { return m.Name }},
	{"highlights", 3, func(m types.Merchant) string { return m.Highlights }},
	{"address", 2, func(m types.Merchant) string { return m.Address }},
	{"city", 2, func(m types.Merchant) string { return m.SourceCity }},
	{"sourcing_needs", 2, func(m types.Merchant) string { return m.SourcingNeeds }},
	{"founder", 1, func(m types.Merchant) string { return m.Founder }},
	{"email", 1, func(m types.Merchant) string { return m.Email }},
	{"country", 1, func(m types.Merchant) string { return m.Country }},
}

// FuzzyIndex answers ranked approximate-match queries over a merchant list.
// Exact substring matching is insufficient here: merchant names and
// addresses are multilingual and inconsistently romanized, so scoring
// tolerates transliteration variance and partial user queries.
type FuzzyIndex struct {
	merchants []types.Merchant
}

// Hit is one ranked query result. Score is the raw match distance in
// [0, 1], where 0 is a perfect match.
type Hit struct {
	Merchant types.Merchant
	Score    float64
}

// NewFuzzyIndex builds an index over the full flat merchant list.
func NewFuzzyIndex(merchants []types.Merchant) *FuzzyIndex {
	return &FuzzyIndex{merchants: merchants}
}

// Query returns all merchants with any match signal for text, ranked best
// first. The index does not apply a minimum-score cutoff; ranking is its
// only responsibility.
func (ix *FuzzyIndex) Query(text string) []Hit {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil
	}

	var hits []Hit
	for _, m := range ix.merchants {
		score := ix.scoreMerchant(m, tokens)
		if score >= 1 {
			continue // no signal in any field
		}
		hits = append(hits, Hit{Merchant: m, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score < hits[j].Score
	})
	return hits
}

// scoreMerchant combines per-field distances. Weight acts as an exponent on
// the field distance, so for equally-close matches the higher-weighted
// field yields the smaller (better) combined score.
func (ix *FuzzyIndex) scoreMerchant(m types.Merchant, tokens []string) float64 {
	best := 1.0
	for _, f := range fuzzyFields {
		value := f.get(m)
		if types.IsNA(value) {
			continue
		}
		dist := fieldDistance(tokens, strings.ToLower(value))
		if dist >= 1 {
			continue
		}
		weighted := math.Pow(dist, f.weight)
		if weighted < best {
			best = weighted
		}
	}
	return best
}

// fieldDistance averages per-token distances against a field value.
// A token scores by its best similarity against any word in the field,
// with substring containment treated as a near-match to tolerate partial
// queries and unsegmented scripts.
func fieldDistance(tokens []string, value string) float64 {
	words := strings.Fields(value)
	if len(words) == 0 {
		words = []string{value}
	}

	total := 0.0
	for _, token := range tokens {
		best := 0.0
		if strings.Contains(value, token) {
			best = 0.95
		}
		for _, word := range words {
			if sim := jaroWinkler(token, word); sim > best {
				best = sim
			}
		}
		if best < 0.6 {
			best = 0 // below this, similarity is noise
		}
		total += 1 - best
	}
	return total / float64(len(tokens))
}

// jaroWinkler computes rune-level Jaro-Winkler similarity in [0, 1].
func jaroWinkler(a, b string) float64 {
	if a == b {
		return 1
	}

	jaro := jaroSim([]rune(a), []rune(b))

	ra, rb := []rune(a), []rune(b)
	prefix := 0
	for i := 0; i < len(ra) && i < len(rb) && i < 4; i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}
	return jaro + float64(prefix)*0.1*(1-jaro)
}

func jaroSim(a, b []rune) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	matchDist := max(len(a), len(b))/2 - 1
	if matchDist < 0 {
		matchDist = 0
	}

	aMatch := make([]bool, len(a))
	bMatch := make([]bool, len(b))
	matches := 0

	for i := range a {
		start := max(0, i-matchDist)
		end := min(len(b), i+matchDist+1)
		for j := start; j < end; j++ {
			if bMatch[j] || a[i] != b[j] {
				continue
			}
			aMatch[i] = true
			bMatch[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i := range a {
		if !aMatch[i] {
			continue
		}
		for !bMatch[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	return (m/float64(len(a)) + m/float64(len(b)) + (m-float64(transpositions)/2)/m) / 3
}
