package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/types"
)

func fuzzyFixture() []types.Merchant {
	return []types.Merchant{
		{Name: "Bakery Dupont", SourceCity: "Paris", Highlights: "sourdough bread"},
		{Name: "Cafe Marat", SourceCity: "Paris", Founder: "Jean Marat"},
		{Name: "Currywurst Haus", SourceCity: "Berlin", Highlights: "street food"},
		{Name: "Dupont Imports", SourceCity: "Lyon", SourcingNeeds: "packaging"},
	}
}

func TestQuery_ExactNameRanksFirst(t *testing.T) {
	ix := NewFuzzyIndex(fuzzyFixture())

	hits := ix.Query("Bakery Dupont")
	require.NotEmpty(t, hits)
	assert.Equal(t, "Bakery Dupont", hits[0].Merchant.Name)
	assert.InDelta(t, 0, hits[0].Score, 1e-9)
}

func TestQuery_TypoStillMatches(t *testing.T) {
	ix := NewFuzzyIndex(fuzzyFixture())

	hits := ix.Query("bakerry dupond")
	require.NotEmpty(t, hits)
	assert.Equal(t, "Bakery Dupont", hits[0].Merchant.Name)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestQuery_NameOutranksLowerWeightedFields(t *testing.T) {
	merchants := []types.Merchant{
		{Name: "Cafe Central", Founder: "Marat"},
		{Name: "Marat Supplies", SourceCity: "Nantes"},
	}
	ix := NewFuzzyIndex(merchants)

	// Both records are equally close to the typo; the name field's higher
	// weight must pull its merchant ahead of the founder match.
	hits := ix.Query("marrat")
	require.Len(t, hits, 2)
	assert.Equal(t, "Marat Supplies", hits[0].Merchant.Name)
}

func TestQuery_NoSignalExcluded(t *testing.T) {
	ix := NewFuzzyIndex(fuzzyFixture())
	assert.Empty(t, ix.Query("zzzzqqqq"))
}

func TestQuery_EmptyQuery(t *testing.T) {
	ix := NewFuzzyIndex(fuzzyFixture())
	assert.Nil(t, ix.Query("   "))
}

func TestQuery_CityToken(t *testing.T) {
	ix := NewFuzzyIndex(fuzzyFixture())

	hits := ix.Query("berlin")
	require.NotEmpty(t, hits)
	assert.Equal(t, "Currywurst Haus", hits[0].Merchant.Name)
}

func TestQuery_NAFieldsIgnored(t *testing.T) {
	merchants := []types.Merchant{{Name: "Plain Shop", Founder: types.NA, Highlights: "N/A"}}
	ix := NewFuzzyIndex(merchants)

	// The NA sentinel must never count as field content.
	assert.Empty(t, ix.Query("n/a"))
}

func TestJaroWinkler(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"dupont", "dupont", 1, 1},
		{"dupont", "dupond", 0.9, 1},
		{"dupont", "zzz", 0, 0.1},
		{"", "dupont", 0, 0},
	}

	for _, tt := range tests {
		got := jaroWinkler(tt.a, tt.b)
		assert.GreaterOrEqual(t, got, tt.min, "jaroWinkler(%q, %q)", tt.a, tt.b)
		assert.LessOrEqual(t, got, tt.max, "jaroWinkler(%q, %q)", tt.a, tt.b)
	}
}
