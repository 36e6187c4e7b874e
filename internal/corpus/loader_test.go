package corpus

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadgen/internal/types"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewCacheStore(filepath.Join(t.TempDir(), "corpus.json"), DefaultCacheTTL)
	return NewLoader(dir, store), dir
}

func TestLoadAll_BuildsFromSource(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	writeCorpusFile(t, dir, "Berlin.md", berlinDoc)

	snap, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, 3, snap.MerchantCount)
	assert.Equal(t, 2, snap.CityCount)
}

func TestLoadAll_AdoptsFreshCache(t *testing.T) {
	dir := t.TempDir()
	store := NewCacheStore(filepath.Join(t.TempDir(), "corpus.json"), DefaultCacheTTL)

	// Persist a snapshot that disagrees with the (empty) source directory.
	require.NoError(t, store.Save(testSnapshot(time.Now())))

	loader := NewLoader(dir, store)
	snap, err := loader.LoadAll()
	require.NoError(t, err)

	// The fresh cache wins; the empty directory is never parsed.
	assert.Equal(t, 1, snap.MerchantCount)
	assert.Equal(t, "Bakery Dupont", snap.Merchants[0].Name)
}

func TestLoadAll_StaleCacheRebuilds(t *testing.T) {
	dir := t.TempDir()
	store := NewCacheStore(filepath.Join(t.TempDir(), "corpus.json"), DefaultCacheTTL)
	require.NoError(t, store.Save(testSnapshot(time.Now().Add(-25*time.Hour))))

	writeCorpusFile(t, dir, "Paris.md", parisDoc)

	loader := NewLoader(dir, store)
	snap, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.MerchantCount)

	// The rebuild is persisted over the stale blob.
	reloaded := store.Load()
	require.NotNil(t, reloaded)
	assert.Equal(t, 2, reloaded.MerchantCount)
}

func TestSearch_NoFiltersReturnsHeadInOrder(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	_, err := loader.LoadAll()
	require.NoError(t, err)

	results := loader.Search(Filters{})
	require.Len(t, results, 2)
	assert.Equal(t, "Bakery Dupont", results[0].Name)
	assert.Equal(t, "Cafe Marat", results[1].Name)
	assert.Equal(t, 0, results[0].MatchScore)
	assert.Empty(t, results[0].MatchMethod)
}

func TestSearch_CapsAtFifty(t *testing.T) {
	loader, dir := newTestLoader(t)

	doc := "```json\n["
	for i := 0; i < 60; i++ {
		if i > 0 {
			doc += ","
		}
		doc += fmt.Sprintf(`{"name": "Shop %02d"}`, i)
	}
	doc += "]\n```\n"
	writeCorpusFile(t, dir, "Mega.md", doc)

	_, err := loader.LoadAll()
	require.NoError(t, err)

	assert.Len(t, loader.Search(Filters{}), 50)
	assert.Len(t, loader.Search(Filters{Keyword: "shop"}), 50)
}

func TestSearch_FuzzyScoresNormalized(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	_, err := loader.LoadAll()
	require.NoError(t, err)

	results := loader.Search(Filters{Keyword: "Bakery Dupont"})
	require.NotEmpty(t, results)
	assert.Equal(t, "Bakery Dupont", results[0].Name)
	assert.Equal(t, 100, results[0].MatchScore)
	assert.Equal(t, MatchMethodFuzzy, results[0].MatchMethod)
}

func TestSearch_FiltersJoined(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	writeCorpusFile(t, dir, "Berlin.md", berlinDoc)
	_, err := loader.LoadAll()
	require.NoError(t, err)

	results := loader.Search(Filters{City: "Berlin", Keyword: "currywurst"})
	require.NotEmpty(t, results)
	assert.Equal(t, "Currywurst Haus", results[0].Name)
}

func TestSearch_NotLoaded(t *testing.T) {
	loader, _ := newTestLoader(t)
	assert.Empty(t, loader.Search(Filters{Keyword: "anything"}))
}

func TestSubstringSearch_Scoring(t *testing.T) {
	merchants := []types.Merchant{
		{Name: "Plain Shop", Highlights: "famous dumplings"},
		{Name: "Dumpling Palace"},
		{Name: "Nothing Here"},
	}

	results := substringSearch(merchants, "dumpling")
	require.Len(t, results, 2)
	assert.Equal(t, "Dumpling Palace", results[0].Name)
	assert.Equal(t, 5, results[0].MatchScore)
	assert.Equal(t, 2, results[1].MatchScore)
	assert.Equal(t, MatchMethodSubstring, results[0].MatchMethod)
}

func TestSearchByCity(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	_, err := loader.LoadAll()
	require.NoError(t, err)

	assert.Len(t, loader.SearchByCity("Paris"), 2)
	assert.Len(t, loader.SearchByCity("paris"), 2)
	assert.Len(t, loader.SearchByCity("PARIS"), 2)
	assert.Empty(t, loader.SearchByCity("Par"))
	assert.Empty(t, loader.SearchByCity("Madrid"))
}

func TestReload_DiscardsCache(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	_, err := loader.LoadAll()
	require.NoError(t, err)

	// The corpus gains a city; a plain LoadAll would still serve the cache.
	writeCorpusFile(t, dir, "Berlin.md", berlinDoc)

	snap, err := loader.Reload()
	require.NoError(t, err)
	assert.Equal(t, 3, snap.MerchantCount)
	assert.Equal(t, 2, snap.CityCount)
}

func TestClearCache_ResetsState(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	_, err := loader.LoadAll()
	require.NoError(t, err)
	require.NotNil(t, loader.CacheInfo())

	require.NoError(t, loader.ClearCache())
	assert.Nil(t, loader.CacheInfo())
	assert.Empty(t, loader.Search(Filters{}))
}

func TestCacheInfo(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	writeCorpusFile(t, dir, "Berlin.md", berlinDoc)
	_, err := loader.LoadAll()
	require.NoError(t, err)

	info := loader.CacheInfo()
	require.NotNil(t, info)
	assert.Equal(t, 3, info.MerchantCount)
	assert.Equal(t, []string{"Berlin", "Paris"}, info.Cities)
}
