package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const parisDoc = "# Paris merchants\n\n" +
	"Collected during the spring survey.\n\n" +
	"```json\n" +
	`[
  {"name": "Bakery Dupont", "address": "12 Rue de Rivoli", "highlights": "sourdough"},
  {"name": "Cafe Marat", "founder": "Jean Marat"}
]` + "\n```\n"

const berlinDoc = "# Berlin\n\n```json\n" +
	`[{"name": "Currywurst Haus", "source_city": "ignored", "source": "ignored"}]` +
	"\n```\n"

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Paris.md", parisDoc)
	writeCorpusFile(t, dir, "Berlin.md", berlinDoc)
	writeCorpusFile(t, dir, "index.md", "# Index\n\n```json\n[{\"name\": \"skip me\"}]\n```\n")
	writeCorpusFile(t, dir, "notes.txt", "not markdown")

	snap, err := ParseDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.FileCount)
	assert.Equal(t, 2, snap.SuccessCount)
	assert.Equal(t, 3, snap.MerchantCount)
	assert.Equal(t, 2, snap.CityCount)
	assert.Equal(t, Version, snap.Version)
	assert.Len(t, snap.CityIndex["Paris"], 2)
	assert.Len(t, snap.CityIndex["Berlin"], 1)
}

func TestParseDir_StampsSourceFields(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Berlin.md", berlinDoc)

	snap, err := ParseDir(dir)
	require.NoError(t, err)
	require.Len(t, snap.Merchants, 1)

	// Document-embedded values are overwritten by the file identity.
	assert.Equal(t, "Berlin", snap.Merchants[0].SourceCity)
	assert.Equal(t, SourceMarker, snap.Merchants[0].Source)
}

func TestParseDir_MissingDirectory(t *testing.T) {
	snap, err := ParseDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, 0, snap.MerchantCount)
	assert.NotNil(t, snap.Merchants)
	assert.NotNil(t, snap.CityIndex)
}

func TestParseDir_NoJSONBlock(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Lyon.md", "# Lyon\n\nJust prose, no data yet.\n")

	snap, err := ParseDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.FileCount)
	assert.Equal(t, 0, snap.SuccessCount)
	assert.Equal(t, 0, snap.MerchantCount)
}

func TestParseDir_NonArrayBlockIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Nice.md", "```json\n{\"name\": \"not an array\"}\n```\n")
	writeCorpusFile(t, dir, "Paris.md", parisDoc)

	snap, err := ParseDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.MerchantCount)
	assert.NotContains(t, snap.CityIndex, "Nice")
}

func TestParseDir_MalformedJSONSkipsFile(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Broken.md", "```json\n[{\"name\": \"trailing\",}]\n```\n")
	writeCorpusFile(t, dir, "Paris.md", parisDoc)

	snap, err := ParseDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.FileCount)
	assert.Equal(t, 1, snap.SuccessCount)
	assert.Equal(t, 2, snap.MerchantCount)
}

func TestParseDir_FirstJSONBlockWins(t *testing.T) {
	doc := "```json\n[{\"name\": \"First\"}]\n```\n\n```json\n[{\"name\": \"Second\"}]\n```\n"
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Twice.md", doc)

	snap, err := ParseDir(dir)
	require.NoError(t, err)
	require.Len(t, snap.Merchants, 1)
	assert.Equal(t, "First", snap.Merchants[0].Name)
}

func TestParseDir_UnknownFieldsPreserved(t *testing.T) {
	doc := "```json\n[{\"name\": \"Extra Shop\", \"wechat\": \"extra-1\"}]\n```\n"
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Tokyo.md", doc)

	snap, err := ParseDir(dir)
	require.NoError(t, err)
	require.Len(t, snap.Merchants, 1)
	assert.Equal(t, "extra-1", snap.Merchants[0].Extra["wechat"])
	assert.Equal(t, snap.Merchants, snap.CityIndex["Tokyo"])
}
