package transitions

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

const testData = `{
  "man": {
    "history": ["Speaking of its history,", "On the historical side,"]
  },
  "auto": {
    "zero_par": ["Moving on,"],
    "one_par": ["Regarding %s,", "As for %s,"],
    "two_par": ["Leaving %s for %s,"]
  }
}`

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "transitions_en.json"), []byte(testData), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "transitions_empty.json"), []byte(`{"man":{},"auto":{}}`), 0o644)
	require.NoError(t, err)
	return dir
}

func TestExtractManualTopic(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	phrase, err := h.Extract("en", "History")
	require.NoError(t, err)
	assert.Contains(t, []string{"Speaking of its history,", "On the historical side,"}, phrase)
}

func TestExtractGenericFallback(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	phrase, err := h.Extract("en", "sculpture")
	require.NoError(t, err)
	assert.Contains(t, []string{"Regarding sculpture,", "As for sculpture,"}, phrase)
}

func TestExtractEmptyTopic(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	phrase, err := h.Extract("en", "")
	require.NoError(t, err)
	assert.Equal(t, "Moving on,", phrase)
}

func TestExtractBetween(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	phrase, err := h.ExtractBetween("en", "history", "sculpture")
	require.NoError(t, err)
	assert.Equal(t, "Leaving history for sculpture,", phrase)
}

func TestExtractUnknownLanguage(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	_, err := h.Extract("xx", "history")
	assert.ErrorIs(t, err, models.ErrLanguageNotSupported)
}

func TestExtractNoCandidates(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	_, err := h.Extract("empty", "anything")
	assert.ErrorIs(t, err, models.ErrNoTransitionAvailable)
}

func TestExtractDeterministicWithSeed(t *testing.T) {
	dir := writeTestData(t)

	a := NewHandler(dir, rand.New(rand.NewSource(42)))
	b := NewHandler(dir, rand.New(rand.NewSource(42)))
	for i := 0; i < 10; i++ {
		pa, err := a.Extract("en", "history")
		require.NoError(t, err)
		pb, err := b.Extract("en", "history")
		require.NoError(t, err)
		assert.Equal(t, pa, pb)
	}
}

func TestAssemble(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	out, err := h.Assemble("en", []string{"history", "sculpture"}, []string{"First paragraph.", "Second paragraph."}, true)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "First paragraph.", lines[0], "no transition before the first paragraph")
	assert.Contains(t, []string{"Regarding sculpture,", "As for sculpture,"}, lines[1])
	assert.Equal(t, "Second paragraph.", lines[2])
}

func TestAssembleSkipsEmptySummaries(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	out, err := h.Assemble("en", []string{"a", "b", "c"}, []string{"", "Only survivor.", ""}, true)
	require.NoError(t, err)
	assert.Equal(t, "Only survivor.\n", out, "a lone paragraph needs no transition")
}

func TestAssembleWithoutTransitions(t *testing.T) {
	h := NewHandler(writeTestData(t), rand.New(rand.NewSource(1)))

	out, err := h.Assemble("en", []string{"a", "b"}, []string{"One.", "Two."}, false)
	require.NoError(t, err)
	assert.Equal(t, "One.\nTwo.\n", out)
}

func TestParagraphs(t *testing.T) {
	res := Paragraphs([]string{"a", "b", "c"}, []string{"First.", "", "Third."})
	require.Len(t, res.Paragraphs, 2)
	assert.Equal(t, "a", res.Paragraphs[0].Taste)
	assert.Equal(t, "Third.", res.Paragraphs[1].Summary)
}
