package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

func TestNormalizeEmptyResultIsFiltered(t *testing.T) {
	doc := Normalize(models.RawResult{}, 0)
	assert.Nil(t, doc, "a raw result with no title and no sections has empty plain text")

	doc = Normalize(models.RawResult{Sections: []models.RawSection{{}, {}}}, 0)
	assert.Nil(t, doc, "sections with missing fields contribute nothing")
}

func TestNormalizePlainText(t *testing.T) {
	raw := models.RawResult{
		Title: "Leaning Tower",
		Sections: []models.RawSection{
			{Title: "History", Content: "Construction began in 1173."},
			{Content: "The tilt worsened over centuries."},
		},
	}
	doc := Normalize(raw, 3)
	require.NotNil(t, doc)
	assert.Equal(t, 3, doc.ID)
	assert.Contains(t, doc.PlainText, "Leaning Tower.")
	assert.Contains(t, doc.PlainText, "History.")
	assert.Contains(t, doc.PlainText, "Construction began in 1173.")
	assert.Contains(t, doc.PlainText, "The tilt worsened over centuries.")
}

func TestNormalizeStripsMarkup(t *testing.T) {
	raw := models.RawResult{
		Title: "Page",
		Sections: []models.RawSection{
			{Content: "Before <pre>var x = 1;</pre> after <code>inline()</code> done."},
			{Content: "A <b>bold</b> claim [12] with <script>alert(1)</script> noise."},
		},
	}
	doc := Normalize(raw, 0)
	require.NotNil(t, doc)
	assert.NotContains(t, doc.NormalizedText, "var x")
	assert.NotContains(t, doc.NormalizedText, "inline()")
	assert.NotContains(t, doc.NormalizedText, "<b>")
	assert.NotContains(t, doc.NormalizedText, "alert")
	assert.NotContains(t, doc.NormalizedText, "[12]")
	assert.Contains(t, doc.NormalizedText, "bold")
	assert.Contains(t, doc.NormalizedText, "Before")
}

func TestNormalizeCollapsesLineBreaks(t *testing.T) {
	raw := models.RawResult{
		Title:    "T",
		Sections: []models.RawSection{{Content: "line one\nline two\n\nline three"}},
	}
	doc := Normalize(raw, 0)
	require.NotNil(t, doc)
	assert.False(t, strings.Contains(doc.NormalizedText, "\n"))
}

func TestNormalizeBatchRelevance(t *testing.T) {
	raws := []models.RawResult{
		{Title: "A", Score: 10},
		{}, // filtered out
		{Title: "B", Score: 30},
		{Title: "C", Score: 20},
	}
	docs := NormalizeBatch(raws)
	require.Len(t, docs, 3)
	assert.Equal(t, 0.0, docs[0].Relevance)
	assert.Equal(t, 1.0, docs[1].Relevance)
	assert.Equal(t, 0.5, docs[2].Relevance)
	// document ids track the input positions
	assert.Equal(t, 0, docs[0].ID)
	assert.Equal(t, 2, docs[1].ID)
	assert.Equal(t, 3, docs[2].ID)
}
