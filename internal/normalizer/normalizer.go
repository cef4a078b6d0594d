// Package normalizer turns raw retrieval results into plain-text documents
// the rest of the pipeline can work on. Markup, script blocks and citation
// residue are stripped here, once, so downstream stages see only text.
package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
	"github.com/SmartAppUnipi/ArtGuide/internal/util"
)

var (
	preBlockRe  = regexp.MustCompile(`(?s)<pre>.*?</pre>`)
	codeBlockRe = regexp.MustCompile(`(?s)<code>.*?</code>`)
	bracketRe   = regexp.MustCompile(`\[[^\]]*\]`)
	punctRe     = regexp.MustCompile(`([.,])([^0-9\s])`)
)

// Normalize converts one raw result into a Document. Returns nil when the
// result carries no text at all; callers filter those out.
func Normalize(raw models.RawResult, id int) *models.Document {
	plain := PlainText(raw)
	if plain == "" {
		return nil
	}
	return &models.Document{
		ID:             id,
		Title:          raw.Title,
		URL:            raw.URL,
		Keywords:       raw.Keywords,
		Sections:       raw.Sections,
		PlainText:      plain,
		NormalizedText: normalizeText(plain),
		Relevance:      raw.Score,
	}
}

// NormalizeBatch maps a batch of raw results to documents, drops the empty
// ones, and min-max normalizes relevance across the survivors so the scoring
// policy always sees [0,1] regardless of the retriever's native scale.
func NormalizeBatch(raws []models.RawResult) []*models.Document {
	docs := make([]*models.Document, 0, len(raws))
	for i, raw := range raws {
		if d := Normalize(raw, i); d != nil {
			docs = append(docs, d)
		}
	}
	scores := make([]float64, len(docs))
	for i, d := range docs {
		scores[i] = d.Relevance
	}
	util.MinMaxNormalize(scores)
	for i, d := range docs {
		d.Relevance = scores[i]
	}
	return docs
}

// PlainText concatenates the title and every section title/content with
// paragraph breaks. Missing fields contribute nothing.
func PlainText(raw models.RawResult) string {
	var b strings.Builder
	if t := strings.TrimSpace(raw.Title); t != "" {
		b.WriteString(t)
		b.WriteString(".\n")
	}
	for _, section := range raw.Sections {
		if t := strings.TrimSpace(section.Title); t != "" {
			b.WriteString(t)
			b.WriteString(".\n")
		}
		if c := strings.TrimSpace(section.Content); c != "" {
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func normalizeText(text string) string {
	text = preBlockRe.ReplaceAllString(text, "")
	text = codeBlockRe.ReplaceAllString(text, "")
	text = stripMarkup(text)
	text = bracketRe.ReplaceAllString(text, "")
	// Reinstate the space after sentence punctuation that scrapers tend to
	// swallow, without breaking decimal numbers.
	text = punctRe.ReplaceAllString(text, "$1 $2")
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(util.CleanText(text))
}

// stripMarkup removes residual HTML tags, keeping only text content.
// Script and style bodies are dropped entirely.
func stripMarkup(text string) string {
	if !strings.ContainsAny(text, "<>") {
		return text
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if n := string(name); n == "script" || n == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if n := string(name); n == "script" || n == "style" {
				if skip > 0 {
					skip--
				}
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}
