package transitions

import (
	"strings"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

// Assemble stitches per-cluster summaries into the final document, in batch
// order. Every paragraph after the first is preceded by a transition phrase
// keyed on its taste when useTransitions is set. Empty summaries (failed
// clusters) are skipped entirely so the reader never sees a dangling
// transition.
func (h *Handler) Assemble(lang string, tastes, summaries []string, useTransitions bool) (string, error) {
	var b strings.Builder
	emitted := 0
	for i, summary := range summaries {
		if strings.TrimSpace(summary) == "" {
			continue
		}
		if useTransitions && emitted > 0 {
			phrase, err := h.Extract(lang, tastes[i])
			if err != nil {
				return "", err
			}
			b.WriteString(phrase)
			b.WriteString("\n")
		}
		b.WriteString(summary)
		b.WriteString("\n")
		emitted++
	}
	return b.String(), nil
}

// result paragraphs in emission order, for callers that want structure
// instead of the rendered string.
func Paragraphs(tastes, summaries []string) models.TailoredResult {
	var res models.TailoredResult
	for i, summary := range summaries {
		if strings.TrimSpace(summary) == "" {
			continue
		}
		res.Paragraphs = append(res.Paragraphs, models.TailoredParagraph{Taste: tastes[i], Summary: summary})
	}
	return res
}
