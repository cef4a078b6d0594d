// Package extractor produces the candidate salient sentences of one
// document: extractive candidates, cleanup, embeddings and per-taste scores.
// Extraction is independent across documents, which is what allows the
// orchestrator to fan it out over a worker pool.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/pgvector/pgvector-go"
	log "github.com/sirupsen/logrus"

	"github.com/SmartAppUnipi/ArtGuide/internal/config"
	"github.com/SmartAppUnipi/ArtGuide/internal/models"
	"github.com/SmartAppUnipi/ArtGuide/internal/scoring"
	"github.com/SmartAppUnipi/ArtGuide/internal/services"
	"github.com/SmartAppUnipi/ArtGuide/internal/util"
)

type Extractor struct {
	Embedder    services.EmbeddingProvider
	Readability services.ReadabilityScorer
	Candidates  services.SummarizationModel // extractive model for candidate selection
	Distance    services.Distance
	Weights     config.Weights

	Ratio     float64 // candidate compression ratio, ~0.3
	MinLength int     // minimum candidate length in chars

	tokenizer *sentences.DefaultSentenceTokenizer
}

func New(embedder services.EmbeddingProvider, readability services.ReadabilityScorer,
	candidates services.SummarizationModel, distance services.Distance,
	weights config.Weights, ratio float64, minLength int) *Extractor {
	return &Extractor{
		Embedder:    embedder,
		Readability: readability,
		Candidates:  candidates,
		Distance:    distance,
		Weights:     weights,
		Ratio:       ratio,
		MinLength:   minLength,
		tokenizer:   services.PunktTokenizer(),
	}
}

// Extract runs the per-document pipeline: readability, candidate selection,
// cleanup, embedding, per-taste scoring. A candidate-model failure yields an
// empty result, not an error; errors are reserved for embedding failures,
// which the orchestrator also degrades to an empty result.
func (e *Extractor) Extract(ctx context.Context, doc *models.Document, user *models.UserProfile) ([]*models.SalientSentence, error) {
	doc.Readability = scoring.NormalizeReadability(e.Readability.Score(doc.PlainText), user.ExpertiseLevel)

	candidates := e.candidateSentences(ctx, doc)
	if len(candidates) == 0 {
		return nil, nil
	}

	tastes := user.Tastes
	tasteVecs := user.TasteVectors
	if len(tastes) == 0 {
		// No declared tastes: fall back to the keywords the retriever used
		// for this document.
		tastes = doc.Keywords
		var err error
		tasteVecs, err = e.embedAll(ctx, tastes)
		if err != nil {
			return nil, fmt.Errorf("embedding document keywords: %w", err)
		}
	}

	vecs, err := e.Embedder.GenerateEmbeddings(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("embedding candidate sentences: %w", err)
	}

	out := make([]*models.SalientSentence, 0, len(candidates))
	for i, text := range candidates {
		s := &models.SalientSentence{
			Text:        text,
			DocumentID:  doc.ID,
			Position:    i,
			Readability: doc.Readability,
			Relevance:   doc.Relevance,
			Embedding:   vecs[i],
			Distances:   make(map[string]float64, len(tastes)),
			Scores:      make(map[string]float64, len(tastes)),
		}
		for _, taste := range tastes {
			dist, err := e.Distance.Distance(ctx, text, s.Embedding, taste, tasteVecs[taste])
			if err != nil {
				return nil, fmt.Errorf("distance to taste %q: %w", taste, err)
			}
			s.Distances[taste] = dist
			s.Scores[taste] = scoring.Composite(s.Readability, s.Relevance, dist, e.Weights)
		}
		out = append(out, s)
	}
	return out, nil
}

// candidateSentences runs the extractive model and applies the cleanup
// passes: stutter collapsing, exact dedup and the short-sentence filter.
func (e *Extractor) candidateSentences(ctx context.Context, doc *models.Document) []string {
	summary, err := e.Candidates.Summarize(ctx, doc.NormalizedText, e.Ratio, e.MinLength)
	if err != nil {
		log.Warnf("Candidate extraction failed for document %d: %v", doc.ID, err)
		return nil
	}

	seen := map[string]struct{}{}
	var out []string
	for _, sent := range e.tokenizer.Tokenize(summary) {
		text := util.CollapseStutters(strings.TrimSpace(sent.Text))
		if len(text) < e.MinLength {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out
}

func (e *Extractor) embedAll(ctx context.Context, texts []string) (map[string]pgvector.Vector, error) {
	vecs := make(map[string]pgvector.Vector, len(texts))
	if len(texts) == 0 {
		return vecs, nil
	}
	embedded, err := e.Embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, err
	}
	for i, t := range texts {
		vecs[t] = embedded[i]
	}
	return vecs, nil
}
