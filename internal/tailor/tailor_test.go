package tailor

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmartAppUnipi/ArtGuide/internal/config"
	"github.com/SmartAppUnipi/ArtGuide/internal/models"
	"github.com/SmartAppUnipi/ArtGuide/internal/services"
	"github.com/SmartAppUnipi/ArtGuide/internal/transitions"
)

// vocabEmbedder projects text onto one axis per vocabulary word, so texts
// sharing topic words come out close without a real model. The call counter
// is atomic: extraction fans out over worker goroutines.
type vocabEmbedder struct {
	vocab []string
	calls atomic.Int64
}

func (e *vocabEmbedder) Name() string      { return "vocab" }
func (e *vocabEmbedder) ModelName() string { return "vocab-test" }
func (e *vocabEmbedder) Dimension() int    { return len(e.vocab) }

func (e *vocabEmbedder) GenerateEmbedding(_ context.Context, text string) (pgvector.Vector, error) {
	e.calls.Add(1)
	vec := make([]float32, len(e.vocab))
	lower := strings.ToLower(text)
	for i, w := range e.vocab {
		vec[i] = float32(strings.Count(lower, w))
	}
	return pgvector.NewVector(vec), nil
}

func (e *vocabEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	out := make([]pgvector.Vector, len(texts))
	for i, t := range texts {
		v, err := e.GenerateEmbedding(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// passthrough returns every block unchanged.
type passthrough struct{}

func (passthrough) Summarize(_ context.Context, text string, _ float64, _ int) (string, error) {
	return text, nil
}

type fixedReadability struct{ raw float64 }

func (r fixedReadability) Score(string) float64 { return r.raw }

const transitionData = `{
  "man": {},
  "auto": {
    "zero_par": ["Moving on,"],
    "one_par": ["Turning to %s,"],
    "two_par": []
  }
}`

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Languages = []string{"en"}
	cfg.Scoring.Weights = config.Weights{Expertise: 0.2, Relevance: 0.3, Affinity: 0.5}
	cfg.Extraction.Ratio = 0.5
	cfg.Extraction.MinLength = 20
	cfg.Extraction.AffinityThreshold = 0.6
	cfg.Extraction.Workers = 2
	cfg.Clustering.MaxClusterSize = 8
	cfg.Clustering.MinSentenceLen = 20
	cfg.Clustering.MaxSentenceLen = 1000
	cfg.Summarization.MaxSentences = 10
	cfg.Summarization.HardCap = 0.8
	cfg.Summarization.MinLength = 20
	return cfg
}

func testService(t *testing.T, embedder services.EmbeddingProvider) *Service {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "transitions_en.json"), []byte(transitionData), 0o644)
	require.NoError(t, err)

	resources := map[string]*LanguageResources{
		"en": {
			Embedder:    embedder,
			Summarizer:  passthrough{},
			Candidates:  passthrough{},
			Distance:    services.CosineDistance{},
			Transitions: transitions.NewHandler(dir, rand.New(rand.NewSource(1))),
		},
	}
	return NewService(testConfig(), resources, fixedReadability{raw: 60})
}

func result(title, text string, keywords []string, score float64) models.RawResult {
	return models.RawResult{
		Title:    title,
		Keywords: keywords,
		Score:    score,
		Sections: []models.RawSection{{Content: text}},
	}
}

func TestTailorSingleTaste(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history", "construction"}}
	s := testService(t, embedder)

	user := &models.UserProfile{
		Tastes:         []string{"history"},
		ExpertiseLevel: models.ExpertiseNovice,
		Language:       "en",
	}
	results := []models.RawResult{
		result("Tower", "The tower history began with a flawed foundation laid in medieval times.", nil, 10),
		result("Bells", "The bell chamber history records seven bells tuned to a musical scale.", nil, 8),
	}

	out, err := s.Tailor(context.Background(), results, user, true)
	require.NoError(t, err)
	require.NotEqual(t, ContentNotFound, out)

	assert.Contains(t, out, "history")
	assert.NotContains(t, out, "Moving on,", "a single paragraph needs no transition")
	assert.NotContains(t, out, "Turning to")
	// one paragraph, one trailing newline
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestTailorMultipleTastesWithTransitions(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history", "architecture"}}
	s := testService(t, embedder)

	user := &models.UserProfile{
		Tastes:         []string{"history", "architecture"},
		ExpertiseLevel: models.ExpertiseKnowledgeable,
		Language:       "en",
	}
	results := []models.RawResult{
		result("Doc A", "The history section covers the siege and the fire that followed. "+
			"The architecture follows the romanesque canon of the region.", nil, 10),
		result("Doc B", "Later history entries describe the restoration campaigns in detail. "+
			"Its architecture gained a marble loggia in the fifteenth century.", nil, 6),
	}

	out, err := s.Tailor(context.Background(), results, user, true)
	require.NoError(t, err)
	require.NotEqual(t, ContentNotFound, out)

	assert.Contains(t, out, "Turning to architecture,", "second paragraph gets a transition")

	// without transitions the same request renders plain paragraphs
	user2 := &models.UserProfile{Tastes: user.Tastes, ExpertiseLevel: user.ExpertiseLevel, Language: "en"}
	plain, err := s.Tailor(context.Background(), results, user2, false)
	require.NoError(t, err)
	assert.NotContains(t, plain, "Turning to")
}

func TestTailorNoResults(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history"}}
	s := testService(t, embedder)

	user := &models.UserProfile{Tastes: []string{"history"}, ExpertiseLevel: models.ExpertiseChild, Language: "en"}
	out, err := s.Tailor(context.Background(), nil, user, true)
	require.NoError(t, err)
	assert.Equal(t, ContentNotFound, out)
	assert.Zero(t, embedder.calls.Load(), "no documents means no model calls")
}

func TestTailorNothingSurvivesFiltering(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history"}}
	s := testService(t, embedder)

	user := &models.UserProfile{Tastes: []string{"history"}, ExpertiseLevel: models.ExpertiseChild, Language: "en"}
	// every section is below the candidate length floor
	results := []models.RawResult{result("Stub", "Tiny.", nil, 1)}

	out, err := s.Tailor(context.Background(), results, user, true)
	require.NoError(t, err)
	assert.Equal(t, ContentNotFound, out)
}

func TestTailorUnsupportedLanguage(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history"}}
	s := testService(t, embedder)

	user := &models.UserProfile{Tastes: []string{"history"}, ExpertiseLevel: models.ExpertiseChild, Language: "xx"}
	results := []models.RawResult{
		result("Tower", "The tower history began with a flawed foundation laid in medieval times.", nil, 10),
	}

	_, err := s.Tailor(context.Background(), results, user, true)
	assert.ErrorIs(t, err, models.ErrLanguageNotSupported)
	assert.Zero(t, embedder.calls.Load(), "the language check precedes all document work")
}

func TestTailorInvalidProfile(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history"}}
	s := testService(t, embedder)

	user := &models.UserProfile{Tastes: []string{"history"}, ExpertiseLevel: 9, Language: "en"}
	_, err := s.Tailor(context.Background(), nil, user, true)
	assert.ErrorIs(t, err, models.ErrInvalidProfile)
}

func TestTailorEmptyTastesFallsBackToKeywords(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history"}}
	s := testService(t, embedder)

	user := &models.UserProfile{ExpertiseLevel: models.ExpertiseNovice, Language: "en"}
	results := []models.RawResult{
		result("Tower", "The tower history began with a flawed foundation laid in medieval times. "+
			"Its history continued through eight centuries of slow correction.", []string{"history"}, 10),
	}

	out, err := s.Tailor(context.Background(), results, user, true)
	require.NoError(t, err)
	assert.NotEqual(t, ContentNotFound, out)
	assert.Contains(t, out, "history")
}

func TestClustersInspection(t *testing.T) {
	embedder := &vocabEmbedder{vocab: []string{"history"}}
	s := testService(t, embedder)

	user := &models.UserProfile{Tastes: []string{"history"}, ExpertiseLevel: models.ExpertiseNovice, Language: "en"}
	results := []models.RawResult{
		result("Tower", "The tower history began with a flawed foundation laid in medieval times.", nil, 10),
	}

	clusters, err := s.Clusters(context.Background(), results, user)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, "history", clusters[0].Taste)
	require.NotEmpty(t, clusters[0].Sentences)
	assert.Contains(t, clusters[0].Sentences[0].Scores, "history")
}

func TestExpandKeywords(t *testing.T) {
	s := testService(t, &vocabEmbedder{vocab: []string{"x"}})
	exp := s.ExpandKeywords([]string{"history", "sculpture"})
	assert.Equal(t, map[string][]string{
		"history":   {"history"},
		"sculpture": {"sculpture"},
	}, exp)
}
