package services

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingProvider turns text into a fixed-dimension vector. Sentence,
// taste and keyword embeddings all go through this interface.
type EmbeddingProvider interface {
	Name() string
	ModelName() string
	Dimension() int
	GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

// SummarizationModel compresses a text block to roughly ratio of its
// sentences. Implementations may return an error on degenerate input (too
// short to summarize); callers treat that as an empty result.
type SummarizationModel interface {
	Summarize(ctx context.Context, text string, ratio float64, minLength int) (string, error)
}

// ReadabilityScorer rates reading difficulty on its own raw scale. The
// extractor normalizes the output into [0,1].
type ReadabilityScorer interface {
	Score(text string) float64
}

// StopwordProvider returns the filler-word set for a language.
type StopwordProvider interface {
	Stopwords(lang string) map[string]struct{}
}

// Distance measures semantic distance between a sentence and a taste.
// Lower means closer. The embedding-cosine variant works off the vectors
// already computed for the request; the pairwise variant re-embeds both
// texts through the provider in one call.
type Distance interface {
	Name() string
	Distance(ctx context.Context, sentence string, sentenceVec pgvector.Vector, taste string, tasteVec pgvector.Vector) (float64, error)
}

// RetryStrategy decides the backoff before the next attempt, in
// milliseconds. A negative value means stop retrying.
type RetryStrategy interface {
	NextBackoff(attempt int) int64
}

// SimpleRetryStrategy provides basic exponential backoff.
type SimpleRetryStrategy struct {
	MaxAttempts int
	BaseDelayMs int64
}

func (s *SimpleRetryStrategy) NextBackoff(attempt int) int64 {
	if s.MaxAttempts <= 0 || attempt >= s.MaxAttempts {
		return -1
	}
	backoff := s.BaseDelayMs * (1 << attempt)
	const maxDelay = int64(30000)
	if backoff > maxDelay {
		backoff = maxDelay
	}
	return backoff
}
