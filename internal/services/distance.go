package services

import (
	"context"
	"fmt"
	"math"

	"github.com/pgvector/pgvector-go"
)

// CosineDistance computes 1 - cosine_similarity over the vectors already
// cached on the request. This is the default backend.
type CosineDistance struct{}

func (CosineDistance) Name() string { return "cosine" }

func (CosineDistance) Distance(_ context.Context, _ string, sentenceVec pgvector.Vector, _ string, tasteVec pgvector.Vector) (float64, error) {
	return CosineDist(sentenceVec.Slice(), tasteVec.Slice())
}

// PairwiseDistance re-embeds sentence and taste together through the
// provider and measures them fresh. Slower, but lets a transformer-style
// backend see both texts in one call.
type PairwiseDistance struct {
	Provider EmbeddingProvider
}

func (PairwiseDistance) Name() string { return "pairwise" }

func (d PairwiseDistance) Distance(ctx context.Context, sentence string, _ pgvector.Vector, taste string, _ pgvector.Vector) (float64, error) {
	vecs, err := d.Provider.GenerateEmbeddings(ctx, []string{sentence, taste})
	if err != nil {
		return 0, fmt.Errorf("pairwise distance embedding: %w", err)
	}
	return CosineDist(vecs[0].Slice(), vecs[1].Slice())
}

// NewDistance selects the distance backend by configuration name.
func NewDistance(name string, provider EmbeddingProvider) (Distance, error) {
	switch name {
	case "", "cosine":
		return CosineDistance{}, nil
	case "pairwise":
		if provider == nil {
			return nil, fmt.Errorf("pairwise distance requires an embedding provider")
		}
		return PairwiseDistance{Provider: provider}, nil
	default:
		return nil, fmt.Errorf("unknown distance backend %q", name)
	}
}

// CosineDist returns 1 - cosine_similarity(a, b), clamped to [0,2].
// Zero-magnitude vectors are treated as maximally distant.
func CosineDist(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1, nil
	}
	dist := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	if dist < 0 {
		dist = 0
	}
	if dist > 2 {
		dist = 2
	}
	return dist, nil
}
