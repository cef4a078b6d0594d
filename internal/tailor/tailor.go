// Package tailor orchestrates the personalization pipeline: normalize,
// extract in parallel, cluster, batch-summarize, assemble.
package tailor

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/SmartAppUnipi/ArtGuide/internal/cluster"
	"github.com/SmartAppUnipi/ArtGuide/internal/config"
	"github.com/SmartAppUnipi/ArtGuide/internal/extractor"
	"github.com/SmartAppUnipi/ArtGuide/internal/models"
	"github.com/SmartAppUnipi/ArtGuide/internal/normalizer"
	"github.com/SmartAppUnipi/ArtGuide/internal/services"
	"github.com/SmartAppUnipi/ArtGuide/internal/summarize"
	"github.com/SmartAppUnipi/ArtGuide/internal/transitions"
)

// ContentNotFound is the user-facing sentinel for requests where no
// document or sentence survives filtering. It is a result, not an error.
const ContentNotFound = "Content not found"

// LanguageResources bundles everything language-specific. The registry is
// built once at startup and passed by reference into each request; there is
// no global lookup.
type LanguageResources struct {
	Embedder    services.EmbeddingProvider
	Summarizer  services.SummarizationModel // cluster summarization backend
	Candidates  services.SummarizationModel // extractive candidate model
	Distance    services.Distance
	Transitions *transitions.Handler
}

// Service is the request-facing orchestrator.
type Service struct {
	cfg        *config.Config
	resources  map[string]*LanguageResources
	extractors map[string]*extractor.Extractor
	scorer     services.ReadabilityScorer
}

func NewService(cfg *config.Config, resources map[string]*LanguageResources, scorer services.ReadabilityScorer) *Service {
	extractors := make(map[string]*extractor.Extractor, len(resources))
	for lang, res := range resources {
		extractors[lang] = extractor.New(
			res.Embedder, scorer, res.Candidates, res.Distance,
			cfg.Scoring.Weights, cfg.Extraction.Ratio, cfg.Extraction.MinLength)
	}
	return &Service{cfg: cfg, resources: resources, extractors: extractors, scorer: scorer}
}

// ExpandKeywords maps each taste to its expanded keyword list. Expansion is
// currently the identity; the retrieval module consumes this shape as-is.
func (s *Service) ExpandKeywords(tastes []string) map[string][]string {
	res := make(map[string][]string, len(tastes))
	for _, taste := range tastes {
		res[taste] = []string{taste}
	}
	return res
}

// Tailor runs the whole pipeline for one request and returns the assembled
// text, or ContentNotFound when nothing survives filtering.
func (s *Service) Tailor(ctx context.Context, results []models.RawResult, user *models.UserProfile, useTransitions bool) (string, error) {
	clusters, res, err := s.clusterPipeline(ctx, results, user)
	if err != nil {
		return "", err
	}
	if len(clusters) == 0 {
		return ContentNotFound, nil
	}

	batcher := s.newBatcher(res)
	batch := batcher.ToBatch(clusters)
	summaries := batcher.Inference(ctx, batch)

	return res.Transitions.Assemble(user.Language, batch.Tastes, summaries, useTransitions)
}

// Clusters exposes the pipeline up to the clustering stage, for inspection
// tooling.
func (s *Service) Clusters(ctx context.Context, results []models.RawResult, user *models.UserProfile) ([]models.Cluster, error) {
	clusters, _, err := s.clusterPipeline(ctx, results, user)
	return clusters, err
}

// clusterPipeline validates the request, then runs normalization, parallel
// extraction and clustering. An empty cluster list with a nil error means
// "content not found".
func (s *Service) clusterPipeline(ctx context.Context, results []models.RawResult, user *models.UserProfile) ([]models.Cluster, *LanguageResources, error) {
	if err := user.Validate(); err != nil {
		return nil, nil, err
	}
	// Language must be asserted before any document work happens.
	res, ok := s.resources[user.Language]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", models.ErrLanguageNotSupported, user.Language)
	}
	if len(results) == 0 {
		return nil, res, nil
	}

	reqID := uuid.New()
	logger := log.WithField("request_id", reqID)

	docs := normalizer.NormalizeBatch(results)
	if len(docs) == 0 {
		return nil, res, nil
	}
	logger.Debugf("Normalized %d of %d documents", len(docs), len(results))

	if err := s.embedTastes(ctx, res, user); err != nil {
		return nil, nil, err
	}

	sentences, err := s.extractAll(ctx, res, docs, user, logger)
	if err != nil {
		return nil, nil, err
	}
	if len(sentences) == 0 {
		return nil, res, nil
	}
	logger.Debugf("Extracted %d candidate sentences", len(sentences))

	tastes := user.Tastes
	if len(tastes) == 0 {
		// No declared tastes: synthesize clusters from the keywords the
		// retriever used for these documents.
		tastes = documentKeywords(docs)
	}

	engine := &cluster.Engine{
		ConfiguredMax:     s.cfg.Clustering.MaxClusterSize,
		MinSentenceLen:    s.cfg.Clustering.MinSentenceLen,
		MaxSentenceLen:    s.cfg.Clustering.MaxSentenceLen,
		AffinityThreshold: s.cfg.Extraction.AffinityThreshold,
	}
	clusters := engine.Cluster(sentences, tastes)
	logger.Debugf("Assigned sentences into %d clusters", len(clusters))
	return clusters, res, nil
}

// embedTastes lazily computes the profile's taste vectors, once per request.
func (s *Service) embedTastes(ctx context.Context, res *LanguageResources, user *models.UserProfile) error {
	if len(user.Tastes) == 0 || user.TasteVectors != nil {
		return nil
	}
	vecs, err := res.Embedder.GenerateEmbeddings(ctx, user.Tastes)
	if err != nil {
		return fmt.Errorf("embedding user tastes: %w", err)
	}
	user.TasteVectors = make(map[string]pgvector.Vector, len(user.Tastes))
	for i, taste := range user.Tastes {
		user.TasteVectors[taste] = vecs[i]
	}
	return nil
}

// extractAll fans extraction out over a bounded worker pool, one task per
// document. Tasks share no mutable state: each writes only its own slot.
// A failing document degrades to an empty result and never aborts the batch.
func (s *Service) extractAll(ctx context.Context, res *LanguageResources, docs []*models.Document, user *models.UserProfile, logger *log.Entry) ([]*models.SalientSentence, error) {
	ext := s.extractors[user.Language]

	workers := s.cfg.Extraction.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	perDoc := make([][]*models.SalientSentence, len(docs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			sents, err := ext.Extract(ctx, doc, user)
			if err != nil {
				logger.Warnf("Extraction failed for document %d (%q): %v", doc.ID, doc.Title, err)
				return nil
			}
			perDoc[i] = sents
			return nil
		})
	}
	g.Wait()

	var all []*models.SalientSentence
	for _, sents := range perDoc {
		all = append(all, sents...)
	}
	return all, nil
}

func (s *Service) newBatcher(res *LanguageResources) *summarize.Batcher {
	return &summarize.Batcher{
		Model:        res.Summarizer,
		MaxSentences: s.cfg.Summarization.MaxSentences,
		HardCap:      s.cfg.Summarization.HardCap,
		MinLength:    s.cfg.Summarization.MinLength,
	}
}

// documentKeywords returns the union of the documents' retrieval keywords in
// order of first appearance.
func documentKeywords(docs []*models.Document) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, doc := range docs {
		for _, kw := range doc.Keywords {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}
