package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return errors.New("languages must list at least one language")
	}

	w := c.Scoring.Weights
	if w.Expertise < 0 || w.Relevance < 0 || w.Affinity < 0 {
		return errors.New("scoring.weights must be non-negative")
	}
	if w.Expertise+w.Relevance+w.Affinity <= 0 {
		return errors.New("scoring.weights must not all be zero")
	}

	if c.Extraction.Ratio <= 0 || c.Extraction.Ratio > 1 {
		return fmt.Errorf("extraction.ratio (%g) must be in (0,1]", c.Extraction.Ratio)
	}
	if c.Extraction.AffinityThreshold < 0 || c.Extraction.AffinityThreshold > 2 {
		return fmt.Errorf("extraction.affinity_threshold (%g) must be a cosine distance in [0,2]", c.Extraction.AffinityThreshold)
	}
	if c.Extraction.Workers < 0 {
		return errors.New("extraction.workers must be non-negative")
	}

	if c.Clustering.MaxClusterSize <= 0 {
		return errors.New("clustering.max_cluster_size must be positive")
	}
	if c.Clustering.MinSentenceLen < 0 || c.Clustering.MaxSentenceLen <= c.Clustering.MinSentenceLen {
		return fmt.Errorf("clustering sentence length bounds [%d,%d] are inverted",
			c.Clustering.MinSentenceLen, c.Clustering.MaxSentenceLen)
	}

	switch c.Summarization.Provider {
	case "extractive":
	case "openai":
		if c.Summarization.Model == "" {
			return errors.New("summarization.model is required when summarization.provider is openai")
		}
	default:
		return fmt.Errorf("unknown summarization.provider %q", c.Summarization.Provider)
	}
	if c.Summarization.HardCap <= 0 || c.Summarization.HardCap > 1 {
		return fmt.Errorf("summarization.hard_cap (%g) must be in (0,1]", c.Summarization.HardCap)
	}
	if c.Summarization.MaxSentences <= 0 {
		return errors.New("summarization.max_sentences must be positive")
	}

	switch c.Scoring.Distance {
	case "cosine", "pairwise":
	default:
		return fmt.Errorf("unknown scoring.distance %q", c.Scoring.Distance)
	}

	if c.Embedding.Provider == "gemini" && c.Embedding.GoogleApiKey == "" {
		return errors.New("embedding.google_api_key is required when embedding.provider is gemini")
	}

	return nil
}
