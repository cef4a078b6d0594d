package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pgvector/pgvector-go"
	log "github.com/sirupsen/logrus"
)

// FallbackEmbeddingService tries a chain of embedding providers with
// retries, promoting whichever provider last succeeded. All providers must
// share the same dimension.
type FallbackEmbeddingService struct {
	providers []EmbeddingProvider
	active    int
	retry     RetryStrategy
	mu        sync.RWMutex
}

func NewFallbackEmbeddingService(providers []EmbeddingProvider, strategy RetryStrategy) (*FallbackEmbeddingService, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one embedding provider is required")
	}
	if strategy == nil {
		strategy = &SimpleRetryStrategy{MaxAttempts: 3, BaseDelayMs: 100}
	}
	dim := providers[0].Dimension()
	for _, p := range providers[1:] {
		if p.Dimension() != dim {
			return nil, fmt.Errorf("all embedding providers must share a dimension (provider %s has %d, expected %d)",
				p.Name(), p.Dimension(), dim)
		}
	}
	return &FallbackEmbeddingService{providers: providers, retry: strategy}, nil
}

func (s *FallbackEmbeddingService) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.providers[s.active].Name()
}

func (s *FallbackEmbeddingService) ModelName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.providers[s.active].ModelName()
}

func (s *FallbackEmbeddingService) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.providers[s.active].Dimension()
}

func (s *FallbackEmbeddingService) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	var vec pgvector.Vector
	err := s.withFallback(ctx, func(p EmbeddingProvider) error {
		v, err := p.GenerateEmbedding(ctx, text)
		if err != nil {
			return err
		}
		vec = v
		return nil
	})
	return vec, err
}

func (s *FallbackEmbeddingService) GenerateEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	var vecs []pgvector.Vector
	err := s.withFallback(ctx, func(p EmbeddingProvider) error {
		v, err := p.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return err
		}
		if len(v) != len(texts) {
			return fmt.Errorf("provider %s returned %d vectors for %d texts", p.Name(), len(v), len(texts))
		}
		vecs = v
		return nil
	})
	return vecs, err
}

// withFallback runs call against the active provider, retrying per the
// strategy, then rotates to the next provider. Fails once every provider
// has been exhausted.
func (s *FallbackEmbeddingService) withFallback(ctx context.Context, call func(EmbeddingProvider) error) error {
	s.mu.RLock()
	start := s.active
	n := len(s.providers)
	s.mu.RUnlock()

	var lastErr error
	for offset := 0; offset < n; offset++ {
		idx := (start + offset) % n
		provider := s.providers[idx]

		for attempt := 0; ; attempt++ {
			err := call(provider)
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled during embedding generation: %w", ctx.Err())
			}
			if err == nil {
				s.mu.Lock()
				s.active = idx
				s.mu.Unlock()
				return nil
			}
			lastErr = fmt.Errorf("provider %s failed: %w", provider.Name(), err)
			log.Warnf("Embedding provider %s failed (attempt %d): %v", provider.Name(), attempt+1, err)

			backoffMs := s.retry.NextBackoff(attempt)
			if backoffMs < 0 {
				break // next provider
			}
			select {
			case <-time.After(time.Duration(backoffMs) * time.Millisecond):
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting to retry: %w", ctx.Err())
			}
		}
	}
	return fmt.Errorf("all embedding providers failed: last error: %w", lastErr)
}
