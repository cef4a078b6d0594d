package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/SmartAppUnipi/ArtGuide/internal/config"
	"github.com/SmartAppUnipi/ArtGuide/internal/services"
	"github.com/SmartAppUnipi/ArtGuide/internal/tailor"
	"github.com/SmartAppUnipi/ArtGuide/internal/transitions"
)

// App owns the per-language resource registry and the tailor service built
// on top of it. Everything here is constructed once at startup.
type App struct {
	Config *config.Config
	Tailor *tailor.Service
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	distance, err := services.NewDistance(cfg.Scoring.Distance, embedder)
	if err != nil {
		return nil, err
	}

	transitionHandler := transitions.NewHandler(cfg.Transitions.DataPath, nil)
	stopwords := services.BuiltinStopwords{}

	resources := make(map[string]*tailor.LanguageResources, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		stops := stopwords.Stopwords(lang)
		candidates := services.NewFrequencySummarizer(stops)

		var summarizer services.SummarizationModel
		switch cfg.Summarization.Provider {
		case "openai":
			summarizer = services.NewOpenAISummarizer(cfg.Embedding.OpenaiApiKey, cfg.Summarization.Model)
		default:
			summarizer = candidates
		}

		resources[lang] = &tailor.LanguageResources{
			Embedder:    embedder,
			Summarizer:  summarizer,
			Candidates:  candidates,
			Distance:    distance,
			Transitions: transitionHandler,
		}
	}

	svc := tailor.NewService(cfg, resources, services.NewFleschKincaidScorer())
	log.Infof("Application initialized for languages %v", cfg.Languages)

	return &App{Config: cfg, Tailor: svc}, nil
}

// newEmbedder builds the configured provider wrapped in the retrying
// fallback service. The embedding models in use are multilingual, so one
// provider serves every configured language.
func newEmbedder(cfg *config.Config) (services.EmbeddingProvider, error) {
	var provider services.EmbeddingProvider
	var err error
	switch cfg.Embedding.Provider {
	case "gemini":
		provider, err = services.NewGeminiProvider(cfg.Embedding.GoogleApiKey, cfg.Embedding.GeminiModelName)
	default:
		provider, err = services.NewOpenAIProvider(cfg.Embedding.OpenaiApiKey, cfg.Embedding.Model)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing embedding provider: %w", err)
	}
	return services.NewFallbackEmbeddingService(
		[]services.EmbeddingProvider{provider},
		&services.SimpleRetryStrategy{MaxAttempts: 3, BaseDelayMs: 100},
	)
}
