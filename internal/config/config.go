package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Weights holds the coefficients of the composite sentence score. All three
// terms are cost-like (lower is better), so the weights are non-negative.
type Weights struct {
	Expertise float64 `mapstructure:"expertise"`
	Relevance float64 `mapstructure:"relevance"`
	Affinity  float64 `mapstructure:"affinity"`
}

type Config struct {
	// Languages the service loads resources for. Requests outside this set
	// fail with ErrLanguageNotSupported.
	Languages []string `mapstructure:"languages"`

	Embedding struct {
		Provider        string `mapstructure:"provider"` // "openai", "gemini"
		Model           string `mapstructure:"model"`
		OpenaiApiKey    string `mapstructure:"openai_api_key"`
		GoogleApiKey    string `mapstructure:"google_api_key"`
		GeminiModelName string `mapstructure:"gemini_model_name"`
		Dimension       int    `mapstructure:"dimension"`
	} `mapstructure:"embedding"`

	Scoring struct {
		Weights Weights `mapstructure:"weights"`
		// Distance backend: "cosine" over cached embeddings, or "pairwise"
		// which re-embeds the pair through the provider.
		Distance string `mapstructure:"distance"`
	} `mapstructure:"scoring"`

	Extraction struct {
		Ratio             float64 `mapstructure:"ratio"`              // extractive candidate ratio
		MinLength         int     `mapstructure:"min_length"`         // minimum candidate length in chars
		AffinityThreshold float64 `mapstructure:"affinity_threshold"` // max distance for taste pool membership
		Workers           int     `mapstructure:"workers"`            // 0 = GOMAXPROCS
	} `mapstructure:"extraction"`

	Clustering struct {
		MaxClusterSize int `mapstructure:"max_cluster_size"`
		MinSentenceLen int `mapstructure:"min_sentence_len"`
		MaxSentenceLen int `mapstructure:"max_sentence_len"`
	} `mapstructure:"clustering"`

	Summarization struct {
		Provider     string  `mapstructure:"provider"` // "extractive" or "openai"
		Model        string  `mapstructure:"model"`
		MaxSentences int     `mapstructure:"max_sentences"` // total sentence budget across clusters
		HardCap      float64 `mapstructure:"hard_cap"`
		MinLength    int     `mapstructure:"min_length"`
	} `mapstructure:"summarization"`

	Transitions struct {
		DataPath string `mapstructure:"data_path"`
	} `mapstructure:"transitions"`

	Server struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.BindEnv("embedding.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("embedding.google_api_key", "GOOGLE_API_KEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine: defaults plus env vars cover a
		// fully working extractive setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("languages", []string{"en", "it"})
	viper.SetDefault("embedding.provider", "openai")
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.dimension", 1536)
	viper.SetDefault("scoring.weights.expertise", 0.2)
	viper.SetDefault("scoring.weights.relevance", 0.3)
	viper.SetDefault("scoring.weights.affinity", 0.5)
	viper.SetDefault("scoring.distance", "cosine")
	viper.SetDefault("extraction.ratio", 0.3)
	viper.SetDefault("extraction.min_length", 40)
	viper.SetDefault("extraction.affinity_threshold", 0.6)
	viper.SetDefault("extraction.workers", 0)
	viper.SetDefault("clustering.max_cluster_size", 8)
	viper.SetDefault("clustering.min_sentence_len", 100)
	viper.SetDefault("clustering.max_sentence_len", 1000)
	viper.SetDefault("summarization.provider", "extractive")
	viper.SetDefault("summarization.max_sentences", 10)
	viper.SetDefault("summarization.hard_cap", 0.8)
	viper.SetDefault("summarization.min_length", 40)
	viper.SetDefault("transitions.data_path", "data")
	viper.SetDefault("server.address", ":4444")
}
