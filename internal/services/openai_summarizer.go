package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// OpenAISummarizer is the abstractive summarization backend.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	if apiKey == "" {
		log.Warn("OpenAI API key not provided for summarization. Service will be disabled.")
		return &OpenAISummarizer{client: nil}
	}
	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string, ratio float64, minLength int) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAISummarizer is not initialized (missing API key)")
	}
	text = strings.TrimSpace(text)
	if len(text) < minLength {
		return "", fmt.Errorf("text too short to summarize (%d chars)", len(text))
	}

	percent := int(ratio * 100)
	if percent < 5 {
		percent = 5
	}
	prompt := fmt.Sprintf(
		"Summarize the following text to roughly %d%% of its length. Keep the original wording where possible and do not add information.\n\n%s",
		percent, text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarization returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
