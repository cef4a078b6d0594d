package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/neurosnap/sentences"
)

// FrequencySummarizer is the extractive summarization backend: it ranks
// sentences by normalized token frequency (stopwords filtered) and keeps the
// top ratio share, preserving original sentence order.
type FrequencySummarizer struct {
	tokenizer    *sentences.DefaultSentenceTokenizer
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

func NewFrequencySummarizer(stopwords map[string]struct{}) *FrequencySummarizer {
	if stopwords == nil {
		stopwords = map[string]struct{}{}
	}
	return &FrequencySummarizer{
		tokenizer:    PunktTokenizer(),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:'\p{L}+)*`),
		stopwords:    stopwords,
	}
}

// Summarize keeps roughly ratio of the text's sentences. Returns an error on
// degenerate input (shorter than minLength or fewer than two sentences);
// callers treat that as an empty result.
func (s *FrequencySummarizer) Summarize(_ context.Context, text string, ratio float64, minLength int) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) < minLength {
		return "", fmt.Errorf("text too short to summarize (%d chars)", len(text))
	}

	var sents []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(sent.Text); t != "" {
			sents = append(sents, t)
		}
	}
	if len(sents) < 2 {
		return "", fmt.Errorf("not enough sentences to summarize (%d)", len(sents))
	}

	freq := map[string]float64{}
	for _, sent := range sents {
		for _, tok := range s.tokens(sent) {
			if _, ok := s.stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sents))
	for i, sent := range sents {
		toks := s.tokens(sent)
		sum := 0.0
		for _, tok := range toks {
			sum += freq[tok]
		}
		// Length normalization so long sentences do not win by bulk.
		if len(toks) > 0 {
			sum /= math.Sqrt(float64(len(toks)))
		}
		ranked[i] = scored{i, sum}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	keep := int(math.Ceil(ratio * float64(len(sents))))
	if keep < 1 {
		keep = 1
	}
	if keep > len(sents) {
		keep = len(sents)
	}
	selected := make([]int, keep)
	for i := 0; i < keep; i++ {
		selected[i] = ranked[i].idx
	}
	sort.Ints(selected)

	out := make([]string, keep)
	for i, idx := range selected {
		out[i] = sents[idx]
	}
	return strings.Join(out, " "), nil
}

func (s *FrequencySummarizer) tokens(text string) []string {
	return s.tokenPattern.FindAllString(strings.ToLower(text), -1)
}
