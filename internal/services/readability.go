package services

import (
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
)

// FleschKincaidScorer rates text with the Flesch reading-ease formula.
// The raw output lives on the usual 0-100-ish scale (it can leave that range
// on pathological text); the extractor normalizes and clamps it.
type FleschKincaidScorer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewFleschKincaidScorer() *FleschKincaidScorer {
	return &FleschKincaidScorer{tokenizer: PunktTokenizer()}
}

func (s *FleschKincaidScorer) Score(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentenceCount := 0
	if s.tokenizer != nil {
		for _, sent := range s.tokenizer.Tokenize(text) {
			if strings.TrimSpace(sent.Text) != "" {
				sentenceCount++
			}
		}
	}
	if sentenceCount == 0 {
		sentenceCount = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentenceCount)
	syllablesPerWord := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// countSyllables approximates syllables as vowel groups, with the silent
// trailing "e" discounted. Always at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 && hasLetter(word) {
		count = 1
	}
	return count
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
