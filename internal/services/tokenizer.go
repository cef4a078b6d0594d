package services

import (
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

var (
	punktOnce      sync.Once
	punktTokenizer *sentences.DefaultSentenceTokenizer
)

// PunktTokenizer returns the shared sentence tokenizer backed by the
// library's trained English data. The library ships training data for English
// only; the punctuation model carries over to the other configured languages.
// The tokenizer is read-only after construction and safe to share across
// goroutines.
func PunktTokenizer() *sentences.DefaultSentenceTokenizer {
	punktOnce.Do(func() {
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			log.Panicf("loading sentence tokenizer training data: %v", err)
		}
		punktTokenizer = t
	})
	return punktTokenizer
}
