// Package summarize turns taste clusters into text blocks and drives the
// summarization model over them with an adaptive per-cluster ratio.
package summarize

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
	"github.com/SmartAppUnipi/ArtGuide/internal/services"
)

type Batcher struct {
	Model        services.SummarizationModel
	MaxSentences int     // total sentence budget across all clusters
	HardCap      float64 // ceiling on any single cluster's ratio
	MinLength    int     // minimum summary length passed to the model
}

// Batch is the per-request summarization input: one text block per cluster,
// parallel sentence counts, and the taste labels in emission order.
type Batch struct {
	Blocks []string
	Counts []int
	Tastes []string
}

// ToBatch concatenates each cluster into one text block. Sentences from the
// same source document are regrouped contiguously and restored to their
// in-document order so the block reads as connected prose instead of
// score-ordered fragments. Quadratic over a cluster's sentences, which is
// fine under the cluster size bound.
func (b *Batcher) ToBatch(clusters []models.Cluster) Batch {
	batch := Batch{
		Blocks: make([]string, 0, len(clusters)),
		Counts: make([]int, 0, len(clusters)),
		Tastes: make([]string, 0, len(clusters)),
	}
	for _, c := range clusters {
		ordered := aggregateByDocument(c.Sentences)
		texts := make([]string, len(ordered))
		for i, s := range ordered {
			texts[i] = s.Text
		}
		batch.Blocks = append(batch.Blocks, strings.Join(texts, " "))
		batch.Counts = append(batch.Counts, len(ordered))
		batch.Tastes = append(batch.Tastes, c.Taste)
	}
	return batch
}

// Inference summarizes every block with its adaptive ratio. A model failure
// on one block degrades to an empty summary for that block only.
func (b *Batcher) Inference(ctx context.Context, batch Batch) []string {
	total := 0
	for _, c := range batch.Counts {
		total += c
	}

	summaries := make([]string, len(batch.Blocks))
	for i, block := range batch.Blocks {
		if block == "" || batch.Counts[i] == 0 || total == 0 {
			continue
		}
		ratio := b.ratio(batch.Counts[i], total)
		summary, err := b.Model.Summarize(ctx, block, ratio, b.MinLength)
		if err != nil {
			log.Warnf("Summarization failed for cluster %q: %v", batch.Tastes[i], err)
			continue
		}
		summaries[i] = summary
	}
	return summaries
}

// ratio scales each cluster's compression by its share of the batch so that
// large clusters do not monopolize the total output budget.
func (b *Batcher) ratio(count, total int) float64 {
	weight := float64(count) / float64(total)
	ratio := float64(b.MaxSentences) * weight / float64(count)
	if ratio > b.HardCap {
		ratio = b.HardCap
	}
	return ratio
}

// aggregateByDocument regroups a cluster's sentences so each document's
// sentences sit together, ordered by their original in-document position.
// Document groups keep the order in which the documents first appear in the
// score-ordered cluster.
func aggregateByDocument(sentences []*models.SalientSentence) []*models.SalientSentence {
	out := make([]*models.SalientSentence, 0, len(sentences))
	used := make([]bool, len(sentences))
	for i, s := range sentences {
		if used[i] {
			continue
		}
		group := []*models.SalientSentence{}
		for j := i; j < len(sentences); j++ {
			if used[j] || sentences[j].DocumentID != s.DocumentID {
				continue
			}
			used[j] = true
			// insertion sort by in-document position
			pos := len(group)
			for pos > 0 && group[pos-1].Position > sentences[j].Position {
				pos--
			}
			group = append(group, nil)
			copy(group[pos+1:], group[pos:])
			group[pos] = sentences[j]
		}
		out = append(out, group...)
	}
	return out
}
