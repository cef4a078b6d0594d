// Package cluster assigns candidate sentences to taste clusters under a
// global size budget. The assignment is a deterministic, scarcity-first
// greedy pass: not globally optimal, but it is the behavior callers depend
// on, so it stays as documented.
package cluster

import (
	"sort"
	"strings"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

// Engine holds the clustering knobs. ConfiguredMax caps cluster size; the
// effective cap per request is min(totalCandidates/numTastes, ConfiguredMax).
type Engine struct {
	ConfiguredMax     int
	MinSentenceLen    int // heuristic noise filter, chars
	MaxSentenceLen    int
	AffinityThreshold float64 // max distance for taste pool membership
}

// markup residue that survives normalization marks a sentence as noise.
const residueChars = "^<>"

// Cluster deduplicates and filters the candidate sentences, then assigns
// each surviving sentence to at most one taste. Returned clusters follow the
// user's taste declaration order; empty clusters are dropped. Sentences
// inside a cluster are sorted ascending by that taste's composite score.
func (e *Engine) Cluster(sentences []*models.SalientSentence, tastes []string) []models.Cluster {
	if len(tastes) == 0 {
		return nil
	}

	candidates := e.filter(dedup(sentences))
	if len(candidates) == 0 {
		return nil
	}

	maxSize := len(candidates) / len(tastes)
	if maxSize < 1 {
		maxSize = 1
	}
	if maxSize > e.ConfiguredMax {
		maxSize = e.ConfiguredMax
	}

	pools := make(map[string][]*models.SalientSentence, len(tastes))
	for _, taste := range tastes {
		pool := e.pool(candidates, taste)
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Scores[taste] < pool[j].Scores[taste]
		})
		pools[taste] = pool
	}

	// Scarcity-first: the taste with the smallest candidate pool claims
	// first so rare topics are not starved by broad ones. Ties keep the
	// declaration order.
	order := make([]string, len(tastes))
	copy(order, tastes)
	sort.SliceStable(order, func(i, j int) bool {
		return len(pools[order[i]]) < len(pools[order[j]])
	})

	claimed := make(map[string][]*models.SalientSentence, len(tastes))
	for _, taste := range order {
		for _, s := range pools[taste] {
			if len(claimed[taste]) >= maxSize {
				break
			}
			if s.Assigned {
				continue
			}
			s.Assigned = true
			claimed[taste] = append(claimed[taste], s)
		}
	}

	var out []models.Cluster
	for _, taste := range tastes {
		if len(claimed[taste]) == 0 {
			continue
		}
		out = append(out, models.Cluster{Taste: taste, Sentences: claimed[taste]})
	}
	return out
}

// pool returns the candidates eligible for a taste: those literally
// containing it or within the affinity threshold. Sentences never scored
// against the taste cannot be ranked and are excluded.
func (e *Engine) pool(candidates []*models.SalientSentence, taste string) []*models.SalientSentence {
	lowerTaste := strings.ToLower(taste)
	var pool []*models.SalientSentence
	for _, s := range candidates {
		dist, scored := s.Distances[taste]
		if !scored {
			continue
		}
		if strings.Contains(strings.ToLower(s.Text), lowerTaste) || dist <= e.AffinityThreshold {
			pool = append(pool, s)
		}
	}
	return pool
}

// dedup drops sentences whose text exactly matches an earlier one, keeping
// the first occurrence. Running it twice is a no-op.
func dedup(sentences []*models.SalientSentence) []*models.SalientSentence {
	seen := make(map[string]struct{}, len(sentences))
	out := make([]*models.SalientSentence, 0, len(sentences))
	for _, s := range sentences {
		if _, dup := seen[s.Text]; dup {
			continue
		}
		seen[s.Text] = struct{}{}
		out = append(out, s)
	}
	return out
}

// filter applies the fixed noise heuristics: length bounds and markup
// residue characters.
func (e *Engine) filter(sentences []*models.SalientSentence) []*models.SalientSentence {
	out := make([]*models.SalientSentence, 0, len(sentences))
	for _, s := range sentences {
		if len(s.Text) < e.MinSentenceLen || len(s.Text) > e.MaxSentenceLen {
			continue
		}
		if strings.ContainsAny(s.Text, residueChars) {
			continue
		}
		out = append(out, s)
	}
	return out
}
