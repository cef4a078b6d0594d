// Package scoring holds the composite ranking policy: one scalar per
// (sentence, taste) pair, lower meaning more desirable.
package scoring

import (
	"math"

	"github.com/SmartAppUnipi/ArtGuide/internal/config"
	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

// Composite combines reading-level misfit, relevance and semantic distance
// into a single cost. All three terms are cost-like: readability is the
// expertise-adjusted misfit, relevance is inverted so a highly relevant
// document lowers the score, and distance is cosine distance to the taste.
func Composite(readability, relevance, distance float64, w config.Weights) float64 {
	return w.Expertise*readability + w.Relevance*(1-relevance) + w.Affinity*distance
}

// NormalizeReadability maps the raw reading-ease output into the document's
// reading-level misfit for the given expertise level. The raw score is
// scaled to [0,1]; out-of-range values are clamped to 0 before the misfit is
// taken against the user's level. Reading ease runs opposite to expertise:
// the lowest level targets the easiest text (1.0), the expert level the
// hardest (0.0).
func NormalizeReadability(raw float64, expertiseLevel int) float64 {
	norm := raw / 100
	if norm < 0 || norm > 1 {
		norm = 0
	}
	target := float64(models.ExpertiseExpert-expertiseLevel) /
		float64(models.ExpertiseExpert-models.ExpertiseChild)
	return math.Abs(target - norm)
}
