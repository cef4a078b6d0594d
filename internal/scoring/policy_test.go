package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SmartAppUnipi/ArtGuide/internal/config"
	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

func TestComposite(t *testing.T) {
	w := config.Weights{Expertise: 0.2, Relevance: 0.3, Affinity: 0.5}

	assert.InDelta(t, 0.0, Composite(0, 1, 0, w), 1e-9, "perfect fit from a fully relevant document")
	assert.InDelta(t, 0.2+0.3+2*0.5, Composite(1, 0, 2, w), 1e-9, "worst case on every term")

	// a more relevant document must score lower, all else equal
	assert.Less(t, Composite(0.5, 0.9, 0.4, w), Composite(0.5, 0.1, 0.4, w))
	// a closer sentence must score lower, all else equal
	assert.Less(t, Composite(0.5, 0.5, 0.1, w), Composite(0.5, 0.5, 1.5, w))
}

func TestNormalizeReadability(t *testing.T) {
	// an expert wants hard text: raw 0 is a perfect fit
	assert.InDelta(t, 0.0, NormalizeReadability(0, models.ExpertiseExpert), 1e-9)
	// a child wants easy text: raw 100 is a perfect fit, raw 0 the worst
	assert.InDelta(t, 0.0, NormalizeReadability(100, models.ExpertiseChild), 1e-9)
	assert.InDelta(t, 1.0, NormalizeReadability(0, models.ExpertiseChild), 1e-9)
	assert.InDelta(t, 0.5, NormalizeReadability(50, models.ExpertiseChild), 1e-9)

	// misfit grows with the gap between text and reader, both directions
	assert.Less(t,
		NormalizeReadability(30, models.ExpertiseKnowledgeable),
		NormalizeReadability(90, models.ExpertiseKnowledgeable))

	// out-of-range raw scores clamp to 0 (hardest) before the misfit is taken
	assert.InDelta(t, 0.0, NormalizeReadability(120, models.ExpertiseExpert), 1e-9)
	assert.InDelta(t, 2.0/3.0, NormalizeReadability(-30, models.ExpertiseNovice), 1e-9)
}
