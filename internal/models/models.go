package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pgvector/pgvector-go"
)

// Expertise levels as delivered by the application front-end.
const (
	ExpertiseChild         = 1
	ExpertiseNovice        = 2
	ExpertiseKnowledgeable = 3
	ExpertiseExpert        = 4
)

// UserProfile describes the reader the output is tailored for.
// TasteVectors is computed lazily, once per request, by the orchestrator;
// after that the profile is treated as immutable.
type UserProfile struct {
	Tastes         []string                   `json:"tastes"`
	ExpertiseLevel int                        `json:"expertiseLevel"`
	Language       string                     `json:"language"`
	TasteVectors   map[string]pgvector.Vector `json:"-"`
}

// UnmarshalJSON accepts expertiseLevel both as a number and as a numeric
// string, which is how the mobile client historically sent it.
func (u *UserProfile) UnmarshalJSON(data []byte) error {
	type alias struct {
		Tastes         []string        `json:"tastes"`
		ExpertiseLevel json.RawMessage `json:"expertiseLevel"`
		Language       string          `json:"language"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	u.Tastes = a.Tastes
	u.Language = a.Language
	u.ExpertiseLevel = ExpertiseChild
	if len(a.ExpertiseLevel) > 0 {
		var level int
		if err := json.Unmarshal(a.ExpertiseLevel, &level); err == nil {
			u.ExpertiseLevel = level
		} else {
			var s string
			if err := json.Unmarshal(a.ExpertiseLevel, &s); err != nil {
				return fmt.Errorf("expertiseLevel: %w", err)
			}
			level, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("expertiseLevel: %w", err)
			}
			u.ExpertiseLevel = level
		}
	}
	return nil
}

// Validate checks the profile fields that the pipeline depends on.
func (u *UserProfile) Validate() error {
	if u.ExpertiseLevel < ExpertiseChild || u.ExpertiseLevel > ExpertiseExpert {
		return fmt.Errorf("%w: expertise level %d outside [1,4]", ErrInvalidProfile, u.ExpertiseLevel)
	}
	if u.Language == "" {
		return fmt.Errorf("%w: missing language", ErrInvalidProfile)
	}
	return nil
}

// RawSection is one title/content pair of a retrieved page. Either field may
// be empty; empty fields contribute nothing to the plain text.
type RawSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RawResult is a single pre-ranked search result as delivered by the
// retrieval module. Score is on the retriever's native scale and gets
// min-max normalized across the batch before scoring.
type RawResult struct {
	Title    string       `json:"title"`
	URL      string       `json:"url"`
	Keywords []string     `json:"keywords"`
	Score    float64      `json:"score"`
	Sections []RawSection `json:"sections"`
}

// Document is the normalized form of one RawResult. It is created by the
// normalizer and never mutated after extraction has run.
type Document struct {
	ID             int
	Title          string
	URL            string
	Keywords       []string
	Sections       []RawSection
	PlainText      string
	NormalizedText string
	Readability    float64 // [0,1], expertise-adjusted misfit, lower is a closer fit
	Relevance      float64 // [0,1] after batch normalization
}

// SalientSentence is one candidate sentence produced by the extractor.
// Everything except Assigned is read-only after extraction; Assigned is set
// exactly once by the clustering engine.
type SalientSentence struct {
	Text        string
	DocumentID  int
	Position    int // order within the owning document's candidate list
	Readability float64
	Relevance   float64
	Embedding   pgvector.Vector
	Distances   map[string]float64 // taste -> semantic distance
	Scores      map[string]float64 // taste -> composite score, lower is better
	Assigned    bool
}

// Cluster is the set of sentences claimed by one taste, sorted ascending by
// that taste's composite score.
type Cluster struct {
	Taste     string
	Sentences []*SalientSentence
}

// TailoredParagraph pairs a taste with its summarized paragraph.
type TailoredParagraph struct {
	Taste   string
	Summary string
}

// TailoredResult is the per-request output before transition assembly. It is
// never persisted.
type TailoredResult struct {
	Paragraphs []TailoredParagraph
}
