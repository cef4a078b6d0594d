// Package transitions serves the connective phrases inserted between
// paragraphs of different topics. Phrases live in per-language JSON files:
// hand-authored ones keyed by topic under "man", templated generic ones
// under "auto".
package transitions

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

type languageData struct {
	Man  map[string][]string `json:"man"`
	Auto struct {
		ZeroPar []string `json:"zero_par"`
		OnePar  []string `json:"one_par"`
		TwoPar  []string `json:"two_par"`
	} `json:"auto"`
}

// Handler picks transition phrases. The random source is injectable so
// tests can pin the choice; a nil source falls back to a time seed.
type Handler struct {
	dataPath string

	mu    sync.Mutex
	rng   *rand.Rand
	cache map[string]*languageData
}

func NewHandler(dataPath string, rng *rand.Rand) *Handler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Handler{
		dataPath: dataPath,
		rng:      rng,
		cache:    map[string]*languageData{},
	}
}

// Extract returns one transition phrase for the given topic. A topic with
// hand-authored phrases gets one of those; otherwise a generic templated
// phrase is formatted with the topic (or a zero-parameter one when topic is
// empty). Fails with ErrLanguageNotSupported when the language has no data
// file and ErrNoTransitionAvailable when every candidate set is empty.
func (h *Handler) Extract(lang, topic string) (string, error) {
	data, err := h.load(lang)
	if err != nil {
		return "", err
	}

	var candidates []string
	if topic != "" {
		if manual, ok := data.Man[strings.ToLower(topic)]; ok && len(manual) > 0 {
			candidates = manual
		} else {
			for _, tpl := range data.Auto.OnePar {
				candidates = append(candidates, fmt.Sprintf(tpl, topic))
			}
		}
	} else {
		candidates = data.Auto.ZeroPar
	}

	return h.choose(candidates, lang, topic)
}

// ExtractBetween returns a phrase bridging two topics using the
// two-parameter templates. Assemble keys its transitions on the entering
// topic alone, so the two_par template set in the data files is reachable
// only through this method.
func (h *Handler) ExtractBetween(lang, from, to string) (string, error) {
	data, err := h.load(lang)
	if err != nil {
		return "", err
	}
	var candidates []string
	for _, tpl := range data.Auto.TwoPar {
		candidates = append(candidates, fmt.Sprintf(tpl, from, to))
	}
	return h.choose(candidates, lang, from+"/"+to)
}

func (h *Handler) choose(candidates []string, lang, topic string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: language %q topic %q", models.ErrNoTransitionAvailable, lang, topic)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return candidates[h.rng.Intn(len(candidates))], nil
}

func (h *Handler) load(lang string) (*languageData, error) {
	h.mu.Lock()
	if data, ok := h.cache[lang]; ok {
		h.mu.Unlock()
		return data, nil
	}
	h.mu.Unlock()

	path := filepath.Join(h.dataPath, "transitions_"+lang+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: no transition data for %q", models.ErrLanguageNotSupported, lang)
	}
	var data languageData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	h.mu.Lock()
	h.cache[lang] = &data
	h.mu.Unlock()
	return &data, nil
}
