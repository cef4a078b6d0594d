package services

import "strings"

// BuiltinStopwords serves the stopword sets shipped with the binary.
// Unknown languages get an empty set, which just weakens the frequency
// ranking rather than failing the request.
type BuiltinStopwords struct{}

func (BuiltinStopwords) Stopwords(lang string) map[string]struct{} {
	words, ok := stopwordLists[strings.ToLower(lang)]
	if !ok {
		return map[string]struct{}{}
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var stopwordLists = map[string][]string{
	"en": {
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "its", "this", "that", "these",
		"those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through", "during",
		"before", "after", "above", "below", "out", "off", "own", "same",
		"too", "very", "can", "will", "just", "not", "no", "nor", "only",
		"both", "each", "few", "more", "most", "other", "some", "any", "all",
		"he", "she", "they", "them", "his", "her", "their", "we", "you", "i",
		"what", "which", "who", "whom", "when", "where", "why", "how", "has",
		"have", "had", "do", "does", "did", "would", "should", "could", "now",
	},
	"it": {
		"il", "lo", "la", "i", "gli", "le", "un", "uno", "una", "di", "a",
		"da", "in", "con", "su", "per", "tra", "fra", "e", "o", "ma", "se",
		"che", "chi", "cui", "non", "come", "dove", "quando", "quanto",
		"quale", "quali", "questo", "questa", "questi", "queste", "quello",
		"quella", "quelli", "quelle", "del", "dello", "della", "dei", "degli",
		"delle", "al", "allo", "alla", "ai", "agli", "alle", "dal", "dallo",
		"dalla", "dai", "dagli", "dalle", "nel", "nello", "nella", "nei",
		"negli", "nelle", "sul", "sullo", "sulla", "sui", "sugli", "sulle",
		"è", "sono", "era", "erano", "essere", "avere", "ha", "hanno", "ho",
		"più", "meno", "molto", "poco", "tutto", "tutti", "anche", "ancora",
		"già", "mai", "sempre", "qui", "lì", "là", "ci", "vi", "ne", "si",
	},
}
