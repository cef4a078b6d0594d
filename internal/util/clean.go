package util

import (
	"strings"
	"unicode/utf8"
)

var charReplacementMap = map[string]string{
	"\u2018": "'", "\u2019": "'", "\u201C": "\"",
	"\u201D": "\"", "\u2013": "-", "\u2014": "--", "\u2026": "...",
	"\u00a0": " ", "\u0091": "'", "\u0092": "'", "\u0093": "\"",
	"\u0094": "\"",
}

// CleanText replaces typographic punctuation with ASCII equivalents and
// strips invalid UTF-8 sequences. Scraped pages routinely carry both.
func CleanText(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	for bad, good := range charReplacementMap {
		s = strings.ReplaceAll(s, bad, good)
	}
	return s
}

// CollapseStutters removes immediately-repeated tokens ("the the tower" ->
// "the tower"). Repetition like this is a common artifact of merging
// adjacent page sections.
func CollapseStutters(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	out := fields[:1]
	for _, f := range fields[1:] {
		if strings.EqualFold(f, out[len(out)-1]) {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// MinMaxNormalize rescales values into [0,1] in place. A constant input
// collapses to all zeros rather than dividing by zero.
func MinMaxNormalize(values []float64) {
	if len(values) == 0 {
		return
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		for i := range values {
			values[i] = 0
		}
		return
	}
	for i := range values {
		values[i] = (values[i] - min) / (max - min)
	}
}
