// Package textscan holds the small text helpers the keyword heuristics share:
// sentence splitting and punctuation-free tokenization.
package textscan

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentenceSep = regexp.MustCompile(`[.!?]+`)
	punctuation = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")
)

// Sentences splits s on runs of '.', '!' and '?' and drops blank pieces.
// Pieces are returned untrimmed except for surrounding whitespace.
func Sentences(s string) []string {
	parts := sentenceSep.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Words lowercases s, strips punctuation and splits on whitespace.
func Words(s string) []string {
	return strings.Fields(punctuation.ReplaceAllString(strings.ToLower(s), ""))
}

// Keywords returns the Words of s longer than minLen runes that are not in stop.
func Keywords(s string, minLen int, stop map[string]bool) []string {
	words := Words(s)
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) <= minLen || stop[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ContainsAny reports whether the lowercased s contains any of needles.
func ContainsAny(s string, needles ...string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
