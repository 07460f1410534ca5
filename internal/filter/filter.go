// Package filter implements the heuristic banned-term check applied to board
// writes before they are committed. It is deliberately best-effort: novel
// obfuscations slip through and legitimate text containing a banned substring
// is rejected.
package filter

import "strings"

// Filter holds the two curated term lists. Exact terms are matched against
// whole tokens; compact terms are substring-matched against the normalized
// (allow-list stripped, repetition collapsed) form of the text.
type Filter struct {
	exact   map[string]struct{}
	compact []string
}

// New builds a filter from the given term lists. The lists are configuration:
// callers may extend or replace them without touching the matching logic.
func New(exact, compact []string) *Filter {
	f := &Filter{
		exact:   make(map[string]struct{}, len(exact)),
		compact: make([]string, 0, len(compact)),
	}
	for _, w := range exact {
		f.exact[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range compact {
		f.compact = append(f.compact, strings.ToLower(w))
	}
	return f
}

// Default returns a filter loaded with the stock Korean term lists.
func Default() *Filter {
	return New(defaultExact, defaultCompact)
}

// allowed reports whether r survives normalization: ASCII letters and digits
// plus the Hangul jamo, compatibility jamo and syllable ranges.
func allowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 0x1100 && r <= 0x11FF: // Hangul Jamo
		return true
	case r >= 0x3130 && r <= 0x318F: // Hangul Compatibility Jamo
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul Syllables
		return true
	}
	return false
}

// tokenize lower-cases text and splits it on every run of disallowed runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !allowed(r)
	})
}

// normalizeCompact lower-cases text, drops every disallowed rune so word
// boundaries collapse, then squashes any run of 3+ identical runes down to
// one ("baaaad" becomes "bad"). Runs of exactly two are kept as written.
func normalizeCompact(text string) string {
	var out []rune
	var prev rune
	run := 0
	for _, r := range strings.ToLower(text) {
		if !allowed(r) {
			continue
		}
		if r == prev {
			run++
		} else {
			if run >= 3 {
				out = out[:len(out)-(run-1)]
			}
			prev = r
			run = 1
		}
		out = append(out, r)
	}
	if run >= 3 {
		out = out[:len(out)-(run-1)]
	}
	return string(out)
}

// Contains reports whether text matches either banned-term check.
func (f *Filter) Contains(text string) bool {
	if text == "" {
		return false
	}
	for _, token := range tokenize(text) {
		if _, ok := f.exact[token]; ok {
			return true
		}
	}
	compact := normalizeCompact(text)
	for _, w := range f.compact {
		if strings.Contains(compact, w) {
			return true
		}
	}
	return false
}
