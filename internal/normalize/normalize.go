// Package normalize implements the single normalization routine shared by
// classification, retrieval, and feedback keying (spec invariant I6): every
// component that matches against query text must see the same normal form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Query applies the normalization rules from the engine's external
// interface: NFKC, ASCII lowercase, whitespace collapse, and punctuation
// stripping for matching purposes only. The caller's raw_query is never
// mutated — this returns a new string used purely as a matching key.
func Query(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastWasSpace := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasSpace = false
		case unicode.IsSpace(r):
			if !lastWasSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		default:
			// Punctuation and everything else is stripped for matching,
			// but acts as a word boundary so "deposit," + "refund" don't
			// fuse into "depositrefund".
			if !lastWasSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokens splits an already-normalized query into its whitespace-separated
// tokens.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
