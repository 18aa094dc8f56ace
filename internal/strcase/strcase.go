// Package strcase provides the deterministic identifier normalization used
// for agent type names and derived field names.
// This package is internal and should not be imported by external projects.
package strcase

import (
	"strings"
	"unicode"
)

// ToKebab normalizes an identifier to lowercase kebab-case. Digits,
// underscores, dollar signs and other non-letter noise are stripped, and
// camel-case boundaries become hyphens.
//
// The conversion is pure and idempotent: "AssistantAgent" and
// "_AssistantAgent$__1" both normalize to "assistant-agent".
func ToKebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	prevLower := false
	for _, r := range name {
		if !unicode.IsLetter(r) {
			// A non-letter still terminates a camel run, so "a-b" survives
			// round trips through ToKebab.
			if r == '-' && prevLower {
				b.WriteRune('-')
				prevLower = false
			}
			continue
		}
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
			continue
		}
		b.WriteRune(r)
		prevLower = true
	}

	return strings.Trim(b.String(), "-")
}
