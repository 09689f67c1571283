package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxTextLength caps every piece of free text before it is persisted.
const MaxTextLength = 50000

// Sanitize strips NUL bytes, normalizes to NFC and caps the length. It is
// idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = norm.NFC.String(s)
	runes := []rune(s)
	if len(runes) > MaxTextLength {
		s = string(runes[:MaxTextLength])
	}
	return s
}
