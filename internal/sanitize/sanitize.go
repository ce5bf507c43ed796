// Package sanitize canonicalises strings interpolated into outbound
// notifications. Uncontrolled bytes in titles and names have caused
// transport-level encoding failures, so every interpolated value is
// reduced to the safe transport charset before composition.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// typographic punctuation folded to its ASCII equivalent before the
// lossy transform strips what remains.
var punctuation = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"‚", "'",
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"„", `"`,
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...",
	" ", " ", // no-break space
)

var toASCII = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII || (r < 0x20 && r != '\n' && r != '\t') || r == 0x7F
	})),
)

// Clean folds typographic punctuation to ASCII, decomposes accented
// characters and drops everything outside the printable ASCII range.
func Clean(s string) string {
	out, _, err := transform.String(toASCII, punctuation.Replace(s))
	if err != nil {
		// the transform chain cannot fail on valid UTF-8; treat anything
		// else as hostile and fall back to a byte-level strip
		var b strings.Builder
		for _, r := range s {
			if r >= 0x20 && r <= unicode.MaxASCII {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	return out
}

// CleanLine is Clean restricted to a single line: newlines and tabs are
// replaced with spaces. Use it for anything bound for a message header.
func CleanLine(s string) string {
	cleaned := Clean(s)
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.TrimSpace(cleaned)
}

// ContainsCRLF reports whether a header-bound field carries raw newline or
// carriage-return sequences, the header-injection vector.
func ContainsCRLF(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
