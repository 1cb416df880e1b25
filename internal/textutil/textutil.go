// Package textutil holds the small text transforms shared by the parser,
// the compiler and the report formatters.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	stripNonASCII = runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	}))

	crlfEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`)

	titleCaser = cases.Title(language.English)
)

// IsNonASCIIOrCRLF reports whether s holds anything the tabular format
// cannot carry: a non-ASCII byte or a raw line break.
func IsNonASCIIOrCRLF(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII || s[i] == '\n' || s[i] == '\r' {
			return true
		}
	}
	return false
}

// SanitizeASCII drops non-ASCII characters and escapes line breaks into the
// visible two-character forms \n and \r.
func SanitizeASCII(s string) string {
	out, _, err := transform.String(stripNonASCII, s)
	if err != nil {
		out = strings.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return -1
			}
			return r
		}, s)
	}
	return crlfEscaper.Replace(out)
}

// Title upper-cases the first letter of each word, for column headers.
func Title(s string) string {
	return titleCaser.String(s)
}
