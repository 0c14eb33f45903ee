package minijson

import "strings"

// ============================================================
// String Codec
// ============================================================
//
// Strings start with '%'. Every structural delimiter inside the text is
// preceded by a backslash; no other character is escaped, so a backslash
// that already sits before a delimiter cannot be told apart from an escape.

const (
	stringMarker = '%'
	escapeChar   = '\\'
	delimiters   = "|:[]{}"
)

func isDelimiter(c byte) bool {
	return strings.IndexByte(delimiters, c) >= 0
}

func isStringToken(s string) bool {
	return len(s) > 0 && s[0] == stringMarker
}

// quoteString returns the string token for s.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 1)
	b.WriteByte(stringMarker)
	writeEscaped(&b, s)
	return b.String()
}

// unquoteString decodes a string token. The marker is not checked.
func unquoteString(s string) string {
	if len(s) > 0 {
		s = s[1:]
	}
	return unescapeText(s)
}

// escapeText escapes delimiters for use as an object key.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	writeEscaped(&b, s)
	return b.String()
}

func writeEscaped(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDelimiter(c) {
			b.WriteByte(escapeChar)
		}
		b.WriteByte(c)
	}
}

// unescapeText drops each backslash that precedes a delimiter. The result
// never aliases s.
func unescapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == escapeChar && i+1 < len(s) && isDelimiter(s[i+1]) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
