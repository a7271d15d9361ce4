package schema

import (
	"strings"
	"unicode"
)

// SnakeCase converts a Go identifier into snake_case, keeping acronyms
// together: HTTPServer becomes http_server.
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if !unicode.IsUpper(prev) || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Plural appends an s. Method names are mechanical, not English.
func Plural(s string) string { return s + "s" }
