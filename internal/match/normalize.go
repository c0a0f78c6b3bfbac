package match

import (
	"strings"
	"unicode"
)

// Normalize folds a keyword for fuzzy comparison: lower case, without
// separators (_, -, :, spaces).
func Normalize(s string) string {
	var sb strings.Builder

	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ':' || unicode.IsSpace(r):
			continue
		default:
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return sb.String()
}
