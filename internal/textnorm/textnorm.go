// Package textnorm provides the text normalization shared by the
// structure analyzers: whitespace collapsing, full-width folding, and
// style-token canonicalization.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var spaceRunRe = regexp.MustCompile(`\s+`)

// CollapseSpaces collapses runs of whitespace to a single space and trims
// leading and trailing whitespace.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// Fold converts full-width digits, letters, and punctuation to their
// narrow forms so marker and pattern matching sees one canonical shape.
// Office documents in CJK locales routinely mix "１." and "1.".
func Fold(s string) string {
	return width.Narrow.String(s)
}

// Token canonicalizes a style token: lower-cased with spaces, hyphens, and
// underscores removed. "List Paragraph", "list-paragraph", and
// "list_paragraph" all map to "listparagraph".
func Token(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(t)
}

// Tokens canonicalizes a slice of style tokens, dropping any that collapse
// to the empty string.
func Tokens(styles []string) []string {
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		if t := Token(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
