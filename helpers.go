package twospace

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase title-cases s using English casing rules
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// SplitLines splits content on line feeds. A trailing line feed yields a final empty line,
// so JoinLines(SplitLines(s)) == s for every s
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// JoinLines joins lines with line feeds
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// IsMarkdownFile reports whether the file name has a markdown extension
func IsMarkdownFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
