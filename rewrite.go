package twospace

import (
	"strings"
	"unicode"
)

const (
	// FrontmatterDelimiter opens and closes the YAML front matter block
	FrontmatterDelimiter = "---"

	// FenceMarker starts a fenced code block delimiter line
	FenceMarker = "```"

	// HardBreak is the Markdown hard line break suffix
	HardBreak = "  "
)

// Options controls which regions of a document are left untouched
type Options struct {
	ExcludeCodeBlocks  bool
	ExcludeFrontMatter bool
}

// DefaultOptions excludes both code blocks and front matter
var DefaultOptions = Options{
	ExcludeCodeBlocks:  true,
	ExcludeFrontMatter: true,
}

// scanState is the context carried across a single pass over the lines
type scanState struct {
	inFrontMatter bool
	inCodeBlock   bool
}

// Rewrite returns text with every ordinary line ending in exactly two spaces.
// Blank lines are emptied, fence and front matter delimiter lines are kept as-is,
// and lines inside excluded regions are copied byte for byte
func Rewrite(text string, opts Options) string {
	if text == "" {
		return ""
	}

	lines := SplitLines(text)
	var state scanState

	for i, line := range lines {
		lines[i] = state.rewriteLine(i, line, opts)
	}

	return JoinLines(lines)
}

// RewriteChanged rewrites text and reports whether the result differs from the input
func RewriteChanged(text string, opts Options) (string, bool) {
	rewritten := Rewrite(text, opts)
	return rewritten, rewritten != text
}

func (s *scanState) rewriteLine(i int, line string, opts Options) string {
	// Front matter only opens on the very first line
	if i == 0 && line == FrontmatterDelimiter {
		s.inFrontMatter = true
		return line
	}

	if s.inFrontMatter {
		if line == FrontmatterDelimiter {
			s.inFrontMatter = false
		}
		return line
	}

	if strings.HasPrefix(strings.TrimFunc(line, isSpace), FenceMarker) {
		s.inCodeBlock = !s.inCodeBlock
		return line
	}

	// inFrontMatter is always false here; the check is kept so both exclusions share one rule
	if (s.inCodeBlock && opts.ExcludeCodeBlocks) || (s.inFrontMatter && opts.ExcludeFrontMatter) {
		return line
	}

	trimmed := strings.TrimRightFunc(line, isSpace)
	if trimmed == "" {
		return ""
	}

	return trimmed + HardBreak
}

// isSpace matches the whitespace and line terminators that editors trim: Unicode Zs, the ASCII
// controls \t \n \v \f \r, U+FEFF (byte order mark), U+2028 and U+2029. U+0085 is not included
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
