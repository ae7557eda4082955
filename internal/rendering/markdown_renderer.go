// Package rendering renders notes to sanitized HTML and reads their front matter
package rendering

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	pextension "github.com/patrickward/twospace/extension"
)

// OptOutKey is the front matter key that disables rewriting for a single note
const OptOutKey = "twospace"

// MarkdownRenderer converts notes to sanitized HTML
type MarkdownRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// RenderedContent is a rendered note with its front matter and break counts
type RenderedContent struct {
	HTML       template.HTML  // The sanitized HTML content
	Metadata   map[string]any // Front matter values
	HardBreaks int            // Line breaks rendered as <br>
	SoftBreaks int            // Line breaks joined into the paragraph
}

// NewMarkdownRenderer creates a renderer. Hard wraps are off so only real hard breaks render as <br>
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			pextension.BreakCounter,
			meta.Meta,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &MarkdownRenderer{
		md:        md,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts content to HTML
func (mr *MarkdownRenderer) Render(content string) (RenderedContent, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := mr.md.Convert([]byte(content), &buf, parser.WithContext(ctx)); err != nil {
		return RenderedContent{}, fmt.Errorf("failed to render markdown: %w", err)
	}

	metadata, err := meta.TryGet(ctx)
	if err != nil {
		return RenderedContent{}, fmt.Errorf("failed to parse front matter: %w", err)
	}

	stats := pextension.BreakStats(ctx)

	return RenderedContent{
		HTML:       template.HTML(mr.sanitizer.Sanitize(buf.String())),
		Metadata:   metadata,
		HardBreaks: stats.Hard,
		SoftBreaks: stats.Soft,
	}, nil
}

// Metadata parses the front matter of content without rendering it
func (mr *MarkdownRenderer) Metadata(content string) (map[string]any, error) {
	ctx := parser.NewContext()
	mr.md.Parser().Parse(text.NewReader([]byte(content)), parser.WithContext(ctx))

	metadata, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return metadata, nil
}

// OptedOut reports whether the front matter sets "twospace: false"
func OptedOut(metadata map[string]any) bool {
	switch v := metadata[OptOutKey].(type) {
	case bool:
		return !v
	case string:
		return v == "false" || v == "off" || v == "no"
	default:
		return false
	}
}
