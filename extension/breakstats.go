package extension

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var HardBreaksCountKey = parser.NewContextKey()
var SoftBreaksCountKey = parser.NewContextKey()

// BreakStatsInfo holds the line break counts of a parsed document
type BreakStatsInfo struct {
	Hard int
	Soft int
}

// Total returns the number of line breaks inside paragraphs
func (b BreakStatsInfo) Total() int {
	return b.Hard + b.Soft
}

// BreakStats returns the line break counts recorded while parsing
func BreakStats(pc parser.Context) BreakStatsInfo {
	var stats BreakStatsInfo
	if val, ok := pc.Get(HardBreaksCountKey).(int); ok {
		stats.Hard = val
	}
	if val, ok := pc.Get(SoftBreaksCountKey).(int); ok {
		stats.Soft = val
	}
	return stats
}

type breakStatsTransformer struct {
}

// Transform counts text segments ending in a hard or soft line break
func (t *breakStatsTransformer) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	var stats BreakStatsInfo

	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}

		if txt, ok := n.(*gast.Text); ok {
			switch {
			case txt.HardLineBreak():
				stats.Hard++
			case txt.SoftLineBreak():
				stats.Soft++
			}
		}
		return gast.WalkContinue, nil
	})

	pc.Set(HardBreaksCountKey, stats.Hard)
	pc.Set(SoftBreaksCountKey, stats.Soft)
}

type breakStats struct {
}

// BreakCounter is an extension that records hard and soft line break counts in the parser context
var BreakCounter = &breakStats{}

func (e *breakStats) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&breakStatsTransformer{}, 999),
	))
}
