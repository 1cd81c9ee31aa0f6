package fetch

import (
	"math"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// runesPerMinute is the average spoken pace used for length estimates.
const runesPerMinute = 220

// PlainText reduces markdown to the plain prose handed to the script
// generator: block text is kept in document order, markup and raw code
// blocks are dropped.
func PlainText(markdown string) string {
	src := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		default:
			// Separate block elements so headings don't glue to paragraphs.
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// EstimateMinutes approximates the spoken length of text, rounded to whole
// minutes with a floor of one minute for any non-empty text.
func EstimateMinutes(textContent string) int {
	runes := len([]rune(strings.TrimSpace(textContent)))
	if runes == 0 {
		return 0
	}
	minutes := int(math.Round(float64(runes) / runesPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
