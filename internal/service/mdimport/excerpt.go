package mdimport

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PlainExcerpt 把 Markdown 渲染树抽取为纯文本摘要，超长按字符截断
func PlainExcerpt(source []byte, limit int) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image:
			// 图片的 alt 文本不属于摘要
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			b.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})

	plain := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(plain)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return plain
}
