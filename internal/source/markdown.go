package source

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLines returns the text lines of every paragraph and list item in
// document order. Frontmatter, headings, code and raw HTML are dropped.
func MarkdownLines(content []byte) []string {
	body := stripFrontmatter(strings.ReplaceAll(string(content), "\r\n", "\n"))
	src := []byte(body)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindHeading, ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindTextBlock:
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				line := strings.TrimRight(string(seg.Value(src)), " \t\r\n")
				if line != "" {
					lines = append(lines, line)
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return lines
}

// stripFrontmatter removes a leading '---' block. An unclosed block is kept
// as content.
func stripFrontmatter(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return content
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[i+1:], "\n")
		}
	}
	return content
}
