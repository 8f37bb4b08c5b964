package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// markdownMargin is the left margin of rendered guides.
const markdownMargin = 2

// RenderMarkdown renders a bundled guide for the terminal, wrapped to width.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(guideStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

func guideStyle() ansi.StyleConfig {
	muted := ptr("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = ptr(color)
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n"},
			Margin:         ptr(uint(markdownMargin)),
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Color: accent, Bold: ptr(true)},
		},
		H1:   ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}},
		H2:   ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3:   ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		List: ansi.StyleList{LevelIndent: 2},
		Item: ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Emph:   ansi.StylePrimitive{Italic: ptr(true)},
		Strong: ansi.StylePrimitive{Bold: ptr(true)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: accent, Prefix: "`", Suffix: "`"},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: muted},
				Margin:         ptr(uint(markdownMargin)),
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: ptr("│"),
			ColumnSeparator: ptr("│"),
			RowSeparator:    ptr("─"),
		},
		HorizontalRule: ansi.StylePrimitive{Color: muted, Format: "\n--------\n"},
	}
}

func ptr[T any](v T) *T { return &v }
