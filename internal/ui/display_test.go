package ui

import (
	"regexp"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer line of text", 10, "a longer…"},
		{"héllo wörld", 6, "héllo…"},
		{"anything", 1, "…"},
		{"unbounded", 0, "unbounded"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Truncate(tt.in, tt.width); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestAvailableWidthHasFloor(t *testing.T) {
	d := NewDisplayContextWithWidth(30)
	if got := d.AvailableWidth(5); got != 25 {
		t.Fatalf("AvailableWidth(5) = %d", got)
	}
	if got := d.AvailableWidth(100); got != minTextWidth {
		t.Fatalf("AvailableWidth(100) = %d, want %d", got, minTextWidth)
	}
}

func TestRenderSkips(t *testing.T) {
	out := RenderSkips([]SkipRow{
		{Line: 2, Reason: "all-day", Text: "All day"},
		{Line: 12, Reason: "url", Text: "https://meet.example.com/" + strings.Repeat("x", 200)},
	}, NewDisplayContextWithWidth(60))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "all-day") || !strings.Contains(lines[0], "All day") {
		t.Fatalf("unexpected first row %q", lines[0])
	}
	if !strings.Contains(lines[1], "…") {
		t.Fatalf("expected long text to be truncated: %q", lines[1])
	}

	if RenderSkips(nil, nil) != "" {
		t.Fatalf("expected empty output for no rows")
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "link", "links"); got != "1 link" {
		t.Fatalf("Count(1) = %q", got)
	}
	if got := Count(3, "link", "links"); got != "3 links" {
		t.Fatalf("Count(3) = %q", got)
	}
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderMarkdownKeepsText(t *testing.T) {
	out, err := RenderMarkdown("# Rules\n\nNoise lines are **dropped**.\n\n- All day\n- Phoenix, AZ\n", 60)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	plain := ansiEscape.ReplaceAllString(out, "")
	for _, want := range []string{"Rules", "dropped", "All day", "Phoenix, AZ"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in rendered output:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected a single trailing newline, got %q", out[len(out)-min(len(out), 10):])
	}
}
