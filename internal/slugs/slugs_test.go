package slugs

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jacob one-on-one 2026-02-18", "jacob-one-on-one-2026-02-18"},
		{"[[Weekly Sync]]", "weekly-sync"},
		{"Maria Intro 20260218.md", "maria-intro-20260218"},
		{"UPPER CASE", "upper-case"},
		{"Special- Characters!", "special-characters"},
		{"Café meeting", "cafe-meeting"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Title(tt.in); got != tt.want {
				t.Fatalf("Title(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
