package wikilink

import "testing"

func TestParseExact(t *testing.T) {
	tests := []struct {
		in          string
		wantTarget  string
		wantDisplay *string
		wantOK      bool
	}{
		{in: "[[Jacob one-on-one 2026-02-18]]", wantTarget: "Jacob one-on-one 2026-02-18", wantOK: true},
		{in: " [[Standup]] ", wantTarget: "Standup", wantOK: true},
		{
			in:         "[[people/jacob|Jacob]]",
			wantTarget: "people/jacob",
			wantDisplay: func() *string {
				s := "Jacob"
				return &s
			}(),
			wantOK: true,
		},
		{in: "[[]]", wantOK: false},
		{in: "[[ ]]", wantOK: false},
		{in: "Standup", wantOK: false},
		{in: "[[Standup", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			target, display, ok := ParseExact(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok=%v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if target != tt.wantTarget {
				t.Fatalf("target=%q, want %q", target, tt.wantTarget)
			}
			if (display == nil) != (tt.wantDisplay == nil) {
				t.Fatalf("display nil=%v, want %v", display == nil, tt.wantDisplay == nil)
			}
			if display != nil && *display != *tt.wantDisplay {
				t.Fatalf("display=%q, want %q", *display, *tt.wantDisplay)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[[Standup]]", "Standup"},
		{"Standup", "Standup"},
		{"[[Standup", "Standup"},
		{"Standup]]", "Standup"},
		{"[[[[Standup]]]]", "[[Standup]]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Unwrap(tt.in); got != tt.want {
				t.Fatalf("Unwrap(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap("Jacob one-on-one"); got != "[[Jacob one-on-one]]" {
		t.Fatalf("Wrap = %q", got)
	}
	if got := Unwrap(Wrap("x")); got != "x" {
		t.Fatalf("Unwrap(Wrap(x)) = %q", got)
	}
}
