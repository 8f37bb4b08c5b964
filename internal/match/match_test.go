package match

import "testing"

func TestMatcherCaptures(t *testing.T) {
	m := New("date", `(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})(?P<extra>!)?`)

	c, ok := m.Match("due 2026-02-18 soon")
	if !ok {
		t.Fatalf("expected match")
	}
	if c.Text != "2026-02-18" {
		t.Fatalf("Text = %q", c.Text)
	}
	if c.Start != 4 || c.End != 14 {
		t.Fatalf("Start/End = %d/%d, want 4/14", c.Start, c.End)
	}
	if c.Get("year") != "2026" || c.Get("month") != "02" || c.Get("day") != "18" {
		t.Fatalf("unexpected groups: %q %q %q", c.Get("year"), c.Get("month"), c.Get("day"))
	}
	if c.Has("extra") {
		t.Fatalf("optional group should not be present")
	}
	if c.Get("missing") != "" {
		t.Fatalf("unknown group should be empty")
	}

	if _, ok := m.Match("no date here"); ok {
		t.Fatalf("expected no match")
	}
}

func TestChainFirstRespectsOrder(t *testing.T) {
	word := New("word", `^(?P<v>\w+)`)
	digits := New("digits", `^(?P<v>\d+)`)

	m, c, ok := Chain{word, digits}.First("123")
	if !ok || m.Name != "word" || c.Get("v") != "123" {
		t.Fatalf("expected word matcher to win, got %v %q %v", m, c.Get("v"), ok)
	}

	m, _, ok = Chain{digits, word}.First("123")
	if !ok || m.Name != "digits" {
		t.Fatalf("expected digits matcher to win")
	}

	if (Chain{digits}).Any("abc") {
		t.Fatalf("expected no match")
	}
}
