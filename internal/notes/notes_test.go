package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

var now = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func TestStubFrontmatter(t *testing.T) {
	content, err := Stub("Jacob one-on-one 2026-02-18", now)
	if err != nil {
		t.Fatalf("Stub: %v", err)
	}

	s := string(content)
	if !strings.HasPrefix(s, "---\n") {
		t.Fatalf("missing frontmatter: %q", s)
	}
	parts := strings.SplitN(s, "---\n", 3)
	if len(parts) != 3 {
		t.Fatalf("unexpected layout: %q", s)
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("frontmatter is not YAML: %v", err)
	}
	if fm.Person != "Jacob" || fm.Date != "2026-02-18" || fm.Source != Source || fm.Created != "2026-10-18" || fm.Slug != "jacob-one-on-one-2026-02-18" {
		t.Fatalf("unexpected frontmatter: %+v", fm)
	}
	if !strings.Contains(parts[2], "# Jacob one-on-one 2026-02-18\n") {
		t.Fatalf("missing heading: %q", parts[2])
	}
}

func TestStubOmitsUnknownPerson(t *testing.T) {
	content, err := Stub("team sync", now)
	if err != nil {
		t.Fatalf("Stub: %v", err)
	}
	if strings.Contains(string(content), "person:") || strings.Contains(string(content), "date:") {
		t.Fatalf("expected person and date to be omitted: %q", content)
	}
}

func TestCreateStubs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "meetings")

	existing := filepath.Join(dir, "Standup 2026-02-18.md")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(existing, []byte("# mine\n"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	links := []string{
		"[[Jacob one-on-one and Career Discussion 2026-02-18]]",
		"[[Standup 2026-02-18]]",
		"not a link",
	}

	outcomes, err := CreateStubs(dir, links, now)
	if err != nil {
		t.Fatalf("CreateStubs: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %+v", outcomes)
	}
	if !outcomes[0].Created || outcomes[1].Created {
		t.Fatalf("unexpected created flags: %+v", outcomes)
	}

	got, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("read existing: %v", err)
	}
	if string(got) != "# mine\n" {
		t.Fatalf("existing note was overwritten: %q", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "Jacob one-on-one and Career Discussion 2026-02-18.md")); err != nil {
		t.Fatalf("expected stub to be created: %v", err)
	}
}

func TestCreateStubsRequiresDir(t *testing.T) {
	if _, err := CreateStubs("  ", []string{"[[x]]"}, now); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}
