// Package notes creates stub markdown files for produced agenda links.
package notes

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/agendalink/internal/atomicfile"
	"github.com/aidanlsb/agendalink/internal/combine"
	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/slugs"
	"github.com/aidanlsb/agendalink/internal/wikilink"
)

// Source is recorded in the frontmatter of every stub.
const Source = "agendalink"

// Frontmatter is the YAML header written at the top of a stub.
type Frontmatter struct {
	Date    string `yaml:"date,omitempty"`
	Person  string `yaml:"person,omitempty"`
	Slug    string `yaml:"slug"`
	Source  string `yaml:"source"`
	Created string `yaml:"created"`
}

// Outcome describes what happened to one link.
type Outcome struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Created bool   `json:"created"`
}

// Stub returns the markdown content for a note titled title.
func Stub(title string, now time.Time) ([]byte, error) {
	ev := combine.Parse(title, 0)
	fm := Frontmatter{
		Date:    ev.Date,
		Person:  ev.Person,
		Slug:    slugs.Title(title),
		Source:  Source,
		Created: now.Format(dates.DashedLayout),
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	buf.WriteString("---\n\n# ")
	buf.WriteString(title)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// CreateStubs writes <dir>/<title>.md for every link that has no note yet.
// Existing notes are left untouched and reported with Created=false.
func CreateStubs(dir string, links []string, now time.Time) ([]Outcome, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("notes directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create notes directory: %w", err)
	}

	outcomes := make([]Outcome, 0, len(links))
	for _, link := range links {
		title, _, ok := wikilink.ParseExact(link)
		if !ok {
			continue
		}

		path := filepath.Join(dir, title+".md")
		content, err := Stub(title, now)
		if err != nil {
			return outcomes, err
		}

		created := true
		if err := atomicfile.CreateNew(path, content, 0o644); err != nil {
			if !errors.Is(err, atomicfile.ErrExists) {
				return outcomes, fmt.Errorf("failed to create note %s: %w", path, err)
			}
			created = false
		}
		outcomes = append(outcomes, Outcome{Title: title, Path: path, Created: created})
	}
	return outcomes, nil
}
