// Package slugs derives URL-friendly identifiers for note titles.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"

	"github.com/aidanlsb/agendalink/internal/wikilink"
)

// Title slugifies a note title, e.g.
// "[[Jacob one-on-one 2026-02-18]]" -> "jacob-one-on-one-2026-02-18".
//
// Link brackets and a ".md" suffix are ignored.
func Title(title string) string {
	title = strings.TrimSpace(wikilink.Unwrap(strings.TrimSpace(title)))
	title = strings.TrimSuffix(title, ".md")
	slugged := goslug.Make(title)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	}
	return slugged
}
