// Package buildinfo holds release metadata stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/agendalink/internal/buildinfo.Version=v0.1.0"
//
// All values are empty for local builds; the version command then falls back
// to the module build info.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
