// Package buildinfo carries the version identifiers stamped into the
// binary at release time.
package buildinfo

// Set via -ldflags when building a release, e.g.
// -X github.com/beanbridge-dev/beanbridge/internal/buildinfo.Version=v1.0.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
