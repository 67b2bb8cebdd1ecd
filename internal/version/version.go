// Package version exposes the build identity of a prodmatch binary. The
// values below are replaced at build time with
// -ldflags "-X .../internal/version.Version=...".
package version

var (
	Version = "0.0.0-dev"
	Commit  = "unknown"
	Date    = "unknown"
)
