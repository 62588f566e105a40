// Package buildinfo holds the version identifiers stamped at build time.
package buildinfo

// Set via -ldflags at release build time; the defaults mark a local build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
