// Package version carries the build version, stamped via -ldflags.
package version

var (
	// Version is the semver of this build, or "dev" for local builds.
	Version = "dev"
	// GitCommit is the commit hash of this build.
	GitCommit = ""
)
