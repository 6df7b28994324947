// Package version holds build metadata injected at link time.
package version

var (
	// Version is the semantic version of this build.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = ""
	// BuildDate is when the binary was built.
	BuildDate = ""
)
