// Package version carries build-time version metadata.
package version

import "fmt"

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/Monotoba/OpenPCB/internal/version.Version=v0.2.0 \
//	                   -X github.com/Monotoba/OpenPCB/internal/version.Commit=abc123"
var (
	// Version is the semantic version of the application.
	Version = "0.1.0-dev"
	// Commit is the git commit hash.
	Commit = "unknown"
)

// Full returns the version string including the commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
