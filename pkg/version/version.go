// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X github.com/rshade/salesboard/pkg/version.version=1.2.0 \
//	  -X github.com/rshade/salesboard/pkg/version.commit=$(git rev-parse --short HEAD)"
package version

import "strings"

//nolint:gochecknoglobals // Set via -ldflags at build time
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

// GetVersion returns the build version without a leading "v".
func GetVersion() string {
	return strings.TrimPrefix(version, "v")
}

// GetCommit returns the short commit hash of the build.
func GetCommit() string {
	return commit
}
