// Package buildinfo carries version metadata injected at build time:
//
//	go build -ldflags "-X github.com/helmward/helmboard/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/helmward/helmboard/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/helmward/helmboard/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set via ldflags; the zero values identify a non-release build.
var (
	// Version is the semantic version, e.g. "v1.2.3".
	Version = "dev"

	// Commit is the git commit SHA the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the build information for logs and diagnostics.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns cobra's version output template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
