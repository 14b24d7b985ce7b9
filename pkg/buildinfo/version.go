// Package buildinfo exposes the version stamped into the fcblocks binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/fcblocks/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/fcblocks/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/fcblocks/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/fcblocks
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v0.3.0"
	Commit  = "none"    // git commit
	Date    = "unknown" // build timestamp (RFC 3339)
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// UserAgent identifies fcblocks in HTTP requests to the level service.
func UserAgent() string {
	return "fcblocks/" + Version
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
