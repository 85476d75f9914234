// Package buildinfo provides build-time version information for chromatic.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/chromatic/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/chromatic/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/chromatic/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Solver names the optimization backend compiled into this binary.
const Solver = "gophersat"

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\nsolver: %s", Version, Commit, Date, Solver)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\nsolver: %s\n", Version, Commit, Date, Solver)
}

// Info is the JSON shape of the build information served by the HTTP API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Solver  string `json:"solver"`
}

// Get returns the build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Solver: Solver}
}
