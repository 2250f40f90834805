// Package buildinfo exposes the build identity of a VoteLedger binary.
//
// Version, Commit, and BuildTime are injected at build time:
//
//	go build -ldflags "-X github.com/yndnr/voteledger-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo

import "runtime"

// Set at build time via -ldflags -X.
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info is a snapshot of the build identity, shaped for the status
// endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String returns a one-line banner for --version output.
func String() string {
	return Version + " (" + Commit + ") built at " + BuildTime + " with " + runtime.Version()
}
