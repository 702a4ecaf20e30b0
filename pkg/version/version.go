// Package version holds build-time version information, injected via
// -ldflags at release build time.
package version

import "fmt"

var (
	// GitVersion is the semantic version, e.g. v0.3.1.
	GitVersion = "v0.0.0-master+$Format:%h$"
	// GitCommit is the commit SHA1 the binary was built from.
	GitCommit = "unknown"
	// BuildDate is the build timestamp in ISO8601 format.
	BuildDate = "1970-01-01T00:00:00Z"
)

// Info describes a build.
type Info struct {
	GitVersion string `json:"git_version"`
	GitCommit  string `json:"git_commit"`
	BuildDate  string `json:"build_date"`
}

// String returns the human-readable version line.
func (i Info) String() string {
	return fmt.Sprintf("%s (%s) built %s", i.GitVersion, i.GitCommit, i.BuildDate)
}

// Get returns the version information for the running binary.
func Get() Info {
	return Info{
		GitVersion: GitVersion,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
	}
}
