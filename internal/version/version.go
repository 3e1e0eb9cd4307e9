// Package version exposes the build identity stamped in via ldflags.
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the version string, git commit, and build date.
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}
