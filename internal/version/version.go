// Package version holds build metadata for the docnav binary.
package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/docnav/internal/version.Version=v1.0.0".
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
