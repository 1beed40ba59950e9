// Package build provides build-time metadata. The values are overridden
// at link time by the release pipeline.
package build

var (
	// Version is the release version, e.g. "v0.3.1".
	Version = "dev"

	// Commit is the git commit hash the binary was built from.
	Commit = ""

	// Date is the build timestamp.
	Date = ""

	// ProjectName is used in telemetry resource attributes and the CLI.
	ProjectName = "shambalink"
)
