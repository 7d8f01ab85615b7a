// Package version holds the CLI's own version string, following the
// teacher's pkg/version (a single overridable var rather than a
// generated build-info struct).
package version

// Version is the current metrostudio CLI version. A var, not a const,
// so it can be overridden at build time via:
//
//	go build -ldflags "-X github.com/metrostudio/core/internal/version.Version=v1.2.3"
var Version = "v0.1.0"
