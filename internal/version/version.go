// Package version carries build metadata for the binlink binaries.
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/binlink/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/binlink/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/binlink/internal/version.Date={{.Date}}
)
