// Package version reports build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/tickerload/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/tickerload/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rickgao/tickerload/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/tickerload
package version

// Set via ldflags.
var (
	// Version is the semantic version (e.g., "1.0.0").
	Version = "dev"

	// Commit is the short git commit hash.
	Commit = "unknown"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// String returns "tickerload <version> (<commit>) built <time>".
func String() string {
	return "tickerload " + Version + " (" + Commit + ") built " + BuildTime
}
