// Package version holds build metadata injected with ldflags:
//
//	go build -ldflags "-X github.com/rickgao/led-remote/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/led-remote/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rickgao/led-remote/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/panel
package version

import "log/slog"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns "version (commit) built time".
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime
}

// Attr groups the build metadata for startup logs.
func Attr() slog.Attr {
	return slog.Group("build",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("time", BuildTime),
	)
}
