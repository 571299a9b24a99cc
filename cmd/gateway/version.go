// In file: cmd/gateway/version.go
package main

import (
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X main.version=1.2.0 -X main.gitCommit=$(git rev-parse --short HEAD)"
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// BuildInfo describes the running binary. It is logged at startup and
// reported by /healthz.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
