// Package version exposes the application version derived from build metadata.
//
// Priority: -ldflags override > VCS info from debug.BuildInfo > "dev" fallback.
//
// Usage:
//
//	version.GitCommit  // "a3f8c2d1" or "dev"
//	version.Full()     // "webhook/a3f8c2d1" or "webhook/dev"
package version

import "runtime/debug"

// AppName is the application name used in version strings and log output.
const AppName = "webhook"

// gitCommitOverride is set via -ldflags at build time for container builds
// where .git is unavailable.
var gitCommitOverride string

// GitCommit is the short git commit hash (8 chars) from build info.
var GitCommit = resolveCommit(gitCommitOverride, readBuildInfo)

func readBuildInfo() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}

func resolveCommit(override string, info func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return shorten(override)
	}
	bi, ok := info()
	if !ok {
		return "dev"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return shorten(s.Value)
		}
	}
	return "dev"
}

func shorten(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

// Full returns "webhook/<commit>".
func Full() string {
	return AppName + "/" + GitCommit
}
