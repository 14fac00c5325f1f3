// Package misc keeps program identification set at build time.
package misc

import "runtime/debug"

// Set with -ldflags "-X boxy/misc.version=... -X boxy/misc.gitHash=..."
var (
	version = "dev"
	gitHash = ""
)

const appName = "boxy"

// GetAppName returns program name used for logger names and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, falling back to VCS
// information embedded by the Go toolchain.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
