// Package version reports the build version of fritz-profiles.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/fritz-profiles/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/fritz-profiles/internal/version.Commit=abc123"
//
// Otherwise they are filled from the module and VCS build info, falling back
// to "dev" and "unknown".
var (
	Version = ""
	Commit  = ""
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version info of the running binary
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	v, c := resolve(Version, Commit, bi)
	return Info{
		Version:   v,
		Commit:    c,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// resolve fills missing ldflags values from build info. `go install` records
// the module version; local builds only carry VCS settings.
func resolve(version, commit string, bi *debug.BuildInfo) (string, string) {
	if bi != nil {
		if version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}

		var revision, modified string
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value
			}
		}
		if commit == "" && revision != "" {
			if len(revision) > 7 {
				revision = revision[:7]
			}
			commit = revision
			if modified == "true" {
				commit += "-dirty"
			}
		}
	}

	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return version, commit
}

// Full returns the version string including commit
func Full() string {
	i := Get()
	return fmt.Sprintf("%s (commit: %s, %s, %s)", i.Version, i.Commit, i.GoVersion, i.Platform)
}
