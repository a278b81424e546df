// Package version reports which build of codebundle is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release builds set these with -ldflags, e.g.
// -X 'codebundle/pkg/version.Version=1.2.3' -X 'codebundle/pkg/version.Commit=abcdefg'.
// Builds that leave them alone fall back to the module build info.
var (
	Version = "dev"
	Commit  = "none"
)

// shortCommit is how many hex digits of a vcs revision are shown.
const shortCommit = 7

// Info identifies a build.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
}

// Get returns the build identity, preferring linker-set values over the
// module version and vcs revision recorded by the go command.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fromBuildInfo(info, bi)
	}
	return info
}

func fromBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	if info.Commit == "none" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				info.Commit = s.Value[:min(len(s.Value), shortCommit)]
			}
		}
	}
	return info
}

// String renders the build on one line, e.g.
// codebundle 1.2.3 (abcdefg, go1.24.1)
func (i Info) String() string {
	return fmt.Sprintf("codebundle %s (%s, %s)", i.Version, i.Commit, i.GoVersion)
}
