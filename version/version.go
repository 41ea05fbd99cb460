// Package version reports the version of the harmonia binaries.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version can be set at build time:
// go build -ldflags "-X github.com/vsariola/harmonia/version.Version=$(git describe --dirty)"
var Version string

// Info is the build information of the running binary.
type Info struct {
	Version   string
	Revision  string
	Modified  bool
	GoVersion string
}

// Read returns the build information embedded in the binary.
func Read() Info {
	ret := Info{Version: Version}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ret
	}
	return fromBuildInfo(Version, info)
}

func fromBuildInfo(version string, info *debug.BuildInfo) Info {
	ret := Info{Version: version, GoVersion: info.GoVersion}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ret.Revision = setting.Value
		case "vcs.modified":
			ret.Modified = setting.Value == "true"
		}
	}
	if ret.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		ret.Version = info.Main.Version
	}
	return ret
}

// Short returns the version if known, otherwise the short commit hash,
// suffixed with -dirty for modified working trees.
func (i Info) Short() string {
	if i.Version != "" {
		return i.Version
	}
	hash := i.Revision
	if len(hash) > 7 {
		hash = hash[:7]
	}
	if hash == "" {
		return "unknown"
	}
	if i.Modified {
		return hash + "-dirty"
	}
	return hash
}

func (i Info) String() string {
	if i.GoVersion == "" {
		return i.Short()
	}
	return fmt.Sprintf("%v (%v)", i.Short(), i.GoVersion)
}
