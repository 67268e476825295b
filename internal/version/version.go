// Package version reports the version of the jbwatch binary.
package version

import (
	"runtime/debug"
)

const (
	develVersion   = "(devel)"
	maxRevisionLen = 12
)

// Version is the release version, it's set via
// -ldflags "-X github.com/juiceinc/jbwatch/internal/version.Version=v1.2.3".
// When it is empty, the module version from the build information is used.
var Version = ""

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version followed by the VCS revision the binary was
// built from, if it is known.
func String() string {
	info, ok := readBuildInfo()

	ver := Version
	if ver == "" {
		ver = develVersion
		if ok && info.Main.Version != "" {
			ver = info.Main.Version
		}
	}

	if !ok {
		return ver
	}

	var revision string
	var modified bool

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if revision == "" {
		return ver
	}

	if len(revision) > maxRevisionLen {
		revision = revision[:maxRevisionLen]
	}

	if modified {
		revision += "-dirty"
	}

	return ver + " (" + revision + ")"
}
