package version

import (
	"fmt"
	"runtime/debug"
)

// Info describes the running program for banners and --version output.
type Info struct {
	Name        string
	Description string
	Version     string
}

var readBuildInfo = debug.ReadBuildInfo

func New(name, description string) Info {
	return Info{Name: name, Description: description, Version: FromBuildInfo()}
}

func FromBuildInfo() (version string) {
	version = "unavailable"

	info, ok := readBuildInfo()
	if !ok {
		return version
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var vcs, revision, ts string

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs":
			vcs = info.Settings[i].Value
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		default:
			continue
		}
	}

	if revision == "" {
		return version
	}

	if ts == "" {
		return fmt.Sprintf("built from %s revision %s", vcs, revision)
	}

	return fmt.Sprintf("built from %s revision %s at %s", vcs, revision, ts)
}
