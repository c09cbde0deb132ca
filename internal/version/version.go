// Package version reports which build of swatchsheet is running.
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Version is set at build time:
// -ldflags="-X github.com/wethinkt/go-swatchsheet/internal/version.Version=v1.0.0"
var Version = ""

// Info describes a build.
type Info struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	Modified bool   `json:"modified,omitempty"`
	Go       string `json:"go,omitempty"`
}

// build is what the Go toolchain recorded about the binary.
type build struct {
	module   string // module version, "(devel)" for local builds
	revision string
	modified bool
	goVer    string
}

var readBuild = sync.OnceValue(func() build {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return build{}
	}
	b := build{module: bi.Main.Version, goVer: bi.GoVersion}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			b.revision = s.Value
		case "vcs.modified":
			b.modified = s.Value == "true"
		}
	}
	return b
})

// GetInfo returns the version and VCS metadata of this build.
func GetInfo(name string) Info {
	b := readBuild()
	return Info{
		Name:     name,
		Version:  resolve(Version, b),
		Revision: b.revision,
		Modified: b.modified,
		Go:       b.goVer,
	}
}

// Get returns the version string: the ldflags value, else the module version,
// else "dev-<short revision>" for VCS builds, else "dev".
func Get() string {
	return resolve(Version, readBuild())
}

func resolve(ldflags string, b build) string {
	switch {
	case ldflags != "":
		return ldflags
	case b.module != "" && b.module != "(devel)":
		return b.module
	case b.revision != "":
		v := "dev-" + shortRevision(b.revision)
		if b.modified {
			v += "-dirty"
		}
		return v
	}
	return "dev"
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String returns "<name> version <version>".
func String(name string) string {
	return fmt.Sprintf("%s version %s", name, Get())
}
