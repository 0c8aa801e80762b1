package version

import (
	"runtime/debug"
	"sync"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/kbukum/dime"

// Version overrides the detected module version. Set at build time with
//
//	-ldflags "-X github.com/kbukum/dime/version.Version=v1.2.3"
var Version = ""

// Info describes the dime module linked into the running binary.
type Info struct {
	Version   string `json:"version"`
	Sum       string `json:"sum,omitempty"`
	GoVersion string `json:"go_version"`
	Replaced  bool   `json:"replaced"`
}

var (
	buildOnce sync.Once
	buildInfo *debug.BuildInfo
)

func readBuildInfo() *debug.BuildInfo {
	buildOnce.Do(func() {
		if bi, ok := debug.ReadBuildInfo(); ok {
			buildInfo = bi
		}
	})
	return buildInfo
}

// Get returns version information for the dime module. When dime is the
// main module or is not found in the build info the version is "(devel)".
func Get() Info {
	return fromBuildInfo(readBuildInfo(), Version)
}

func fromBuildInfo(bi *debug.BuildInfo, override string) Info {
	info := Info{Version: "(devel)"}
	if bi != nil {
		info.GoVersion = bi.GoVersion
		if bi.Main.Path == ModulePath && bi.Main.Version != "" {
			info.Version = bi.Main.Version
			info.Sum = bi.Main.Sum
		}
		for _, dep := range bi.Deps {
			if dep.Path != ModulePath {
				continue
			}
			info.Version, info.Sum = dep.Version, dep.Sum
			if dep.Replace != nil {
				info.Replaced = true
				if dep.Replace.Version != "" {
					info.Version = dep.Replace.Version
				}
			}
			break
		}
	}
	if override != "" {
		info.Version = override
	}
	return info
}

// Short returns the module version, for instrumentation scopes and logs.
func Short() string {
	return Get().Version
}
