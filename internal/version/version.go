package version

import (
	"runtime/debug"
)

// Version returns the git revision recorded in the binary's build info, or
// "dev" for builds without VCS stamping (go run, test binaries).
func Version() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for i := range bi.Settings {
			if bi.Settings[i].Key == "vcs.revision" {
				return bi.Settings[i].Value
			}
		}
	}
	return "dev"
}
