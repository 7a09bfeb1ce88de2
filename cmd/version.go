package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/curanostics/curanostics/cmd.version=...".
var (
	version = ""
	commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		v, c := buildVersion()
		fmt.Printf("curanostics %s", v)
		if c != "" {
			fmt.Printf(" (%s)", c)
		}
		fmt.Printf(" %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

// buildVersion prefers linker-set values and falls back to the module and
// VCS metadata embedded by go build.
func buildVersion() (string, string) {
	v, c := version, commit
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return orDefault(v, "(devel)"), c
	}
	if v == "" {
		v = info.Main.Version
	}
	if c == "" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				c = s.Value[:7]
			}
		}
	}
	return orDefault(v, "(devel)"), c
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
