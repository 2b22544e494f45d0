// boxforge-cli — headless BoxForge for scripts and CI.
//
// Generates finger-jointed box layouts from the command line without
// a display server. See `boxforge-cli --help` for the command tree.
//
// Build:
//   go build -o boxforge-cli ./cmd/boxforge-cli

package main

import (
	"os"

	"github.com/piwi3910/BoxForge/internal/cli"
)

// Populated at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
