package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/suderio/netdust/internal/parser"
)

var (
	// Version is injected by GoReleaser via ldflags at build time
	Version = "dev"
	// Commit is injected by GoReleaser via ldflags at build time
	Commit = "none"
	// BuildDate is injected by GoReleaser via ldflags at build time
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the application version",
	Long:  `Displays the netdust version, its build metadata and the grammars it understands.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "netdust %s (%s, built %s) %s/%s\n", Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
	for _, g := range []*parser.Grammar{parser.Build(), parser.BuildLegacy()} {
		fmt.Fprintf(out, "grammar %s: %d rules\n", g.Name(), len(g.Rules()))
	}
}
