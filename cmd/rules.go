package cmd

import (
	"io"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/netdust/internal/parser"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the grammar rules in priority order",
	Long: `Prints every rule of the active grammar. A line is handled by the first
rule that accepts it; a line no rule accepts is logged as unknown.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		g := parser.Build()
		if viper.GetBool("legacy") {
			g = parser.BuildLegacy()
		}
		printRules(cmd.OutOrStdout(), g)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func printRules(out io.Writer, g *parser.Grammar) {
	t := table.New("#", "Rule", "Usage").WithWriter(out)
	for i, r := range g.Rules() {
		t.AddRow(i+1, r.Kind, r.Usage)
	}
	t.Print()
}
