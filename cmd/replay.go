/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/netdust/internal/session"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <journal>",
	Short: "Rebuild a run record from its journal",
	Long: `Reads a JSONL journal written by 'run --journal' and rebuilds the
run context via the event Projector, keeping the recorded timestamps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := viper.GetString("format")
		if cmd.Flags().Changed("format") {
			name, _ = cmd.Flags().GetString("format")
		}
		format, err := session.ParseFormat(name)
		if err != nil {
			return err
		}

		ctx, err := session.Replay(args[0])
		if err != nil {
			return fmt.Errorf("failed to replay %s: %w", args[0], err)
		}
		return session.Render(cmd.OutOrStdout(), ctx, format)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
}
