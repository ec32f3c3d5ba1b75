package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/suderio/netdust/internal/rules"
	"github.com/suderio/netdust/internal/session"
)

// scriptExtensions are the usual Net Dust script extensions.
var scriptExtensions = []string{".rpp", ".nd"}

var runCmd = &cobra.Command{
	Use:   "run <script>...",
	Short: "Execute one or more scripts",
	Long: `Runs every script independently and prints its log followed by the
final vars and nums. Each script starts from an empty context.

Expectations are CEL expressions over vars, nums, log, messages and
external; the command fails when any of them is false:

	netdust run intro.rpp --expect 'nums.n == 3.0' --expect "vars.name == 'Ana'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		expects, _ := cmd.Flags().GetStringArray("expect")
		return runScripts(cmd.OutOrStdout(), args, expects, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	runCmd.Flags().StringP("journal", "j", "", "write the events of each run to this JSONL file")
	runCmd.Flags().StringArrayP("expect", "e", nil, "CEL expression that must hold after the run (repeatable)")

	_ = viper.BindPFlag("format", runCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("journal", runCmd.Flags().Lookup("journal"))
}

func runScripts(out io.Writer, paths []string, expects []string, logger *zap.Logger) error {
	format, err := session.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	var registry *rules.Registry
	if len(expects) > 0 {
		if registry, err = rules.NewRegistry(); err != nil {
			return fmt.Errorf("failed to initialize rules registry: %w", err)
		}
	}

	var bar *progressbar.ProgressBar
	if len(paths) > 1 && term.IsTerminal(int(os.Stdout.Fd())) {
		bar = progressbar.Default(int64(len(paths)), "Running scripts")
	}

	var errs []error
	for _, path := range paths {
		if len(paths) > 1 {
			fmt.Fprintf(out, "== %s ==\n", path)
		}
		if err := runScript(out, path, len(paths), format, registry, expects, logger); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return errors.Join(errs...)
}

func runScript(out io.Writer, path string, count int, format session.Format, registry *rules.Registry, expects []string, logger *zap.Logger) error {
	if !hasScriptExtension(path) {
		logger.Warn("unexpected script extension", zap.String("path", path), zap.Strings("want", scriptExtensions))
	}

	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	cfg := sessionConfig(logger.With(zap.String("script", path)))

	var store *session.Store
	if journal := viper.GetString("journal"); journal != "" {
		journalPath := session.JournalPath(journal, path, count)
		if store, err = session.CreateStore(journalPath); err != nil {
			return err
		}
		defer store.Close()
		cfg.Journal = store
		logger.Debug("journaling run", zap.String("journal", journalPath))
	}

	ctx, runErr := session.New(cfg).Execute(string(script))
	if err := session.Render(out, ctx, format); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	if registry == nil {
		return nil
	}
	_, err = registry.Check(expects, ctx)
	return err
}

func hasScriptExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range scriptExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
