/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suderio/netdust/internal/parser"
	"github.com/suderio/netdust/internal/session"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netdust",
	Short: "Interpreter for Net Dust scripts",
	Long: `netdust runs Net Dust scripts: line-oriented programs that declare
variables and numbers, print interpolated text, simulate lookups and
writes, open rooms and draw random numbers.

Each run produces a timestamped log plus the final vars and nums.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.netdust.yaml)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "seed for cd.rd draws (0 picks a random seed)")
	rootCmd.PersistentFlags().Bool("legacy", false, "use the reduced legacy grammar")
	rootCmd.PersistentFlags().String("log_level", "warn", "diagnostic log level (debug, info, warn, error)")

	for _, key := range []string{"seed", "legacy", "log_level"} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".netdust")
	}

	viper.SetEnvPrefix("NETDUST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the stderr diagnostic logger from log_level.
func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// sessionConfig assembles the run configuration shared by every command.
func sessionConfig(logger *zap.Logger) session.Config {
	grammar := parser.Build()
	if viper.GetBool("legacy") {
		grammar = parser.BuildLegacy()
	}
	return session.Config{
		Grammar: grammar,
		Seed:    viper.GetUint64("seed"),
		Logger:  logger,
	}
}
