/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/suderio/netdust/internal/parser"
	"github.com/suderio/netdust/internal/session"
)

const historyFile = ".netdust_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL shell",
	Long: `Starts a read-eval-print loop where every line is run as a script line
against one session.
Usage:
	> var name {set "Ana"}
	> print("hello "name)

'reset' starts a fresh session, 'exit' or 'quit' leaves.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		core := newReplCore(sessionConfig(logger))
		plain, _ := cmd.Flags().GetBool("plain")

		switch {
		case !term.IsTerminal(int(os.Stdin.Fd())):
			return runScanner(os.Stdin, cmd.OutOrStdout(), core)
		case plain:
			return runLiner(cmd.OutOrStdout(), core)
		default:
			return RunTUI(core)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().Bool("plain", false, "use a plain line editor instead of the full screen interface")
}

// replCore is the front-end independent part of the REPL.
type replCore struct {
	cfg     session.Config
	session *session.Session
}

func newReplCore(cfg session.Config) *replCore {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &replCore{cfg: cfg, session: session.NewSession(cfg)}
}

// Handle runs one input line and returns the lines to show. quit is true
// when the user asked to leave.
func (c *replCore) Handle(input string) (output []string, quit bool) {
	line := strings.TrimSpace(input)

	switch strings.ToLower(line) {
	case "exit", "quit":
		return nil, true
	case "reset":
		c.session = session.NewSession(c.cfg)
		return []string{"Session reset."}, false
	}

	before := len(c.session.Context().Log())
	if _, err := c.session.Execute(line); err != nil {
		c.cfg.Logger.Error("repl line failed", zap.String("line", line), zap.Error(err))
		return []string{fmt.Sprintf("Error: %v", err)}, false
	}

	lines := c.session.Context().Lines()
	return lines[before:], false
}

// Session returns the current session.
func (c *replCore) Session() *session.Session {
	return c.session
}

// runScanner reads lines from a non-terminal input until EOF.
func runScanner(in io.Reader, out io.Writer, core *replCore) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		output, quit := core.Handle(scanner.Text())
		for _, l := range output {
			fmt.Fprintln(out, l)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// runLiner is the plain terminal front-end with history and tab completion.
func runLiner(out io.Writer, core *replCore) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return parser.Complete(line)
	})

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(out, "Net Dust REPL (%s grammar). Type 'exit' or 'quit' to leave.\n", core.Session().Grammar().Name())
	for {
		input, err := ln.Prompt("nd> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		output, quit := core.Handle(input)
		if quit {
			return nil
		}
		if strings.TrimSpace(input) != "" {
			ln.AppendHistory(input)
		}
		for _, l := range output {
			fmt.Fprintln(out, l)
		}
	}
}
