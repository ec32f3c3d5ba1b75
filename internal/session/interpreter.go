package session

import (
	"strings"

	"github.com/suderio/netdust/internal/engine"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines splits script text on \r\n, \r and \n.
func SplitLines(script string) []string {
	return strings.Split(newlines.Replace(script), "\n")
}

// Interpreter runs whole scripts. Every call to Execute starts a new Session,
// so runs never see each other's state and may proceed concurrently as long
// as they do not share a Journal.
type Interpreter struct {
	cfg Config
}

// New returns an interpreter that starts every run from cfg.
func New(cfg Config) *Interpreter {
	return &Interpreter{cfg: cfg}
}

// Execute runs every line of script and returns the populated context. The
// error reports a journal failure; the context is complete either way.
func (in *Interpreter) Execute(script string) (*engine.Context, error) {
	s := NewSession(in.cfg)
	for _, line := range SplitLines(script) {
		if _, err := s.Execute(line); err != nil {
			return s.Context(), err
		}
	}
	return s.Context(), s.Err()
}

// Execute runs script with the full grammar and a random seed.
func Execute(script string) *engine.Context {
	ctx, _ := New(Config{}).Execute(script)
	return ctx
}
