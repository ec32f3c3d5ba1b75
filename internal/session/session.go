package session

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suderio/netdust/internal/command"
	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

// Journal defines the dependency required by Session to persist events.
type Journal interface {
	Append(evt engine.Event, at time.Time) error
}

// Config selects the grammar, randomness, persistence and diagnostics of a run.
// The zero value runs the full grammar with a random seed, no journal and no
// diagnostics.
type Config struct {
	Grammar *parser.Grammar
	Seed    uint64 // 0 draws a seed from the runtime
	Journal Journal
	Logger  *zap.Logger
	Clock   func() time.Time
}

// Session feeds script lines one at a time into a single run context.
// A Session is not safe for concurrent use.
type Session struct {
	grammar *parser.Grammar
	journal Journal
	logger  *zap.Logger
	ctx     *engine.Context
	roller  *engine.Roller
	err     error
}

// NewSession starts a run with an empty context, an Outside room scope and
// its own random source.
func NewSession(cfg Config) *Session {
	s := &Session{
		grammar: cfg.Grammar,
		journal: cfg.Journal,
		logger:  cfg.Logger,
	}
	if s.grammar == nil {
		s.grammar = parser.Build()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	if cfg.Clock != nil {
		s.ctx = engine.NewContextWithClock(cfg.Clock)
	} else {
		s.ctx = engine.NewContext()
	}

	if cfg.Seed == 0 {
		s.roller = engine.NewRandomRoller()
	} else {
		s.roller = engine.NewRoller(cfg.Seed)
	}
	return s
}

// Context returns the run context.
func (s *Session) Context() *engine.Context {
	return s.ctx
}

// Grammar returns the grammar lines are classified with.
func (s *Session) Grammar() *parser.Grammar {
	return s.grammar
}

// Err returns the first journal failure of the run, if any. After a failure
// the run continues without a journal.
func (s *Session) Err() error {
	return s.err
}

// IsComment reports whether a trimmed line is a full-line comment.
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

// Execute runs one script line and returns the events it produced. Blank and
// comment lines produce nothing. Failures of the line itself are recorded in
// the run log, so the returned error only reports an inconsistent context.
func (s *Session) Execute(line string) ([]engine.Event, error) {
	line = strings.TrimSpace(line)
	if line == "" || IsComment(line) {
		return nil, nil
	}

	events := s.dispatch(line)
	for _, evt := range events {
		if err := s.ApplyAndAppend(evt); err != nil {
			return events, err
		}
	}
	return events, nil
}

// dispatch classifies the line and runs its handler. Unknown lines, handler
// errors and handler panics all become events.
func (s *Session) dispatch(line string) (events []engine.Event) {
	cmd, ok := s.grammar.Classify(line)
	if !ok {
		s.logger.Debug("unhandled line",
			zap.String("line", line),
			zap.String("grammar", s.grammar.Name()),
			zap.NamedError("hint", s.grammar.MapError(line)),
		)
		return []engine.Event{&engine.UnhandledEvent{Line: line}}
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panicked", zap.String("line", line), zap.Any("panic", r))
			events = []engine.Event{&engine.FailedEvent{Line: line, Reason: fmt.Sprint(r)}}
		}
	}()

	events, err := command.Execute(cmd, s.ctx, s.roller)
	if err != nil {
		s.logger.Debug("handler failed",
			zap.String("line", line),
			zap.Stringer("rule", cmd.Kind()),
			zap.Error(err),
		)
		return []engine.Event{&engine.FailedEvent{Line: line, Reason: err.Error()}}
	}
	return events
}

// ApplyAndAppend journals the event and then applies it to the context,
// which also appends its message to the run log.
func (s *Session) ApplyAndAppend(evt engine.Event) error {
	at := s.ctx.Now()

	if s.journal != nil {
		if err := s.journal.Append(evt, at); err != nil {
			s.logger.Error("journal append failed", zap.String("event", string(evt.Type())), zap.Error(err))
			s.err = fmt.Errorf("failed to persist event log: %w", err)
			s.journal = nil
		}
	}

	if err := s.ctx.Apply(evt, at); err != nil {
		return fmt.Errorf("failed to apply %s: %w", evt.Type(), err)
	}
	return nil
}
