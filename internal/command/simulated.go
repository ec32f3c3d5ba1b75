package command

import (
	"regexp"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

var (
	// targets served by the simulated data sources
	simulatedTarget = regexp.MustCompile(`nf|rk`)
	nonWord         = regexp.MustCompile(`[^\w.]`)
)

// ExecuteGet resolves a target against the external info first, then the
// simulated sources. The optional argument is logged after the result.
func ExecuteGet(c *parser.GetCmd, ctx *engine.Context) ([]engine.Event, error) {
	var evt *engine.GetResolvedEvent
	switch v, ok := ctx.External(c.Target); {
	case ok:
		evt = &engine.GetResolvedEvent{Target: c.Target, Source: engine.GetExternal, Result: v}
	case simulatedTarget.MatchString(c.Target):
		evt = &engine.GetResolvedEvent{
			Target: c.Target,
			Source: engine.GetSimulated,
			Result: "sample_result_for_" + nonWord.ReplaceAllString(c.Target, "_"),
		}
	default:
		evt = &engine.GetResolvedEvent{Target: c.Target, Source: engine.GetUnknown}
	}

	events := []engine.Event{evt}
	if c.HasArg {
		events = append(events, &engine.GetArgumentEvent{Arg: c.Arg})
	}
	return events, nil
}
