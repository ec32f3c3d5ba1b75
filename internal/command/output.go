package command

import (
	"strings"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

// ExecutePrint interpolates the payload. A payload that is one quoted literal
// is printed without its quotes.
func ExecutePrint(c *parser.PrintCmd, ctx *engine.Context) ([]engine.Event, error) {
	text := stripLiteral(ctx.Interpolate(c.Payload))
	return single(&engine.PrintedEvent{Mode: c.Mode, Text: text})
}

func ExecuteWrite(c *parser.WriteCmd, ctx *engine.Context) ([]engine.Event, error) {
	return single(&engine.WrittenEvent{Target: c.Target, Text: ctx.Interpolate(c.Text)})
}

func stripLiteral(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	inner := s[1 : len(s)-1]
	if strings.Contains(inner, `"`) {
		return s
	}
	return inner
}
