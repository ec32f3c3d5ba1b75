package rules

import (
	"github.com/suderio/netdust/internal/engine"
)

// Activation exposes the run record of ctx to CEL. Map keys keep the first
// spelling a script used for each name.
func Activation(ctx *engine.Context) map[string]any {
	return map[string]any{
		"vars":     ctx.Vars.Map(),
		"nums":     ctx.Nums.Map(),
		"log":      ctx.Lines(),
		"messages": ctx.Messages(),
		"external": ctx.ExternalInfo(),
	}
}
