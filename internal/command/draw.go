package command

import (
	"fmt"
	"strconv"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

// ExecuteDraw draws a number in [min, max] and stores it under the name.
func ExecuteDraw(c *parser.DrawCmd, roller *engine.Roller) ([]engine.Event, error) {
	min, err := parseBound(c.Min)
	if err != nil {
		return nil, err
	}
	max, err := parseBound(c.Max)
	if err != nil {
		return nil, err
	}

	v, err := roller.Draw(min, max)
	if err != nil {
		return nil, err
	}
	return single(&engine.NumDrawnEvent{Name: c.Name, Value: v, Min: min, Max: max})
}

// bounds are 32-bit integers
func parseBound(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bound %s: %w", s, err)
	}
	return int(v), nil
}
