package command

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

var decimalRe = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// ParseNumber reads a decimal literal with an optional exponent. Hex forms and
// the inf and nan words are rejected. Values too large for a float64 become
// an infinity rather than failing.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalRe.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

func ExecuteVar(c *parser.VarCmd) ([]engine.Event, error) {
	return single(&engine.VarDeclaredEvent{Name: c.Name, Value: c.Value})
}

// ExecuteNum declares a number. A missing or unreadable literal declares 0.
func ExecuteNum(c *parser.NumCmd) ([]engine.Event, error) {
	v, ok := ParseNumber(c.Literal)
	if !ok {
		v = 0
	}
	return single(&engine.NumDeclaredEvent{Name: c.Name, Value: engine.Number(v)})
}

// ExecuteSet assigns a declared var, then a declared num when the value reads
// as a number, and otherwise creates a var.
func ExecuteSet(c *parser.SetCmd, ctx *engine.Context) ([]engine.Event, error) {
	if ctx.Vars.Has(c.Key) {
		return single(&engine.VarSetEvent{Key: c.Key, Value: c.Value})
	}
	if ctx.Nums.Has(c.Key) {
		if v, ok := ParseNumber(c.Value); ok {
			return single(&engine.NumSetEvent{Key: c.Key, Value: engine.Number(v)})
		}
	}
	return single(&engine.VarSetEvent{Key: c.Key, Value: c.Value, Fallback: true})
}
