package engine

import (
	"math"
	"regexp"
	"strconv"
)

var (
	angleToken  = regexp.MustCompile(`<\s*([A-Za-z0-9_.]+)\s*>`)
	quotedIdent = regexp.MustCompile(`"([^"]*)"\s*([A-Za-z0-9_.]+)`)
)

// Resolve looks a name up in vars, then external info, then nums.
func (c *Context) Resolve(name string) (string, bool) {
	if v, ok := c.Vars.Get(name); ok {
		return v, true
	}
	if v, ok := c.External(name); ok {
		return v, true
	}
	if n, ok := c.Nums.Get(name); ok {
		return FormatNumber(n), true
	}
	return "", false
}

// Interpolate expands <name> tokens and then "literal"name pairs.
// The second pass runs over the output of the first, so substituted text
// that looks like a quoted pair is expanded again.
func (c *Context) Interpolate(text string) string {
	out := angleToken.ReplaceAllStringFunc(text, func(m string) string {
		name := angleToken.FindStringSubmatch(m)[1]
		if v, ok := c.Resolve(name); ok {
			return v
		}
		return "<" + name + ">"
	})

	return quotedIdent.ReplaceAllStringFunc(out, func(m string) string {
		sub := quotedIdent.FindStringSubmatch(m)
		literal, name := sub[1], sub[2]
		if v, ok := c.Resolve(name); ok {
			return literal + v
		}
		return literal + "<" + name + ">"
	})
}

// FormatNumber renders a number in its shortest round-trip form, switching to
// exponent notation for very large or very small magnitudes.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if abs := math.Abs(v); abs != 0 && (abs >= 1e15 || abs < 1e-5) {
		return strconv.FormatFloat(v, 'E', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
