package parser

import "strings"

// rangeCall is range(<v> = <min>, <v> > <max>). Both variable positions must
// name the same variable, compared without case.
type rangeCall struct {
	Keyword string `parser:"@Keyword \"(\" Whitespace?"`
	Var     string `parser:"@(Name|Number|Keyword) Whitespace? \"=\" Whitespace?"`
	Min     string `parser:"@Number Whitespace? \",\" Whitespace?"`
	Bound   string `parser:"@(Name|Number|Keyword) Whitespace? \">\" Whitespace?"`
	Max     string `parser:"@Number Whitespace? \")\" Whitespace?"`
}

// drawCall is cd.rd(<name> = <min>~<max>).
type drawCall struct {
	Keyword string `parser:"@Keyword \"(\" Whitespace?"`
	Name    string `parser:"@(Name|Number|Keyword) Whitespace? \"=\" Whitespace?"`
	Min     string `parser:"@Number \"~\""`
	Max     string `parser:"@Number Whitespace? \")\" Whitespace?"`
}

// ParseRange matches line against the range call form.
func ParseRange(line string) (*RangeCmd, bool) {
	call, err := rangeParser.ParseString("", line)
	if err != nil {
		return nil, false
	}
	if !strings.EqualFold(call.Keyword, "range") || !strings.EqualFold(call.Var, call.Bound) {
		return nil, false
	}
	return &RangeCmd{Var: call.Var, Min: call.Min, Max: call.Max}, true
}

// ParseDraw matches line against the cd.rd call form.
func ParseDraw(line string) (*DrawCmd, bool) {
	call, err := drawParser.ParseString("", line)
	if err != nil {
		return nil, false
	}
	if !strings.EqualFold(call.Keyword, "cd.rd") {
		return nil, false
	}
	return &DrawCmd{Name: call.Name, Min: call.Min, Max: call.Max}, true
}
