package parser

import (
	"regexp"
	"strings"
)

var (
	bringRe     = regexp.MustCompile(`(?i)^bring\s*:\s*(.+)$`)
	varRe       = regexp.MustCompile(`(?i)^var\s+([A-Za-z_][A-Za-z0-9_]*)\s*(\{set\s*(.+)\})?$`)
	numRe       = regexp.MustCompile(`(?i)^num\s+([A-Za-z_][A-Za-z0-9_]*)\s*(\{set\s*(.*?)\s*\})?$`)
	setRe       = regexp.MustCompile(`(?i)^set\s+([A-Za-z0-9_.]+)\s*=\s*(.+)$`)
	printRe     = regexp.MustCompile(`(?i)^print(?:\.([a-zA-Z0-9_]+))?\s*\(\s*(.*)\s*\)\s*;?$`)
	getRe       = regexp.MustCompile(`(?i)^get\s*=\s*([A-Za-z0-9_\-.]+)\s*(?:<\s*([A-Za-z0-9_\-.]+)\s*>)?$`)
	findRe      = regexp.MustCompile(`(?i)^find\s*=\s*([^=]+)(?:=\s*(.+))?$`)
	makeRe      = regexp.MustCompile(`(?i)^make\s*/\s*new\s*=\s*([A-Za-z0-9_.]+)\s*(\{([^}]*)\})?\s*=\s*("([^"]*)"|([A-Za-z0-9_.]+))`)
	writeRe     = regexp.MustCompile(`(?i)^write\s*/\s*old\s*=\s*([A-Za-z0-9_.]+)\s*=\s*v?("([^"]*)"|(.+))`)
	recognizeRe = regexp.MustCompile(`(?i)^recognize\s*=\s*(.+)$`)
	roomRe      = regexp.MustCompile(`(?i)^room\s+([A-Za-z0-9_]+)\s*(\{([^}]*)\})?\s*[:;]?$`)
	endRe       = regexp.MustCompile(`(?i)^end;?$`)
)

// Rule is one entry of a grammar: a kind, a usage line and a matcher.
type Rule struct {
	Kind  Kind
	Usage string
	match func(line string) (Command, bool)
}

// Match reports whether the rule accepts line and returns its command.
func (r Rule) Match(line string) (Command, bool) {
	return r.match(line)
}

// Grammar is an ordered rule list. The first rule that matches wins.
type Grammar struct {
	name  string
	rules []Rule
}

// Build returns the full fourteen-rule grammar.
func Build() *Grammar {
	return &Grammar{name: "full", rules: allRules()}
}

// BuildLegacy returns the reduced grammar of the older dialect.
func BuildLegacy() *Grammar {
	keep := map[Kind]bool{
		KindStart:     true,
		KindBring:     true,
		KindVar:       true,
		KindNum:       true,
		KindGet:       true,
		KindPrint:     true,
		KindRecognize: true,
	}

	var rules []Rule
	for _, r := range allRules() {
		if keep[r.Kind] {
			rules = append(rules, r)
		}
	}
	return &Grammar{name: "legacy", rules: rules}
}

// Name is "full" or "legacy".
func (g *Grammar) Name() string {
	return g.name
}

// Rules returns the rules in priority order.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// Classify returns the command of the first matching rule. The line is
// expected to be trimmed already.
func (g *Grammar) Classify(line string) (Command, bool) {
	for _, r := range g.rules {
		if cmd, ok := r.match(line); ok {
			return cmd, true
		}
	}
	return nil, false
}

func allRules() []Rule {
	return []Rule{
		{KindStart, "code start", matchStart},
		{KindBring, "bring : <lib>", matchBring},
		{KindVar, `var <name> [{set "<value>"}]`, matchVar},
		{KindNum, "num <name> [{set <number>}]", matchNum},
		{KindSet, "set <key> = <value>", matchSet},
		{KindPrint, "print[.<mode>](<payload>)", matchPrint},
		{KindGet, "get = <target> [<arg>]", matchGet},
		{KindFind, "find = <target>[=<query>]", matchFind},
		{KindMake, `make/new = <type> [{<props>}] = <value|"text">`, matchMake},
		{KindWrite, `write/old = <target> = [v]<value|"text">`, matchWrite},
		{KindRecognize, "recognize = <path>", matchRecognize},
		{KindRoom, "room <name> [{<params>}] [:|;]  ...  end[;]", matchRoom},
		{KindRange, "range(<v> = <min>, <v> > <max>)", matchRange},
		{KindDraw, "cd.rd(<name> = <min>~<max>)", matchDraw},
	}
}

// unquote trims whitespace and then every surrounding double quote.
func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

func matchStart(line string) (Command, bool) {
	if strings.EqualFold(line, "code start") {
		return &StartCmd{}, true
	}
	return nil, false
}

func matchBring(line string) (Command, bool) {
	m := bringRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &BringCmd{Library: strings.TrimSpace(m[1])}, true
}

func matchVar(line string) (Command, bool) {
	m := varRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	cmd := &VarCmd{Name: m[1]}
	if m[2] != "" {
		cmd.Value = unquote(m[3])
	}
	return cmd, true
}

func matchNum(line string) (Command, bool) {
	m := numRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &NumCmd{Name: m[1], Literal: m[3]}, true
}

func matchSet(line string) (Command, bool) {
	m := setRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &SetCmd{Key: m[1], Value: unquote(m[2])}, true
}

func matchPrint(line string) (Command, bool) {
	m := printRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &PrintCmd{Mode: m[1], Payload: strings.TrimSpace(m[2])}, true
}

func matchGet(line string) (Command, bool) {
	m := getRe.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, false
	}
	cmd := &GetCmd{Target: line[m[2]:m[3]]}
	if m[4] >= 0 {
		cmd.Arg = line[m[4]:m[5]]
		cmd.HasArg = true
	}
	return cmd, true
}

func matchFind(line string) (Command, bool) {
	m := findRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &FindCmd{Target: strings.TrimSpace(m[1]), Query: strings.TrimSpace(m[2])}, true
}

func matchMake(line string) (Command, bool) {
	m := makeRe.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, false
	}
	cmd := &MakeCmd{Type: line[m[2]:m[3]]}
	if m[6] >= 0 {
		cmd.Props = line[m[6]:m[7]]
	}
	if m[10] >= 0 {
		cmd.Value = line[m[10]:m[11]]
	} else {
		cmd.Value = line[m[12]:m[13]]
	}
	return cmd, true
}

func matchWrite(line string) (Command, bool) {
	m := writeRe.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, false
	}
	cmd := &WriteCmd{Target: line[m[2]:m[3]]}
	if m[6] >= 0 {
		cmd.Text = line[m[6]:m[7]]
	} else {
		cmd.Text = line[m[8]:m[9]]
	}
	return cmd, true
}

func matchRecognize(line string) (Command, bool) {
	m := recognizeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &RecognizeCmd{Path: strings.TrimSpace(m[1])}, true
}

// matchRoom claims every line that starts with "room " and every end line.
// Whether the room header is well formed is recorded on the command.
func matchRoom(line string) (Command, bool) {
	if endRe.MatchString(line) {
		return &EndCmd{}, true
	}
	if len(line) < 5 || !strings.EqualFold(line[:5], "room ") {
		return nil, false
	}

	m := roomRe.FindStringSubmatch(line)
	if m == nil {
		return &RoomCmd{}, true
	}
	return &RoomCmd{Name: m[1], Params: m[3], Valid: true}, true
}

func matchRange(line string) (Command, bool) {
	if cmd, ok := ParseRange(line); ok {
		return cmd, true
	}
	return nil, false
}

func matchDraw(line string) (Command, bool) {
	if cmd, ok := ParseDraw(line); ok {
		return cmd, true
	}
	return nil, false
}
