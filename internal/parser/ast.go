package parser

// Kind identifies a grammar rule. Its numeric value is the rule's priority.
type Kind int

const (
	KindStart Kind = iota + 1
	KindBring
	KindVar
	KindNum
	KindSet
	KindPrint
	KindGet
	KindFind
	KindMake
	KindWrite
	KindRecognize
	KindRoom
	KindRange
	KindDraw
)

var kindNames = map[Kind]string{
	KindStart:     "code start",
	KindBring:     "bring",
	KindVar:       "var",
	KindNum:       "num",
	KindSet:       "set",
	KindPrint:     "print",
	KindGet:       "get",
	KindFind:      "find",
	KindMake:      "make",
	KindWrite:     "write",
	KindRecognize: "recognize",
	KindRoom:      "room",
	KindRange:     "range",
	KindDraw:      "cd.rd",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Command is a classified script line. Each rule produces its own variant.
type Command interface {
	Kind() Kind
}

// StartCmd is the "code start" marker.
type StartCmd struct{}

// BringCmd names a library: bring : <lib>
type BringCmd struct {
	Library string
}

// VarCmd declares a string variable: var <name> [{set "<value>"}]
type VarCmd struct {
	Name  string
	Value string // unquoted, "" when the set clause is absent
}

// NumCmd declares a numeric variable: num <name> [{set <number>}]
type NumCmd struct {
	Name    string
	Literal string // raw text of the set clause, "" when absent
}

// SetCmd assigns a variable: set <key> = <value>
type SetCmd struct {
	Key   string
	Value string // trimmed and unquoted
}

// PrintCmd prints interpolated text: print[.<mode>](<payload>)
type PrintCmd struct {
	Mode    string
	Payload string
}

// GetCmd looks up a target: get = <target> [<arg>]
type GetCmd struct {
	Target string
	Arg    string
	HasArg bool
}

// FindCmd is a simulated lookup: find = <target>[=<query>]
type FindCmd struct {
	Target string
	Query  string
}

// MakeCmd is a simulated creation: make/new = <type> [{<props>}] = <value>
type MakeCmd struct {
	Type  string
	Props string
	Value string
}

// WriteCmd is a simulated write: write/old = <target> = [v]<value>
type WriteCmd struct {
	Target string
	Text   string
}

// RecognizeCmd is a simulated recognition: recognize = <path>
type RecognizeCmd struct {
	Path string
}

// RoomCmd opens a room: room <name> [{<params>}] [:|;]
// A line that starts with "room " but has no valid header still belongs to
// the room rule; Valid is false for it.
type RoomCmd struct {
	Name   string
	Params string
	Valid  bool
}

// EndCmd closes a room: end[;]
type EndCmd struct{}

// RangeCmd declares a range: range(<v> = <min>, <v> > <max>)
type RangeCmd struct {
	Var string
	Min string
	Max string
}

// DrawCmd draws a random number: cd.rd(<name> = <min>~<max>)
type DrawCmd struct {
	Name string
	Min  string
	Max  string
}

func (*StartCmd) Kind() Kind     { return KindStart }
func (*BringCmd) Kind() Kind     { return KindBring }
func (*VarCmd) Kind() Kind       { return KindVar }
func (*NumCmd) Kind() Kind       { return KindNum }
func (*SetCmd) Kind() Kind       { return KindSet }
func (*PrintCmd) Kind() Kind     { return KindPrint }
func (*GetCmd) Kind() Kind       { return KindGet }
func (*FindCmd) Kind() Kind      { return KindFind }
func (*MakeCmd) Kind() Kind      { return KindMake }
func (*WriteCmd) Kind() Kind     { return KindWrite }
func (*RecognizeCmd) Kind() Kind { return KindRecognize }
func (*RoomCmd) Kind() Kind      { return KindRoom }
func (*EndCmd) Kind() Kind       { return KindRoom }
func (*RangeCmd) Kind() Kind     { return KindRange }
func (*DrawCmd) Kind() Kind      { return KindDraw }
