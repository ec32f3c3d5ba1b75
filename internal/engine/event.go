package engine

import "fmt"

type EventType string

const (
	EventStarted        EventType = "Started"
	EventLibraryBrought EventType = "LibraryBrought"
	EventVarDeclared    EventType = "VarDeclared"
	EventNumDeclared    EventType = "NumDeclared"
	EventVarSet         EventType = "VarSet"
	EventNumSet         EventType = "NumSet"
	EventPrinted        EventType = "Printed"
	EventGetResolved    EventType = "GetResolved"
	EventGetArgument    EventType = "GetArgument"
	EventFound          EventType = "Found"
	EventMade           EventType = "Made"
	EventWritten        EventType = "Written"
	EventRecognized     EventType = "Recognized"
	EventRoomEntered    EventType = "RoomEntered"
	EventRoomClosed     EventType = "RoomClosed"
	EventRangeDeclared  EventType = "RangeDeclared"
	EventNumDrawn       EventType = "NumDrawn"
	EventUnhandled      EventType = "Unhandled"
	EventFailed         EventType = "Failed"
)

// Event is one effect of a script line. Apply mutates the context and
// Message is the text appended to the run log.
type Event interface {
	Type() EventType
	Apply(ctx *Context) error
	Message() string
}

// StartedEvent marks the "code start" directive.
type StartedEvent struct{}

func (e *StartedEvent) Type() EventType          { return EventStarted }
func (e *StartedEvent) Apply(ctx *Context) error { return nil }
func (e *StartedEvent) Message() string          { return "code starts here!" }

// LibraryBroughtEvent records a library name. Nothing is loaded.
type LibraryBroughtEvent struct {
	Library string `json:"library"`
}

func (e *LibraryBroughtEvent) Type() EventType          { return EventLibraryBrought }
func (e *LibraryBroughtEvent) Apply(ctx *Context) error { return nil }
func (e *LibraryBroughtEvent) Message() string {
	return "BRING library recognized: " + e.Library
}

// VarDeclaredEvent declares or overwrites a string variable.
type VarDeclaredEvent struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (e *VarDeclaredEvent) Type() EventType { return EventVarDeclared }
func (e *VarDeclaredEvent) Apply(ctx *Context) error {
	ctx.Vars.Set(e.Name, e.Value)
	return nil
}
func (e *VarDeclaredEvent) Message() string {
	return fmt.Sprintf("var %s = \"%s\"", e.Name, e.Value)
}

// NumDeclaredEvent declares or overwrites a numeric variable.
type NumDeclaredEvent struct {
	Name  string `json:"name"`
	Value Number `json:"value"`
}

func (e *NumDeclaredEvent) Type() EventType { return EventNumDeclared }
func (e *NumDeclaredEvent) Apply(ctx *Context) error {
	ctx.Nums.Set(e.Name, float64(e.Value))
	return nil
}
func (e *NumDeclaredEvent) Message() string {
	return fmt.Sprintf("num %s = %s", e.Name, FormatNumber(float64(e.Value)))
}

// VarSetEvent assigns a string variable. Fallback marks a key that was
// neither a declared var nor a num accepting the value.
type VarSetEvent struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Fallback bool   `json:"fallback,omitempty"`
}

func (e *VarSetEvent) Type() EventType { return EventVarSet }
func (e *VarSetEvent) Apply(ctx *Context) error {
	ctx.Vars.Set(e.Key, e.Value)
	return nil
}
func (e *VarSetEvent) Message() string {
	if e.Fallback {
		return fmt.Sprintf("set (fallback) %s = %s", e.Key, e.Value)
	}
	return fmt.Sprintf("set var %s = %s", e.Key, e.Value)
}

// NumSetEvent assigns an existing numeric variable.
type NumSetEvent struct {
	Key   string `json:"key"`
	Value Number `json:"value"`
}

func (e *NumSetEvent) Type() EventType { return EventNumSet }
func (e *NumSetEvent) Apply(ctx *Context) error {
	ctx.Nums.Set(e.Key, float64(e.Value))
	return nil
}
func (e *NumSetEvent) Message() string {
	return fmt.Sprintf("set num %s = %s", e.Key, FormatNumber(float64(e.Value)))
}

// PrintedEvent carries already interpolated text.
type PrintedEvent struct {
	Mode string `json:"mode,omitempty"`
	Text string `json:"text"`
}

func (e *PrintedEvent) Type() EventType          { return EventPrinted }
func (e *PrintedEvent) Apply(ctx *Context) error { return nil }
func (e *PrintedEvent) Message() string {
	if e.Mode == "" {
		return "PRINT: " + e.Text
	}
	return "PRINT." + e.Mode + ": " + e.Text
}

// GetSource tells where a get result came from.
type GetSource string

const (
	GetExternal  GetSource = "external"
	GetSimulated GetSource = "simulated"
	GetUnknown   GetSource = "unknown"
)

// GetResolvedEvent records the outcome of a get lookup.
type GetResolvedEvent struct {
	Target string    `json:"target"`
	Source GetSource `json:"source"`
	Result string    `json:"result,omitempty"`
}

func (e *GetResolvedEvent) Type() EventType          { return EventGetResolved }
func (e *GetResolvedEvent) Apply(ctx *Context) error { return nil }
func (e *GetResolvedEvent) Message() string {
	switch e.Source {
	case GetExternal:
		return fmt.Sprintf("GET external %s => %s", e.Target, e.Result)
	case GetSimulated:
		return fmt.Sprintf("GET simulated: %s => %s", e.Target, e.Result)
	default:
		return "GET unknown target: " + e.Target
	}
}

// GetArgumentEvent records the optional bracketed argument of a get.
type GetArgumentEvent struct {
	Arg string `json:"arg"`
}

func (e *GetArgumentEvent) Type() EventType          { return EventGetArgument }
func (e *GetArgumentEvent) Apply(ctx *Context) error { return nil }
func (e *GetArgumentEvent) Message() string          { return "GET argument: " + e.Arg }

// FoundEvent is a simulated find.
type FoundEvent struct {
	Target string `json:"target"`
	Query  string `json:"query"`
}

func (e *FoundEvent) Type() EventType          { return EventFound }
func (e *FoundEvent) Apply(ctx *Context) error { return nil }
func (e *FoundEvent) Message() string {
	return fmt.Sprintf("FIND %s -> query '%s' => found simulated_result", e.Target, e.Query)
}

// MadeEvent is a simulated object creation.
type MadeEvent struct {
	Kind  string `json:"kind"`
	Props string `json:"props"`
	Value string `json:"value"`
}

func (e *MadeEvent) Type() EventType          { return EventMade }
func (e *MadeEvent) Apply(ctx *Context) error { return nil }
func (e *MadeEvent) Message() string {
	return fmt.Sprintf("MAKE new %s %s = %s", e.Kind, e.Props, e.Value)
}

// WrittenEvent is a simulated write of interpolated text.
type WrittenEvent struct {
	Target string `json:"target"`
	Text   string `json:"text"`
}

func (e *WrittenEvent) Type() EventType          { return EventWritten }
func (e *WrittenEvent) Apply(ctx *Context) error { return nil }
func (e *WrittenEvent) Message() string {
	return fmt.Sprintf("WRITE to %s: %s", e.Target, e.Text)
}

// RecognizedEvent is a simulated recognition.
type RecognizedEvent struct {
	Path string `json:"path"`
}

func (e *RecognizedEvent) Type() EventType          { return EventRecognized }
func (e *RecognizedEvent) Apply(ctx *Context) error { return nil }
func (e *RecognizedEvent) Message() string {
	return fmt.Sprintf("RECOGNIZE %s (simulated)", e.Path)
}

// RoomEnteredEvent opens a room.
type RoomEnteredEvent struct {
	Name   string `json:"name"`
	Params string `json:"params"`
}

func (e *RoomEnteredEvent) Type() EventType { return EventRoomEntered }
func (e *RoomEnteredEvent) Apply(ctx *Context) error {
	return ctx.Room.Enter(e.Name)
}
func (e *RoomEnteredEvent) Message() string {
	return fmt.Sprintf("ROOM enter %s (vars: %s)", e.Name, e.Params)
}

// RoomClosedEvent closes the open room.
type RoomClosedEvent struct {
	Name string `json:"name"`
}

func (e *RoomClosedEvent) Type() EventType { return EventRoomClosed }
func (e *RoomClosedEvent) Apply(ctx *Context) error {
	_, err := ctx.Room.Close()
	return err
}
func (e *RoomClosedEvent) Message() string {
	return fmt.Sprintf("ROOM %s closed", e.Name)
}

// RangeDeclaredEvent records a range. Nothing iterates.
type RangeDeclaredEvent struct {
	Var string `json:"var"`
	Min string `json:"min"`
	Max string `json:"max"`
}

func (e *RangeDeclaredEvent) Type() EventType          { return EventRangeDeclared }
func (e *RangeDeclaredEvent) Apply(ctx *Context) error { return nil }
func (e *RangeDeclaredEvent) Message() string {
	return fmt.Sprintf("RANGE %s from %s to %s (simulated)", e.Var, e.Min, e.Max)
}

// NumDrawnEvent stores a random draw.
type NumDrawnEvent struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

func (e *NumDrawnEvent) Type() EventType { return EventNumDrawn }
func (e *NumDrawnEvent) Apply(ctx *Context) error {
	ctx.Nums.Set(e.Name, float64(e.Value))
	return nil
}
func (e *NumDrawnEvent) Message() string {
	return fmt.Sprintf("RANDOM %s = %d", e.Name, e.Value)
}

// UnhandledEvent records a line no rule matched.
type UnhandledEvent struct {
	Line string `json:"line"`
}

func (e *UnhandledEvent) Type() EventType          { return EventUnhandled }
func (e *UnhandledEvent) Apply(ctx *Context) error { return nil }
func (e *UnhandledEvent) Message() string          { return "Unknown or unhandled line: " + e.Line }

// FailedEvent records a line whose handler failed.
type FailedEvent struct {
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

func (e *FailedEvent) Type() EventType          { return EventFailed }
func (e *FailedEvent) Apply(ctx *Context) error { return nil }
func (e *FailedEvent) Message() string {
	return fmt.Sprintf("Error executing '%s': %s", e.Line, e.Reason)
}
