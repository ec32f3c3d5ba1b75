package engine

import (
	"strings"
	"time"
)

// LogLayout is the timestamp layout prefixed to every rendered log entry.
const LogLayout = "15:04:05"

// Table is a case-insensitive name table that remembers the first spelling
// of each name and iterates in insertion order.
type Table[V any] struct {
	index map[string]int
	keys  []string
	vals  []V
}

// NewTable creates an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{index: make(map[string]int)}
}

func fold(name string) string {
	return strings.ToLower(name)
}

// Get returns the value stored under name, ignoring case.
func (t *Table[V]) Get(name string) (V, bool) {
	if i, ok := t.index[fold(name)]; ok {
		return t.vals[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether name is present, ignoring case.
func (t *Table[V]) Has(name string) bool {
	_, ok := t.index[fold(name)]
	return ok
}

// Set stores v under name. Overwriting keeps the first spelling.
func (t *Table[V]) Set(name string, v V) {
	k := fold(name)
	if i, ok := t.index[k]; ok {
		t.vals[i] = v
		return
	}
	t.index[k] = len(t.keys)
	t.keys = append(t.keys, name)
	t.vals = append(t.vals, v)
}

// Len returns the number of names.
func (t *Table[V]) Len() int {
	return len(t.keys)
}

// Keys returns the names in insertion order.
func (t *Table[V]) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Each visits every entry in insertion order.
func (t *Table[V]) Each(fn func(name string, v V)) {
	for i, k := range t.keys {
		fn(k, t.vals[i])
	}
}

// Map copies the table into a plain map keyed by the stored spelling.
func (t *Table[V]) Map() map[string]V {
	out := make(map[string]V, len(t.keys))
	t.Each(func(name string, v V) { out[name] = v })
	return out
}

// LogEntry is one line of the run log.
type LogEntry struct {
	Time    time.Time `json:"time" yaml:"time"`
	Message string    `json:"message" yaml:"message"`
}

func (e LogEntry) String() string {
	return e.Time.Format(LogLayout) + " - " + e.Message
}

// externalInfo is the simulated identity every run can read through get and interpolation.
var externalInfo = [][2]string{
	{"user.name", "newtem"},
	{"user.id", "2"},
	{"user.role", "dev"},
}

// Context is the mutable state of a single script execution.
type Context struct {
	Vars  *Table[string]
	Nums  *Table[float64]
	Slots *Table[[]string] // reserved; no command fills it
	Room  *Scope

	external *Table[string]
	log      []LogEntry
	clock    func() time.Time
}

// NewContext creates an empty context stamped with the wall clock.
func NewContext() *Context {
	return NewContextWithClock(time.Now)
}

// NewContextWithClock creates an empty context whose log timestamps come from clock.
func NewContextWithClock(clock func() time.Time) *Context {
	if clock == nil {
		clock = time.Now
	}
	ext := NewTable[string]()
	for _, kv := range externalInfo {
		ext.Set(kv[0], kv[1])
	}
	return &Context{
		Vars:     NewTable[string](),
		Nums:     NewTable[float64](),
		Slots:    NewTable[[]string](),
		Room:     &Scope{},
		external: ext,
		clock:    clock,
	}
}

// Now reads the context clock.
func (c *Context) Now() time.Time {
	return c.clock()
}

// External looks up a simulated identity fact.
func (c *Context) External(name string) (string, bool) {
	return c.external.Get(name)
}

// ExternalInfo returns a copy of the simulated identity facts.
func (c *Context) ExternalInfo() map[string]string {
	return c.external.Map()
}

// AddLog appends msg stamped with the context clock.
func (c *Context) AddLog(msg string) {
	c.AppendLog(c.clock(), msg)
}

// AppendLog appends msg with an explicit timestamp.
func (c *Context) AppendLog(at time.Time, msg string) {
	c.log = append(c.log, LogEntry{Time: at, Message: msg})
}

// Apply runs the event against the context and records its message at the given time.
func (c *Context) Apply(evt Event, at time.Time) error {
	if err := evt.Apply(c); err != nil {
		return err
	}
	c.AppendLog(at, evt.Message())
	return nil
}

// Log returns a copy of the log entries.
func (c *Context) Log() []LogEntry {
	out := make([]LogEntry, len(c.log))
	copy(out, c.log)
	return out
}

// Lines renders the log as "HH:MM:SS - message" strings.
func (c *Context) Lines() []string {
	out := make([]string, len(c.log))
	for i, e := range c.log {
		out[i] = e.String()
	}
	return out
}

// Messages returns the log messages without timestamps.
func (c *Context) Messages() []string {
	out := make([]string, len(c.log))
	for i, e := range c.log {
		out[i] = e.Message
	}
	return out
}

// Result is the record handed to callers once a run is over.
type Result struct {
	Log  []string           `json:"log" yaml:"log"`
	Vars map[string]string  `json:"vars" yaml:"vars"`
	Nums map[string]float64 `json:"nums" yaml:"nums"`
}

// Result snapshots the context.
func (c *Context) Result() Result {
	return Result{
		Log:  c.Lines(),
		Vars: c.Vars.Map(),
		Nums: c.Nums.Map(),
	}
}
