package session

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

func fixedClock() time.Time {
	return time.Date(2026, 5, 6, 14, 15, 16, 0, time.UTC)
}

func run(t *testing.T, script string) *engine.Context {
	t.Helper()
	ctx, err := New(Config{Seed: 7, Clock: fixedClock}).Execute(script)
	require.NoError(t, err)
	return ctx
}

func TestExecuteLogsEveryLineInOrder(t *testing.T) {
	script := strings.Join([]string{
		"code start",
		"# a comment",
		"   // another one",
		"",
		"   ",
		"var x",
		"num y {set abc}",
		"set z = 7",
		"zzz",
	}, "\n")

	ctx := run(t, script)

	assert.Equal(t, []string{
		"code starts here!",
		`var x = ""`,
		"num y = 0",
		"set (fallback) z = 7",
		"Unknown or unhandled line: zzz",
	}, ctx.Messages())

	x, ok := ctx.Vars.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "", x)
	y, _ := ctx.Nums.Get("y")
	assert.Equal(t, 0.0, y)
	z, _ := ctx.Vars.Get("z")
	assert.Equal(t, "7", z)
}

func TestExecuteTimestampsLogLines(t *testing.T) {
	ctx := run(t, "var x {set \"5\"}\nprint(\"val: <x>\")")

	assert.Equal(t, []string{
		`14:15:16 - var x = "5"`,
		"14:15:16 - PRINT: val: 5",
	}, ctx.Lines())
}

func TestExecuteRooms(t *testing.T) {
	ctx := run(t, "room A {p}\nprint(inside)\nend\nend")

	assert.Equal(t, []string{
		"ROOM enter A (vars: p)",
		"PRINT: inside",
		"ROOM A closed",
	}, ctx.Messages())
	assert.False(t, ctx.Room.Inside())
}

func TestExecuteDraws(t *testing.T) {
	ctx := run(t, "cd.rd(n = 3~3)")
	n, ok := ctx.Nums.Get("n")
	require.True(t, ok)
	assert.Equal(t, 3.0, n)

	ctx = run(t, "cd.rd(n = 5~1)")
	assert.False(t, ctx.Nums.Has("n"))
	require.Len(t, ctx.Messages(), 1)
	assert.True(t, strings.HasPrefix(ctx.Messages()[0], "Error executing 'cd.rd(n = 5~1)': "))
}

func TestExecuteSplitsAllLineEndings(t *testing.T) {
	ctx := run(t, "var a\r\nvar b\rvar c\n")
	assert.Equal(t, []string{"a", "b", "c"}, ctx.Vars.Keys())
}

func TestExecuteIsDeterministicWithSeed(t *testing.T) {
	script := "num n\ncd.rd(n = 1~100)\ncd.rd(m = 1~100)\nset n = 4\nprint(<n> <m>)"

	first := run(t, script).Result()
	second := run(t, script).Result()
	assert.Equal(t, first, second)
}

func TestInterpreterStartsEveryRunFresh(t *testing.T) {
	in := New(Config{Clock: fixedClock})

	ctx, err := in.Execute("var kept {set \"1\"}\nroom A")
	require.NoError(t, err)
	assert.True(t, ctx.Room.Inside())

	ctx, err = in.Execute("end\nprint(<kept>)")
	require.NoError(t, err)
	assert.Equal(t, []string{"PRINT: <kept>"}, ctx.Messages())
	assert.Equal(t, 0, ctx.Vars.Len())
}

func TestInterpreterConcurrentRuns(t *testing.T) {
	in := New(Config{Seed: 3, Clock: fixedClock})
	script := "var a {set \"x\"}\ncd.rd(r = 1~6)\nroom R\nprint(<a><r>)\nend"

	want, err := in.Execute(script)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]engine.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, _ := in.Execute(script)
			results[i] = ctx.Result()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want.Result(), r)
	}
}

func TestSessionMatchesFullRun(t *testing.T) {
	script := "var x {set \"5\"}\nroom A\nprint(<x>)\nend\nbogus"

	s := NewSession(Config{Seed: 9, Clock: fixedClock})
	for _, line := range SplitLines(script) {
		_, err := s.Execute(line)
		require.NoError(t, err)
	}

	assert.Equal(t, run(t, script).Result(), s.Context().Result())
}

func TestSessionReturnsEvents(t *testing.T) {
	s := NewSession(Config{})

	events, err := s.Execute("  get = nf <uid>  ")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, engine.EventGetResolved, events[0].Type())
	assert.Equal(t, engine.EventGetArgument, events[1].Type())

	events, err = s.Execute("// nothing")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLegacyGrammar(t *testing.T) {
	ctx, err := New(Config{Grammar: parser.BuildLegacy()}).Execute("var x\nset z = 7\nprint(<x>done)")
	require.NoError(t, err)

	assert.Equal(t, []string{
		`var x = ""`,
		"Unknown or unhandled line: set z = 7",
		"PRINT: done",
	}, ctx.Messages())
}

func TestPackageExecute(t *testing.T) {
	res := Execute("var greeting {set \"hi\"}\nnum n {set 2}").Result()

	assert.Equal(t, map[string]string{"greeting": "hi"}, res.Vars)
	assert.Equal(t, map[string]float64{"n": 2}, res.Nums)
	assert.Len(t, res.Log, 2)
}

type failingJournal struct {
	calls int
}

var errDiskFull = errors.New("disk full")

func (j *failingJournal) Append(engine.Event, time.Time) error {
	j.calls++
	return errDiskFull
}

func TestJournalFailureKeepsRunRecord(t *testing.T) {
	j := &failingJournal{}

	ctx, err := New(Config{Journal: j}).Execute("var a\nvar b\nvar c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDiskFull))
	assert.Equal(t, 1, j.calls)
	assert.Len(t, ctx.Messages(), 3)
}
