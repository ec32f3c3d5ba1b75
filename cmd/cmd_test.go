package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
	"github.com/suderio/netdust/internal/rules"
	"github.com/suderio/netdust/internal/session"
)

func TestReplCoreHandle(t *testing.T) {
	core := newReplCore(session.Config{Seed: 1})

	out, quit := core.Handle(`var x {set "5"}`)
	assert.False(t, quit)
	require.Len(t, out, 1)
	assert.True(t, strings.HasSuffix(out[0], ` - var x = "5"`), out[0])

	out, _ = core.Handle("room A")
	assert.Len(t, out, 1)
	out, _ = core.Handle("room B")
	assert.Empty(t, out)

	out, _ = core.Handle("reset")
	assert.Equal(t, []string{"Session reset."}, out)

	out, _ = core.Handle("print(<x>)")
	require.Len(t, out, 1)
	assert.True(t, strings.HasSuffix(out[0], " - PRINT: <x>"), out[0])

	_, quit = core.Handle(" EXIT ")
	assert.True(t, quit)
}

func TestRunScanner(t *testing.T) {
	in := strings.NewReader("var a\nprint(<a>done)\nquit\nvar b\n")
	var out bytes.Buffer

	require.NoError(t, runScanner(in, &out, newReplCore(session.Config{})))
	assert.Contains(t, out.String(), "PRINT: done")
	assert.NotContains(t, out.String(), "var b")
}

func TestRunScannerLongLine(t *testing.T) {
	long := strings.Repeat("a", 100*1024)
	in := strings.NewReader("print(" + long + ")\nvar after\n")
	var out bytes.Buffer

	require.NoError(t, runScanner(in, &out, newReplCore(session.Config{})))
	assert.Contains(t, out.String(), "PRINT: "+long)
	assert.Contains(t, out.String(), "var after")
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)

	assert.Contains(t, out.String(), "netdust dev (none, built unknown)")
	assert.Contains(t, out.String(), "grammar full: 14 rules\n")
	assert.Contains(t, out.String(), "grammar legacy: 7 rules\n")
}

func TestPrintRules(t *testing.T) {
	var out bytes.Buffer
	printRules(&out, parser.Build())

	assert.Contains(t, out.String(), "cd.rd(<name> = <min>~<max>)")
	assert.Contains(t, out.String(), "14")

	out.Reset()
	printRules(&out, parser.BuildLegacy())
	assert.NotContains(t, out.String(), "cd.rd")
}

func TestCompletions(t *testing.T) {
	ctx := engine.NewContext()
	ctx.Vars.Set("name", "Ana")

	assert.Contains(t, completions("print(<na", ctx), "print(<name>")
	assert.Contains(t, completions("print(<user.r", ctx), "print(<user.role>")
	assert.Contains(t, completions("pri", ctx), "print")
	assert.Contains(t, completions("ex", ctx), "exit")
	assert.Empty(t, completions("print(x", ctx))
	assert.Empty(t, completions("", ctx))
}

func TestStateView(t *testing.T) {
	ctx := engine.NewContext()
	assert.Contains(t, stateView(ctx), "No variables declared.")

	require.NoError(t, ctx.Room.Enter("lobby"))
	ctx.Nums.Set("hp", 3)
	view := stateView(ctx)
	assert.Contains(t, view, "Room: lobby")
	assert.Contains(t, view, " - hp = 3")
}

func TestRunScripts(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "intro.rpp")
	require.NoError(t, os.WriteFile(script, []byte("num n {set 2}\ncd.rd(r = 3~3)\n"), 0644))
	journal := filepath.Join(dir, "journal.jsonl")

	viper.Set("format", "text")
	viper.Set("journal", journal)
	defer viper.Set("journal", "")

	var out bytes.Buffer
	err := runScripts(&out, []string{script}, []string{"nums.r == 3.0", "nums.n == 2.0"}, zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "RANDOM r = 3")
	assert.Contains(t, out.String(), "[nums]\nn = 2\nr = 3\n")

	replayed, err := session.Replay(journal)
	require.NoError(t, err)
	r, _ := replayed.Nums.Get("r")
	assert.Equal(t, 3.0, r)

	err = runScripts(&out, []string{script}, []string{"nums.r == 4.0"}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, rules.ErrExpectationFailed))

	err = runScripts(&out, []string{filepath.Join(dir, "missing.rpp")}, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestHasScriptExtension(t *testing.T) {
	assert.True(t, hasScriptExtension("a/b.RPP"))
	assert.True(t, hasScriptExtension("b.nd"))
	assert.False(t, hasScriptExtension("b.txt"))
}
