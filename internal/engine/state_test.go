package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 8, 9, 10, 0, time.UTC)
}

func TestTableIgnoresCase(t *testing.T) {
	tbl := NewTable[string]()
	tbl.Set("Name", "a")
	tbl.Set("NAME", "b")
	tbl.Set("other", "c")

	v, ok := tbl.Get("name")
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, []string{"Name", "other"}, tbl.Keys())
	assert.Equal(t, map[string]string{"Name": "b", "other": "c"}, tbl.Map())
	assert.False(t, tbl.Has("missing"))
}

func TestNewContextExternalInfo(t *testing.T) {
	ctx := NewContext()

	v, ok := ctx.External("USER.NAME")
	require.True(t, ok)
	assert.Equal(t, "newtem", v)
	assert.Equal(t, map[string]string{"user.name": "newtem", "user.id": "2", "user.role": "dev"}, ctx.ExternalInfo())
	assert.Equal(t, 0, ctx.Slots.Len())
	assert.False(t, ctx.Room.Inside())
}

func TestContextLogFormat(t *testing.T) {
	ctx := NewContextWithClock(fixedClock)
	ctx.AddLog("hello")

	assert.Equal(t, []string{"08:09:10 - hello"}, ctx.Lines())
	assert.Equal(t, []string{"hello"}, ctx.Messages())

	res := ctx.Result()
	assert.Equal(t, []string{"08:09:10 - hello"}, res.Log)
	assert.Empty(t, res.Vars)
	assert.Empty(t, res.Nums)
}

func TestInterpolate(t *testing.T) {
	ctx := NewContext()
	ctx.Vars.Set("x", "5")
	ctx.Vars.Set("name", "Ana")
	ctx.Nums.Set("hp", 12.5)
	ctx.Nums.Set("x", 99)

	cases := []struct {
		in   string
		want string
	}{
		{`"val: <x>"`, `"val: 5"`},
		{`val: <x>`, `val: 5`},
		{`< x >`, `5`},
		{`<user.name>`, `newtem`},
		{`<hp> left`, `12.5 left`},
		{`<missing>`, `<missing>`},
		{`"hi "name`, `hi Ana`},
		{`"hi " name`, `hi Ana`},
		{`"id="user.id`, `id=2`},
		{`"n="nobody`, `n=<nobody>`},
		{`plain text`, `plain text`},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ctx.Interpolate(tc.in))
		})
	}
}

func TestInterpolateSecondPassSeesFirstPassOutput(t *testing.T) {
	ctx := NewContext()
	ctx.Vars.Set("q", `"a"`)
	ctx.Vars.Set("b", "B")

	// Pass 1 turns <q>b into "a"b, which pass 2 then expands.
	assert.Equal(t, "aB", ctx.Interpolate("<q>b"))
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		3:       "3",
		-2.5:    "-2.5",
		0.1:     "0.1",
		0.0001:  "0.0001",
		0.00001: "1E-05",
		1e15:    "1E+15",
		1.5e20:  "1.5E+20",
		123456:  "123456",
	}

	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%v)", in)
	}
}

func TestScopeTransitions(t *testing.T) {
	var s Scope

	_, err := s.Close()
	assert.Error(t, err)

	require.NoError(t, s.Enter("A"))
	assert.Error(t, s.Enter("B"))

	name, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "A", name)

	closed, err := s.Close()
	require.NoError(t, err)
	assert.Equal(t, "A", closed)
	assert.False(t, s.Inside())

	require.NoError(t, s.Enter("C"))
	name, ok = s.Current()
	assert.True(t, ok)
	assert.Equal(t, "C", name)
}
