package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suderio/netdust/internal/parser"
)

func TestMapErrorNamesUsage(t *testing.T) {
	g := parser.Build()

	err := g.MapError("print hello")
	assert.True(t, errors.Is(err, parser.ErrNoMatch))
	assert.Contains(t, err.Error(), "print[.<mode>](<payload>)")

	err = g.MapError("cd.rd(n = 1 ~ 6)")
	assert.Contains(t, err.Error(), "cd.rd(<name> = <min>~<max>)")
}

func TestMapErrorSuggests(t *testing.T) {
	err := parser.Build().MapError("prnt(x)")
	assert.True(t, errors.Is(err, parser.ErrNoMatch))
	assert.Contains(t, err.Error(), "did you mean print")

	assert.Equal(t, parser.ErrNoMatch, parser.Build().MapError("   "))
}

func TestMapErrorLegacyOnlyKnowsItsRules(t *testing.T) {
	err := parser.BuildLegacy().MapError("set x = 1")
	assert.NotContains(t, err.Error(), "must be")
}

func TestSuggest(t *testing.T) {
	assert.Contains(t, parser.Suggest("prnt"), "print")
	assert.Contains(t, parser.Suggest("rnage"), "range")
	assert.Empty(t, parser.Suggest(""))
}

func TestComplete(t *testing.T) {
	assert.Equal(t, parser.Keywords, parser.Complete(""))
	assert.Contains(t, parser.Complete("rec"), "recognize")
	assert.NotContains(t, parser.Complete("rec"), "var")
}
