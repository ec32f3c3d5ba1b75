package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// callLexer tokenises the call-form rules, range(...) and cd.rd(...).
// Whitespace is kept as a token so the grammar decides where it may appear.
var callLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(?:range|cd\.rd)\b`},
	{Name: "Name", Pattern: `[0-9]*[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[(),=>~]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

func buildCall[T any]() *participle.Parser[T] {
	return participle.MustBuild[T](
		participle.Lexer(callLexer),
	)
}

var (
	rangeParser = buildCall[rangeCall]()
	drawParser  = buildCall[drawCall]()
)
