package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrNoMatch is returned by MapError when no rule accepted a line.
var ErrNoMatch = errors.New("no rule matches the line")

// Keywords are the words that open a rule, used for suggestions and completion.
var Keywords = []string{
	"code start", "bring", "var", "num", "set", "print", "get", "find",
	"make/new", "write/old", "recognize", "room", "end", "range", "cd.rd",
}

// keyword returns the leading word of a line, cut at the first separator.
func keyword(line string) string {
	line = strings.ToLower(strings.TrimSpace(line))
	if i := strings.IndexAny(line, " \t:=({[/<"); i >= 0 {
		return line[:i]
	}
	return line
}

// MapError explains why a line was not understood by g, naming the usage of
// the rule its first word points at.
func (g *Grammar) MapError(line string) error {
	word := keyword(line)
	if word == "" {
		return ErrNoMatch
	}

	for _, r := range g.rules {
		if ruleWord(r) == word {
			return fmt.Errorf("%w: %s must be: %s", ErrNoMatch, r.Kind, r.Usage)
		}
	}

	if s := Suggest(word); len(s) > 0 {
		return fmt.Errorf("%w: did you mean %s?", ErrNoMatch, strings.Join(s, " or "))
	}
	return ErrNoMatch
}

func ruleWord(r Rule) string {
	switch r.Kind {
	case KindStart:
		return "code"
	case KindDraw:
		return "cd.rd"
	case KindMake:
		return "make"
	case KindWrite:
		return "write"
	default:
		return keyword(r.Usage)
	}
}

// Suggest returns the keywords closest to word, best first.
func Suggest(word string) []string {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}

	var out []string
	ranks := fuzzy.RankFindFold(word, Keywords)
	sort.Sort(ranks)
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	if len(out) > 0 {
		return out
	}

	// typos: fall back to edit distance
	for _, k := range Keywords {
		if fuzzy.LevenshteinDistance(strings.ToLower(word), k) <= 2 {
			out = append(out, k)
		}
	}
	return out
}

// Complete returns the keywords that fuzzily match the prefix typed so far.
func Complete(prefix string) []string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return append([]string(nil), Keywords...)
	}
	ranks := fuzzy.RankFindNormalizedFold(prefix, Keywords)
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return out
}
