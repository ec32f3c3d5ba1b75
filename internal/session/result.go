package session

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suderio/netdust/internal/engine"
)

// Format selects how a run record is printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json and yaml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Render writes the run record of ctx to w.
func Render(w io.Writer, ctx *engine.Context, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ctx.Result()); err != nil {
			return fmt.Errorf("failed to encode result as json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ctx.Result()); err != nil {
			return fmt.Errorf("failed to encode result as yaml: %w", err)
		}
		return enc.Close()
	default:
		return renderText(w, ctx)
	}
}

// renderText prints the log, then [vars] and [nums] in declaration order.
func renderText(w io.Writer, ctx *engine.Context) error {
	var b strings.Builder
	for _, line := range ctx.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("\n[vars]\n")
	ctx.Vars.Each(func(name, v string) {
		fmt.Fprintf(&b, "%s = \"%s\"\n", name, v)
	})

	b.WriteString("\n[nums]\n")
	ctx.Nums.Each(func(name string, v float64) {
		fmt.Fprintf(&b, "%s = %s\n", name, engine.FormatNumber(v))
	})

	_, err := io.WriteString(w, b.String())
	return err
}
