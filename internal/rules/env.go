package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/suderio/netdust/internal/engine"
)

// ErrExpectationFailed is returned by Check when an expectation is false.
var ErrExpectationFailed = errors.New("expectation failed")

// Registry manages the CEL environment and provides helper methods for evaluation.
type Registry struct {
	env *cel.Env
}

// NewRegistry initializes the CEL environment with the run record variables
// and the format helper.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("vars", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("nums", cel.MapType(cel.StringType, cel.DoubleType)),
		cel.Variable("log", cel.ListType(cel.StringType)),
		cel.Variable("messages", cel.ListType(cel.StringType)),
		cel.Variable("external", cel.MapType(cel.StringType, cel.StringType)),

		ext.Strings(),
		ext.Lists(),

		// format renders a number the way the run log does
		cel.Function("format",
			cel.Overload("format_double",
				[]*cel.Type{cel.DoubleType},
				cel.StringType,
				cel.UnaryBinding(func(arg ref.Val) ref.Val {
					return types.String(engine.FormatNumber(float64(arg.(types.Double))))
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(expression string, context map[string]any) (any, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	out, _, err := prog.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

// Check evaluates every expectation against the run record of ctx. It fails
// on the first expression that does not compile or evaluate, and otherwise
// reports all expectations that came out false.
func (r *Registry) Check(expressions []string, ctx *engine.Context) ([]Outcome, error) {
	activation := Activation(ctx)
	outcomes := make([]Outcome, 0, len(expressions))

	var failed []string
	for _, expr := range expressions {
		out, err := r.Eval(expr, activation)
		if err != nil {
			return outcomes, fmt.Errorf("expectation %q: %w", expr, err)
		}
		passed, ok := out.(bool)
		if !ok {
			return outcomes, fmt.Errorf("expectation %q: result is %T, not bool", expr, out)
		}

		outcomes = append(outcomes, Outcome{Expression: expr, Passed: passed})
		if !passed {
			failed = append(failed, expr)
		}
	}

	if len(failed) > 0 {
		return outcomes, fmt.Errorf("%w: %s", ErrExpectationFailed, strings.Join(failed, "; "))
	}
	return outcomes, nil
}
