package command

import (
	"fmt"

	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

// Execute turns a classified line into the events that carry out its effect.
// Handlers only read ctx; the caller applies the returned events in order.
// A command that is consumed silently returns no events and no error.
func Execute(cmd parser.Command, ctx *engine.Context, roller *engine.Roller) ([]engine.Event, error) {
	switch c := cmd.(type) {
	case *parser.StartCmd:
		return single(&engine.StartedEvent{})
	case *parser.BringCmd:
		return single(&engine.LibraryBroughtEvent{Library: c.Library})
	case *parser.VarCmd:
		return ExecuteVar(c)
	case *parser.NumCmd:
		return ExecuteNum(c)
	case *parser.SetCmd:
		return ExecuteSet(c, ctx)
	case *parser.PrintCmd:
		return ExecutePrint(c, ctx)
	case *parser.GetCmd:
		return ExecuteGet(c, ctx)
	case *parser.FindCmd:
		return single(&engine.FoundEvent{Target: c.Target, Query: c.Query})
	case *parser.MakeCmd:
		return single(&engine.MadeEvent{Kind: c.Type, Props: c.Props, Value: c.Value})
	case *parser.WriteCmd:
		return ExecuteWrite(c, ctx)
	case *parser.RecognizeCmd:
		return single(&engine.RecognizedEvent{Path: c.Path})
	case *parser.RoomCmd:
		return ExecuteRoom(c, ctx)
	case *parser.EndCmd:
		return ExecuteEnd(ctx)
	case *parser.RangeCmd:
		return single(&engine.RangeDeclaredEvent{Var: c.Var, Min: c.Min, Max: c.Max})
	case *parser.DrawCmd:
		return ExecuteDraw(c, roller)
	default:
		return nil, fmt.Errorf("no handler for %T", cmd)
	}
}

func single(evt engine.Event) ([]engine.Event, error) {
	return []engine.Event{evt}, nil
}
