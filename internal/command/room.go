package command

import (
	"github.com/suderio/netdust/internal/engine"
	"github.com/suderio/netdust/internal/parser"
)

// ExecuteRoom opens a room when none is open. Rooms do not nest, so a room
// line inside a room is dropped, as is a malformed header.
func ExecuteRoom(c *parser.RoomCmd, ctx *engine.Context) ([]engine.Event, error) {
	if ctx.Room.Inside() || !c.Valid {
		return nil, nil
	}
	return single(&engine.RoomEnteredEvent{Name: c.Name, Params: c.Params})
}

// ExecuteEnd closes the open room. Outside a room it does nothing.
func ExecuteEnd(ctx *engine.Context) ([]engine.Event, error) {
	name, ok := ctx.Room.Current()
	if !ok {
		return nil, nil
	}
	return single(&engine.RoomClosedEvent{Name: name})
}
