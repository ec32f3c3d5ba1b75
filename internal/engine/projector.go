package engine

import (
	"fmt"
	"time"
)

// Record is an event together with the time it was logged.
type Record struct {
	Event Event
	Time  time.Time
}

// Projector rebuilds a Context from a recorded event sequence.
type Projector struct{}

// NewProjector creates a standard projector.
func NewProjector() *Projector {
	return &Projector{}
}

// Build folds the records into a fresh context, keeping their timestamps.
func (p *Projector) Build(records []Record) (*Context, error) {
	ctx := NewContext()

	for i, rec := range records {
		if err := ctx.Apply(rec.Event, rec.Time); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.Event.Type(), err)
		}
	}

	return ctx, nil
}
