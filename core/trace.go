package core

import (
	"github.com/dustin/go-broadcast"
	"github.com/encodeous/routesim/state"
)

type TraceEvent struct {
	Event RouterEvent
	Desc  string
	Args  []any
}

// Tracer forwards every event to the wrapped observer and broadcasts it to registered
// listeners. Delivery is best-effort, events are dropped once the buffer is full.
type Tracer struct {
	broadcast.Broadcaster
	next Observer
}

func NewTracer(next Observer) *Tracer {
	return &Tracer{
		Broadcaster: broadcast.NewBroadcaster(state.TraceBufferSize),
		next:        observerOrNop(next),
	}
}

func (t *Tracer) Log(event RouterEvent, desc string, args ...any) {
	t.next.Log(event, desc, args...)
	t.TrySubmit(TraceEvent{
		Event: event,
		Desc:  desc,
		Args:  args,
	})
}
