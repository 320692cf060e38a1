package core

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/encodeous/routesim/state"
	"github.com/google/go-cmp/cmp"
)

type HarnessEvent struct {
	Event   RouterEvent
	Message string
	Args    []any
}

// RouterHarness is an Observer that records every event
type RouterHarness struct {
	events []HarnessEvent
}

func (h *RouterHarness) Log(event RouterEvent, desc string, args ...any) {
	h.events = append(h.events, HarnessEvent{Event: event, Message: desc, Args: args})
}

type HarnessEvents []HarnessEvent

func (h HarnessEvents) String() string {
	out := make([]string, 0)
	for _, e := range h {
		cur := e.Event.String()
		for _, arg := range e.Args {
			cur += " " + fmt.Sprint(arg)
		}
		out = append(out, cur)
	}
	slices.Sort(out)
	return strings.Join(out, "\n")
}

// GetEvents returns the recorded events of the given kinds, or all of them, and clears the log
func (h *RouterHarness) GetEvents(kinds ...RouterEvent) HarnessEvents {
	x := make([]HarnessEvent, 0)
	for _, e := range h.events {
		if len(kinds) == 0 || slices.Contains(kinds, e.Event) {
			x = append(x, e)
		}
	}
	h.events = nil
	return x
}

func (e HarnessEvents) contains(event RouterEvent, args ...any) bool {
	for _, ev := range e {
		if ev.Event != event || len(ev.Args) < len(args) {
			continue
		}
		match := true
		for i, arg := range args {
			if !cmp.Equal(ev.Args[i], arg) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (e HarnessEvents) AssertContains(t *testing.T, event RouterEvent, args ...any) {
	t.Helper()
	if e.contains(event, args...) {
		return
	}
	t.Fatal("Expected event not found: ", event, " with args: ", args, " in ", e)
}

func (e HarnessEvents) AssertNotContains(t *testing.T, event RouterEvent, args ...any) {
	t.Helper()
	if e.contains(event, args...) {
		t.Fatal("Unexpected event found: ", event, " with args: ", args, " in ", e)
	}
}

func MustTopology(t *testing.T, edges ...state.Triple[state.NodeId, state.NodeId, int]) *state.Topology {
	t.Helper()
	topo, err := state.FromEdges(edges)
	if err != nil {
		t.Fatal(err)
	}
	return topo
}

func Edge(a, b state.NodeId, cost int) state.Triple[state.NodeId, state.NodeId, int] {
	return state.Triple[state.NodeId, state.NodeId, int]{V1: a, V2: b, V3: cost}
}

func Link(a, b state.NodeId) state.Triple[state.NodeId, state.NodeId, int] {
	return Edge(a, b, 1)
}

func Rt(dest, nh state.NodeId, metric uint32) state.Route {
	return state.Route{Dest: dest, Nh: nh, Metric: metric}
}
