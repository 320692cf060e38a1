package core

import (
	"fmt"
	"log/slog"
)

type RouterEvent int

// trace events

const (
	RouteAdded RouterEvent = iota
	RouteImproved
	LoopRejected
	RoundComplete
	Converged
)

// warn events

const (
	ConvergenceLimit RouterEvent = iota + 1000
	UnknownNeighbour
)

func (e RouterEvent) String() string {
	switch e {
	case RouteAdded:
		return "RouteAdded"
	case RouteImproved:
		return "RouteImproved"
	case LoopRejected:
		return "LoopRejected"
	case RoundComplete:
		return "RoundComplete"
	case Converged:
		return "Converged"
	case ConvergenceLimit:
		return "ConvergenceLimit"
	case UnknownNeighbour:
		return "UnknownNeighbour"
	}
	return fmt.Sprintf("RouterEvent(%d)", int(e))
}

// IsWarning reports whether the event signals an abnormal condition
func (e RouterEvent) IsWarning() bool {
	return e >= ConvergenceLimit
}

// Observer receives the events produced while routing tables are computed
type Observer interface {
	Log(event RouterEvent, desc string, args ...any)
}

// SlogObserver writes warnings at warn level and everything else at debug level
type SlogObserver struct {
	Logger *slog.Logger
}

func (o SlogObserver) Log(event RouterEvent, desc string, args ...any) {
	if o.Logger == nil {
		return
	}
	msg := fmt.Sprintf("%s %s", event.String(), desc)
	if event.IsWarning() {
		o.Logger.Warn(msg, args...)
	} else {
		o.Logger.Debug(msg, args...)
	}
}

type NopObserver struct{}

func (NopObserver) Log(RouterEvent, string, ...any) {}

func observerOrNop(obs Observer) Observer {
	if obs == nil {
		return NopObserver{}
	}
	return obs
}
