package state

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownNode      = errors.New("unknown node")
	ErrNegativeCost     = errors.New("negative link cost")
	ErrConvergenceLimit = errors.New("convergence limit exceeded")
	ErrSelfLoop         = errors.New("self-loop")
)

// UnknownNodeError is returned when an edge or query references a node that was never added.
type UnknownNodeError struct {
	Node NodeId
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node: %s", e.Node)
}

func (e *UnknownNodeError) Is(target error) bool {
	return target == ErrUnknownNode
}

// NegativeCostError is returned when a link is given a cost below zero.
type NegativeCostError struct {
	From, To NodeId
	Cost     int
}

func (e *NegativeCostError) Error() string {
	return fmt.Sprintf("negative link cost %d on %s <-> %s", e.Cost, e.From, e.To)
}

func (e *NegativeCostError) Is(target error) bool {
	return target == ErrNegativeCost
}

// ConvergenceLimitError reports that a round-based engine stopped at its round ceiling
// while tables were still changing. The tables remain valid best-effort results.
type ConvergenceLimitError struct {
	Engine string
	Rounds int
}

func (e *ConvergenceLimitError) Error() string {
	return fmt.Sprintf("%s: no fixed point after %d rounds", e.Engine, e.Rounds)
}

func (e *ConvergenceLimitError) Is(target error) bool {
	return target == ErrConvergenceLimit
}
