package core

import (
	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
)

// RoundEngine is a synchronous, round based routing model. A round visits every node once in a
// fixed order, and a node sees changes made earlier in the same round.
type RoundEngine interface {
	// Round runs a single round and returns the number of table changes it caused
	Round() int
	// Len returns the number of nodes
	Len() int
}

type Convergence struct {
	Engine    string
	Rounds    int // rounds executed, including the final quiet round
	Updates   int // node updates summed over all rounds
	Converged bool
}

// Err returns a *state.ConvergenceLimitError if the round ceiling was reached before a fixed point
func (c Convergence) Err() error {
	if c.Converged {
		return nil
	}
	return &state.ConvergenceLimitError{Engine: c.Engine, Rounds: c.Rounds}
}

// RunToConvergence repeats rounds until one produces no update, or maxRounds is reached.
// If maxRounds is not positive, the number of nodes is used.
func RunToConvergence(name string, e RoundEngine, maxRounds int, obs Observer) Convergence {
	obs = observerOrNop(obs)
	if maxRounds <= 0 {
		maxRounds = max(e.Len(), 1)
	}
	res := Convergence{Engine: name}
	for res.Rounds < maxRounds {
		updates := e.Round()
		res.Rounds++
		res.Updates += updates
		obs.Log(RoundComplete, "round complete", "engine", name, "round", res.Rounds, "updates", updates)
		if updates == 0 {
			res.Converged = true
			break
		}
	}
	perf.ConvergenceRounds.Add(float64(res.Rounds))
	if res.Converged {
		obs.Log(Converged, "fixed point reached", "engine", name, "rounds", res.Rounds, "updates", res.Updates)
	} else {
		obs.Log(ConvergenceLimit, "round ceiling reached before a fixed point", "engine", name, "rounds", res.Rounds)
	}
	return res
}
