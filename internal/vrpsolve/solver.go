// Package vrpsolve drives a capacitated pickup-and-delivery VRP solve over
// a vrpmodel.Model and extracts per-vehicle routes.
package vrpsolve

import (
	"context"
	"errors"
	"time"

	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
)

// ErrInfeasible is returned when the solver finds no feasible solution for
// the class. Callers treat this as non-fatal: emit zero bids for that class
// and continue with the other class.
var ErrInfeasible = errors.New("vrp: no feasible solution")

// DefaultBudget is the bounded wall-clock budget a solve call honors by
// default.
const DefaultBudget = 10 * time.Second

// Solution is the extracted result of a solve: one node-visit sequence per
// vehicle, excluding the depot, in visit order.
type Solution struct {
	Routes [][]int // Routes[v] = ordered non-depot node indices visited by vehicle v
}

// Solver is implemented by the nextmv-backed adapter; an interface exists so
// the stop aggregator and orchestration layer can be tested against a fake
// that returns fixed routes.
type Solver interface {
	Solve(ctx context.Context, m *vrpmodel.Model) (*Solution, error)
}
