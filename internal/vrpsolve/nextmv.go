package vrpsolve

import (
	"context"
	"time"

	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
	"github.com/nextmv-io/sdk/mip"
)

// MIPSolver formulates the capacitated pickup-and-delivery problem as a
// mixed-integer program and solves it with the HiGHS backend.
type MIPSolver struct {
	Budget time.Duration
}

// NewMIPSolver returns a solver bounded by DefaultBudget.
func NewMIPSolver() *MIPSolver {
	return &MIPSolver{Budget: DefaultBudget}
}

type arcKey struct{ v, i, j int }
type nodeKey struct{ v, i int }
type taskKey struct{ v, t int }

// Solve builds and solves the MIP for one vehicle class. Returns
// ErrInfeasible (never a wrapped error) when no solution is found within the
// budget, matching the "zero bids for that class" behavior upstream expects.
func (s *MIPSolver) Solve(ctx context.Context, m *vrpmodel.Model) (*Solution, error) {
	nNodes := len(m.Locations)
	nVehicles := len(m.Vehicles)
	nTasks := len(m.PickupsDeliveries)

	if nVehicles == 0 || nTasks == 0 {
		return &Solution{Routes: make([][]int, nVehicles)}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := mip.NewModel()
	model.Objective().SetMinimize()

	assign := make(map[taskKey]mip.Bool, nVehicles*nTasks)
	for v := 0; v < nVehicles; v++ {
		for t := 0; t < nTasks; t++ {
			assign[taskKey{v, t}] = model.NewBool()
		}
	}

	// Every task is carried by exactly one vehicle of this class.
	for t := 0; t < nTasks; t++ {
		c := model.NewConstraint(mip.Equal, 1)
		for v := 0; v < nVehicles; v++ {
			c.NewTerm(1, assign[taskKey{v, t}])
		}
	}

	visit := make(map[nodeKey]mip.Bool, nVehicles*nNodes)
	for v := 0; v < nVehicles; v++ {
		visit[nodeKey{v, depotNode}] = model.NewBool()
		for i := 1; i < nNodes; i++ {
			visit[nodeKey{v, i}] = model.NewBool()
		}
	}

	tasksAtNode := make(map[int][]int) // node -> task indices touching it
	for t, pd := range m.PickupsDeliveries {
		tasksAtNode[pd[0]] = append(tasksAtNode[pd[0]], t)
		tasksAtNode[pd[1]] = append(tasksAtNode[pd[1]], t)
	}

	// visit[v][i] is the OR of assign[v][t] over tasks touching node i.
	for v := 0; v < nVehicles; v++ {
		for i := 1; i < nNodes; i++ {
			touching := tasksAtNode[i]
			upper := model.NewConstraint(mip.LessThanOrEqual, 0)
			upper.NewTerm(1, visit[nodeKey{v, i}])
			for _, t := range touching {
				upper.NewTerm(-1, assign[taskKey{v, t}])

				lower := model.NewConstraint(mip.GreaterThanOrEqual, 0)
				lower.NewTerm(1, visit[nodeKey{v, i}])
				lower.NewTerm(-1, assign[taskKey{v, t}])
			}
		}
	}

	// Vehicle is "used" (depot visited) whenever it visits any node.
	for v := 0; v < nVehicles; v++ {
		for i := 1; i < nNodes; i++ {
			c := model.NewConstraint(mip.GreaterThanOrEqual, 0)
			c.NewTerm(1, visit[nodeKey{v, depotNode}])
			c.NewTerm(-1, visit[nodeKey{v, i}])
		}
	}

	x := make(map[arcKey]mip.Bool)
	for v := 0; v < nVehicles; v++ {
		for i := 0; i < nNodes; i++ {
			for j := 0; j < nNodes; j++ {
				if i == j {
					continue
				}
				x[arcKey{v, i, j}] = model.NewBool()
				model.Objective().NewTerm(float64(m.DistanceMatrix[i][j]), x[arcKey{v, i, j}])
			}
		}
	}

	// Flow conservation: in-degree and out-degree of a visited node are 1.
	for v := 0; v < nVehicles; v++ {
		for i := 0; i < nNodes; i++ {
			out := model.NewConstraint(mip.Equal, 0)
			out.NewTerm(-1, visit[nodeKey{v, i}])
			in := model.NewConstraint(mip.Equal, 0)
			in.NewTerm(-1, visit[nodeKey{v, i}])
			for j := 0; j < nNodes; j++ {
				if j == i {
					continue
				}
				out.NewTerm(1, x[arcKey{v, i, j}])
				in.NewTerm(1, x[arcKey{v, j, i}])
			}
		}
	}

	// Position variables order each vehicle's route and eliminate subtours.
	bigM := float64(nNodes + 1)
	pos := make(map[nodeKey]mip.Float, nVehicles*nNodes)
	for v := 0; v < nVehicles; v++ {
		pos[nodeKey{v, depotNode}] = model.NewFloat(0, 0)
		for i := 1; i < nNodes; i++ {
			pos[nodeKey{v, i}] = model.NewFloat(0, float64(nNodes))
		}
	}
	for v := 0; v < nVehicles; v++ {
		for i := 0; i < nNodes; i++ {
			for j := 1; j < nNodes; j++ {
				if i == j {
					continue
				}
				c := model.NewConstraint(mip.GreaterThanOrEqual, 1-bigM)
				c.NewTerm(1, pos[nodeKey{v, j}])
				c.NewTerm(-1, pos[nodeKey{v, i}])
				c.NewTerm(-bigM, x[arcKey{v, i, j}])
			}
		}
	}

	// Pickup precedes delivery on the vehicle it's assigned to.
	for v := 0; v < nVehicles; v++ {
		for t, pd := range m.PickupsDeliveries {
			pickup, delivery := pd[0], pd[1]
			c := model.NewConstraint(mip.GreaterThanOrEqual, 1-bigM)
			c.NewTerm(1, pos[nodeKey{v, delivery}])
			c.NewTerm(-1, pos[nodeKey{v, pickup}])
			c.NewTerm(-bigM, assign[taskKey{v, t}])
		}
	}

	// Cumulative load dimension: one unit of capacity per task's demandKg,
	// added at pickup and removed at delivery.
	totalDemand := 0
	for _, d := range m.Demands {
		if d > 0 {
			totalDemand += d
		}
	}
	maxCap := 0
	for _, c := range m.VehicleCapacities {
		if c > maxCap {
			maxCap = c
		}
	}
	bigMLoad := float64(totalDemand + maxCap + 1)

	load := make(map[nodeKey]mip.Float, nVehicles*nNodes)
	for v := 0; v < nVehicles; v++ {
		cap := 0
		if v < len(m.VehicleCapacities) {
			cap = m.VehicleCapacities[v]
		}
		load[nodeKey{v, depotNode}] = model.NewFloat(0, 0)
		for i := 1; i < nNodes; i++ {
			load[nodeKey{v, i}] = model.NewFloat(0, float64(cap))
		}
	}

	for v := 0; v < nVehicles; v++ {
		for i := 0; i < nNodes; i++ {
			for j := 1; j < nNodes; j++ {
				if i == j {
					continue
				}
				upper := model.NewConstraint(mip.LessThanOrEqual, bigMLoad)
				upper.NewTerm(1, load[nodeKey{v, j}])
				upper.NewTerm(-1, load[nodeKey{v, i}])
				upper.NewTerm(bigMLoad, x[arcKey{v, i, j}])

				lower := model.NewConstraint(mip.GreaterThanOrEqual, -bigMLoad)
				lower.NewTerm(1, load[nodeKey{v, j}])
				lower.NewTerm(-1, load[nodeKey{v, i}])
				lower.NewTerm(-bigMLoad, x[arcKey{v, i, j}])

				for t, pd := range m.PickupsDeliveries {
					demand := float64(m.Demands[t])
					if pd[0] == j {
						upper.NewTerm(-demand, assign[taskKey{v, t}])
						lower.NewTerm(-demand, assign[taskKey{v, t}])
					}
					if pd[1] == j {
						upper.NewTerm(demand, assign[taskKey{v, t}])
						lower.NewTerm(demand, assign[taskKey{v, t}])
					}
				}
			}
		}
	}

	solver, err := mip.NewSolver("highs", model)
	if err != nil {
		return nil, err
	}

	budget := s.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	opts := mip.SolveOptions{}
	opts.Duration = budget
	opts.MIP.Gap.Relative = 0.02

	solution, err := solver.Solve(opts)
	if err != nil {
		return nil, err
	}
	if !solution.HasValues() {
		return nil, ErrInfeasible
	}

	routes := make([][]int, nVehicles)
	for v := 0; v < nVehicles; v++ {
		routes[v] = extractRoute(solution, v, nNodes, x)
	}

	return &Solution{Routes: routes}, nil
}

const depotNode = 0

// extractRoute walks the arc variables for vehicle v starting at the depot
// and returns the visited non-depot nodes in order.
func extractRoute(solution mip.Solution, v, nNodes int, x map[arcKey]mip.Bool) []int {
	var route []int
	current := depotNode
	visited := make(map[int]bool)
	for step := 0; step < nNodes; step++ {
		next := -1
		for j := 0; j < nNodes; j++ {
			if j == current {
				continue
			}
			xv, ok := x[arcKey{v, current, j}]
			if !ok {
				continue
			}
			if solution.Value(xv) > 0.5 {
				next = j
				break
			}
		}
		if next == -1 || next == depotNode || visited[next] {
			break
		}
		route = append(route, next)
		visited[next] = true
		current = next
	}
	return route
}
