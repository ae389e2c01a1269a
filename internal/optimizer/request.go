// Package optimizer orchestrates one /optimize request end to end: task
// synthesis, per-vehicle-class routing, and bid assembly.
package optimizer

import (
	"context"
	"time"

	"github.com/coldchain/dispatch-optimizer/internal/metrics"
	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/stops"
	"github.com/coldchain/dispatch-optimizer/internal/synth"
	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
	"github.com/coldchain/dispatch-optimizer/internal/vrpsolve"
	"github.com/coldchain/dispatch-optimizer/pkg/logger"
)

// Request is the full payload of a single optimize call.
type Request struct {
	DispatchRequests      []model.DispatchRequest
	ReplenishmentRequests []model.ReplenishmentRequest
	Facilities            []model.Facility
	Products              []model.Product
	Vehicles              []model.Vehicle
}

// vehicleClass pairs a shipment's vehicle type with the refrigeration flag
// it requires and the shipment-type label its bids carry.
type vehicleClass struct {
	vehicleType  model.VehicleType
	refrigerated bool
	shipmentType string
}

var classes = []vehicleClass{
	{vehicleType: model.VehicleColdChain, refrigerated: true, shipmentType: "VRP_OPTIMIZED_COLD_CHAIN"},
	{vehicleType: model.VehicleRawMaterialTruck, refrigerated: false, shipmentType: "VRP_OPTIMIZED_RAW_MATERIAL_TRUCK"},
}

// Optimizer wires the task synthesizer and the VRP solver together.
type Optimizer struct {
	synthesizer *synth.Synthesizer
	solver      vrpsolve.Solver
	log         *logger.Logger
}

// New builds an Optimizer. solver may be nil, in which case one MIPSolver
// bound to vrpsolve.DefaultBudget is created here and used for every request.
func New(synthesizer *synth.Synthesizer, solver vrpsolve.Solver, log *logger.Logger) *Optimizer {
	if log == nil {
		log = logger.NewNoop()
	}
	if solver == nil {
		solver = vrpsolve.NewMIPSolver()
	}
	return &Optimizer{synthesizer: synthesizer, solver: solver, log: log}
}

// Run executes the full pipeline and returns the concatenated bid list.
// Null/omitted request lists are treated as empty. An empty synthesized
// task set yields an empty bid list, never an error.
func (o *Optimizer) Run(ctx context.Context, req Request) ([]model.Bid, error) {
	start := time.Now()
	defer func() { metrics.OptimizeDuration.Observe(time.Since(start).Seconds()) }()

	catalog := make(map[string]model.Product, len(req.Products))
	for _, p := range req.Products {
		catalog[p.SKU] = p
	}

	facilitiesByID := make(map[string]model.Facility, len(req.Facilities))
	for _, f := range req.Facilities {
		facilitiesByID[f.FacilityID] = f
	}

	tasks := o.synthesizer.Synthesize(ctx, req.DispatchRequests, req.ReplenishmentRequests, req.Facilities, catalog)
	if len(tasks) == 0 {
		return []model.Bid{}, nil
	}

	var bids []model.Bid
	for _, class := range classes {
		classTasks := tasksOfType(tasks, class.vehicleType)
		if len(classTasks) == 0 {
			continue
		}
		classVehicles := vehiclesMatching(req.Vehicles, class.refrigerated)
		if len(classVehicles) == 0 {
			o.log.Warn("no vehicles available for class", "vehicleType", class.vehicleType)
			continue
		}

		classModel := vrpmodel.Build(classTasks, classVehicles, facilitiesByID)
		solution, err := o.solver.Solve(ctx, classModel)
		if err != nil {
			metrics.SolverInfeasibleTotal.WithLabelValues(string(class.vehicleType)).Inc()
			o.log.Warn("solver returned no solution for class", "vehicleType", class.vehicleType, "error", err)
			continue
		}

		classBids := stops.Aggregate(classModel, solution, class.shipmentType)
		metrics.OptimizeBidsTotal.WithLabelValues(class.shipmentType).Add(float64(len(classBids)))
		bids = append(bids, classBids...)
	}

	if bids == nil {
		bids = []model.Bid{}
	}
	return bids, nil
}

func tasksOfType(tasks []model.TransportTask, vt model.VehicleType) []model.TransportTask {
	var out []model.TransportTask
	for _, t := range tasks {
		if t.VehicleType == vt {
			out = append(out, t)
		}
	}
	return out
}

func vehiclesMatching(vehicles []model.Vehicle, refrigerated bool) []model.Vehicle {
	var out []model.Vehicle
	for _, v := range vehicles {
		if v.Specs.Refrigerated == refrigerated {
			out = append(out, v)
		}
	}
	return out
}
