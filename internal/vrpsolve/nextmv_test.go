package vrpsolve_test

import (
	"context"
	"testing"

	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
	"github.com/coldchain/dispatch-optimizer/internal/vrpsolve"
	"github.com/stretchr/testify/require"
)

func TestMIPSolver_Solve_SingleTaskSingleVehicle(t *testing.T) {
	facilities := map[string]model.Facility{
		"P1": {FacilityID: "P1", Address: model.Address{Latitude: 1, Longitude: 1}},
		"R1": {FacilityID: "R1", Address: model.Address{Latitude: 1, Longitude: 2}},
	}
	tasks := []model.TransportTask{
		{From: "P1", To: "R1", DemandKg: 10},
	}
	vehicles := []model.Vehicle{
		{VehicleID: "V1", Specs: model.VehicleSpecs{PayloadTonnes: 5}},
	}

	m := vrpmodel.Build(tasks, vehicles, facilities)

	solver := vrpsolve.NewMIPSolver()
	solution, err := solver.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, solution.Routes, 1)
	require.Equal(t, []int{1, 2}, solution.Routes[0])
}

func TestMIPSolver_Solve_NoVehiclesYieldsEmptyRoutes(t *testing.T) {
	facilities := map[string]model.Facility{
		"P1": {FacilityID: "P1"},
		"R1": {FacilityID: "R1"},
	}
	tasks := []model.TransportTask{{From: "P1", To: "R1", DemandKg: 10}}
	m := vrpmodel.Build(tasks, nil, facilities)

	solver := vrpsolve.NewMIPSolver()
	solution, err := solver.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Empty(t, solution.Routes)
}

func TestMIPSolver_Solve_InsufficientCapacityIsInfeasible(t *testing.T) {
	facilities := map[string]model.Facility{
		"P1": {FacilityID: "P1"},
		"R1": {FacilityID: "R1"},
	}
	tasks := []model.TransportTask{
		{From: "P1", To: "R1", DemandKg: 10000},
	}
	vehicles := []model.Vehicle{
		{VehicleID: "V1", Specs: model.VehicleSpecs{PayloadTonnes: 1}},
	}
	m := vrpmodel.Build(tasks, vehicles, facilities)

	solver := vrpsolve.NewMIPSolver()
	_, err := solver.Solve(context.Background(), m)
	require.ErrorIs(t, err, vrpsolve.ErrInfeasible)
}
