package optimizer_test

import (
	"context"
	"testing"

	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/optimizer"
	"github.com/coldchain/dispatch-optimizer/internal/synth"
	"github.com/coldchain/dispatch-optimizer/internal/testutil"
	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
	"github.com/coldchain/dispatch-optimizer/internal/vrpsolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRouteSolver routes every node, in model order, onto the first
// vehicle, ignoring capacity/precedence so tests stay independent of the
// real MIP solve.
type fixedRouteSolver struct{}

func (fixedRouteSolver) Solve(_ context.Context, m *vrpmodel.Model) (*vrpsolve.Solution, error) {
	if len(m.Vehicles) == 0 {
		return &vrpsolve.Solution{Routes: nil}, nil
	}
	var route []int
	for i := 1; i < len(m.Locations); i++ {
		route = append(route, i)
	}
	routes := make([][]int, len(m.Vehicles))
	routes[0] = route
	return &vrpsolve.Solution{Routes: routes}, nil
}

func TestOptimizer_Run_EmptyInputsYieldEmptyBids(t *testing.T) {
	s := synth.New(testutil.NewInMemoryOracle(), nil)
	o := optimizer.New(s, fixedRouteSolver{}, nil)

	bids, err := o.Run(context.Background(), optimizer.Request{})
	require.NoError(t, err)
	assert.Empty(t, bids)
}

func TestOptimizer_Run_ProducesColdChainBid(t *testing.T) {
	facilities := []model.Facility{
		{FacilityID: "P1", Type: model.FacilityProcessor, Status: model.StatusActive},
		{FacilityID: "R1", Type: model.FacilityRetailer, Status: model.StatusActive},
	}
	dispatches := []model.DispatchRequest{
		{RequestID: "D1", FromFacilityID: "P1", Status: model.StatusPending, Items: []model.Item{
			{SKU: "A", Quantity: model.Quantity{Value: 10, Unit: "kg"}},
		}},
	}
	replenishments := []model.ReplenishmentRequest{
		{RequestID: "RR1", RequestingFacilityID: "R1", Status: model.StatusPending, Items: []model.Item{
			{SKU: "A", Quantity: model.Quantity{Value: 10, Unit: "kg"}},
		}},
	}
	products := []model.Product{{SKU: "A", AverageWeight: model.WeightSpec{Value: 1, Unit: "kg"}}}
	vehicles := []model.Vehicle{
		{VehicleID: "V1", Specs: model.VehicleSpecs{PayloadTonnes: 5, Refrigerated: true}},
	}

	s := synth.New(testutil.NewInMemoryOracle(), nil)
	o := optimizer.New(s, fixedRouteSolver{}, nil)

	bids, err := o.Run(context.Background(), optimizer.Request{
		DispatchRequests:      dispatches,
		ReplenishmentRequests: replenishments,
		Facilities:            facilities,
		Products:              products,
		Vehicles:              vehicles,
	})
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, "VRP_OPTIMIZED_COLD_CHAIN", bids[0].ShipmentType)
}

func TestOptimizer_Run_NoMatchingVehicleSkipsClassWithoutError(t *testing.T) {
	facilities := []model.Facility{
		{FacilityID: "P1", Type: model.FacilityProcessor, Status: model.StatusActive},
		{FacilityID: "R1", Type: model.FacilityRetailer, Status: model.StatusActive},
	}
	dispatches := []model.DispatchRequest{
		{RequestID: "D1", FromFacilityID: "P1", Status: model.StatusPending, Items: []model.Item{
			{SKU: "A", Quantity: model.Quantity{Value: 10, Unit: "kg"}},
		}},
	}
	replenishments := []model.ReplenishmentRequest{
		{RequestID: "RR1", RequestingFacilityID: "R1", Status: model.StatusPending, Items: []model.Item{
			{SKU: "A", Quantity: model.Quantity{Value: 10, Unit: "kg"}},
		}},
	}
	products := []model.Product{{SKU: "A", AverageWeight: model.WeightSpec{Value: 1, Unit: "kg"}}}

	s := synth.New(testutil.NewInMemoryOracle(), nil)
	o := optimizer.New(s, fixedRouteSolver{}, nil)

	bids, err := o.Run(context.Background(), optimizer.Request{
		DispatchRequests:      dispatches,
		ReplenishmentRequests: replenishments,
		Facilities:            facilities,
		Products:              products,
		Vehicles:              nil,
	})
	require.NoError(t, err)
	assert.Empty(t, bids)
}
