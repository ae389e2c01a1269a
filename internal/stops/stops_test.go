package stops_test

import (
	"testing"

	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/stops"
	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
	"github.com/coldchain/dispatch-optimizer/internal/vrpsolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SingleVehicleTwoStops(t *testing.T) {
	facilities := map[string]model.Facility{
		"P1": {FacilityID: "P1"},
		"R1": {FacilityID: "R1"},
	}
	tasks := []model.TransportTask{
		{
			From: "P1", To: "R1", DemandKg: 10,
			Items:              []model.Item{{SKU: "A", Quantity: model.Quantity{Value: 10, Unit: "kg"}}},
			OriginalRequestIDs: []string{"D1"},
		},
	}
	vehicles := []model.Vehicle{
		{VehicleID: "V1", OwnerDriverID: "DRV1", Specs: model.VehicleSpecs{PayloadTonnes: 5}},
	}
	m := vrpmodel.Build(tasks, vehicles, facilities)
	solution := &vrpsolve.Solution{Routes: [][]int{{1, 2}}}

	bids := stops.Aggregate(m, solution, "VRP_OPTIMIZED_COLD_CHAIN")

	require.Len(t, bids, 1)
	bid := bids[0]
	assert.Equal(t, "VRP_OPTIMIZED_COLD_CHAIN", bid.ShipmentType)
	assert.Equal(t, []string{"D1"}, bid.OriginalRequestIDs)
	require.Len(t, bid.Stops, 2)
	assert.Equal(t, "P1", bid.Stops[0].FacilityID)
	assert.Equal(t, model.ActionPickup, bid.Stops[0].Action)
	assert.Equal(t, "R1", bid.Stops[1].FacilityID)
	assert.Equal(t, model.ActionDelivery, bid.Stops[1].Action)
	require.Len(t, bid.BiddingAssignments, 1)
	assert.Equal(t, "V1", bid.BiddingAssignments[0].VehicleID)
}

func TestAggregate_EmptyRouteYieldsNoBid(t *testing.T) {
	facilities := map[string]model.Facility{"P1": {FacilityID: "P1"}, "R1": {FacilityID: "R1"}}
	tasks := []model.TransportTask{{From: "P1", To: "R1", DemandKg: 5}}
	vehicles := []model.Vehicle{{VehicleID: "V1"}}
	m := vrpmodel.Build(tasks, vehicles, facilities)
	solution := &vrpsolve.Solution{Routes: [][]int{{}}}

	bids := stops.Aggregate(m, solution, "VRP_OPTIMIZED_COLD_CHAIN")
	assert.Empty(t, bids)
}

func TestAggregate_MergesItemsByKeyAtPassThroughFacility(t *testing.T) {
	facilities := map[string]model.Facility{
		"P1": {FacilityID: "P1"},
		"W1": {FacilityID: "W1"},
		"R1": {FacilityID: "R1"},
	}
	// Two tasks both pass through W1: one delivers there, the other departs
	// from there. W1 is first touched as a delivery, so the merged stop
	// keeps DELIVERY even though it's also an origin for the second task.
	tasks := []model.TransportTask{
		{From: "P1", To: "W1", DemandKg: 5, Items: []model.Item{{SKU: "A", Quantity: model.Quantity{Value: 5, Unit: "kg"}}}},
		{From: "W1", To: "R1", DemandKg: 5, Items: []model.Item{{SKU: "A", Quantity: model.Quantity{Value: 5, Unit: "kg"}}}},
	}
	vehicles := []model.Vehicle{{VehicleID: "V1"}}
	m := vrpmodel.Build(tasks, vehicles, facilities)
	// Locations: 0=DEPOT 1=P1 2=W1 3=R1 (task1: P1->W1, task2: W1->R1)
	solution := &vrpsolve.Solution{Routes: [][]int{{1, 2, 3}}}

	bids := stops.Aggregate(m, solution, "VRP_OPTIMIZED_COLD_CHAIN")

	require.Len(t, bids, 1)
	stopsList := bids[0].Stops
	require.Len(t, stopsList, 3)
	assert.Equal(t, "W1", stopsList[1].FacilityID)
	assert.Equal(t, model.ActionDelivery, stopsList[1].Action)
	// Both tasks carry 5 kg of A through W1; the stop holds one merged item.
	require.Len(t, stopsList[1].Items, 1)
	assert.Equal(t, 10.0, stopsList[1].Items[0].Quantity.Value)
}
