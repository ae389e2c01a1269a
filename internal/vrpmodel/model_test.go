package vrpmodel_test

import (
	"testing"

	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AssignsDepotAndNodesInTaskOrder(t *testing.T) {
	facilities := map[string]model.Facility{
		"P1": {FacilityID: "P1", Address: model.Address{Latitude: 1, Longitude: 1}},
		"R1": {FacilityID: "R1", Address: model.Address{Latitude: 2, Longitude: 2}},
	}
	tasks := []model.TransportTask{
		{From: "P1", To: "R1", DemandKg: 10},
	}
	vehicles := []model.Vehicle{
		{VehicleID: "V1", Specs: model.VehicleSpecs{PayloadTonnes: 5}},
	}

	m := vrpmodel.Build(tasks, vehicles, facilities)

	require.Len(t, m.Locations, 3)
	assert.Equal(t, "DEPOT", m.Locations[0].FacilityID)
	assert.Equal(t, "P1", m.Locations[1].FacilityID)
	assert.Equal(t, "R1", m.Locations[2].FacilityID)

	require.Len(t, m.PickupsDeliveries, 1)
	assert.Equal(t, [2]int{1, 2}, m.PickupsDeliveries[0])
	assert.Equal(t, []int{10}, m.Demands)

	require.Len(t, m.VehicleCapacities, 1)
	assert.Equal(t, 5000, m.VehicleCapacities[0])

	require.Len(t, m.DistanceMatrix, 3)
	assert.Equal(t, m.DistanceMatrix[1][2], m.DistanceMatrix[2][1])
	assert.Equal(t, 0, m.DistanceMatrix[0][0])
}

func TestBuild_ReusesNodeForRepeatedFacility(t *testing.T) {
	facilities := map[string]model.Facility{
		"P1": {FacilityID: "P1"},
		"R1": {FacilityID: "R1"},
		"W1": {FacilityID: "W1"},
	}
	tasks := []model.TransportTask{
		{From: "P1", To: "R1", DemandKg: 4},
		{From: "P1", To: "W1", DemandKg: 6},
	}

	m := vrpmodel.Build(tasks, nil, facilities)

	require.Len(t, m.Locations, 4) // depot, P1, R1, W1
	assert.Equal(t, m.PickupsDeliveries[0][0], m.PickupsDeliveries[1][0]) // both pickups at P1's node
}
