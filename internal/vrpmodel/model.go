// Package vrpmodel materializes the location index, distance matrix,
// pickup/delivery pairs and vehicle capacities consumed by the solver
// adapter. It is invoked once per vehicle class.
package vrpmodel

import (
	"github.com/coldchain/dispatch-optimizer/internal/geo"
	"github.com/coldchain/dispatch-optimizer/internal/model"
)

// distanceScale preserves two decimal kilometers as integers for the solver.
const distanceScale = 100

// depotIndex is the synthetic depot node, always index 0.
const depotIndex = 0

// Location is one node of the model: either the synthetic depot or a
// facility that appears as a task endpoint.
type Location struct {
	FacilityID string
	Latitude   float64
	Longitude  float64
}

// Model is the materialized VRP input for one vehicle class.
type Model struct {
	Locations         []Location
	DistanceMatrix    [][]int
	PickupsDeliveries [][2]int // [fromNode, toNode], one pair per task, in task order
	Demands           []int    // demandKg, one per task, parallel to PickupsDeliveries
	VehicleCapacities []int    // ⌊payloadTonnes × 1000⌋, one per vehicle
	Tasks             []model.TransportTask
	Vehicles          []model.Vehicle
}

// Build constructs a Model for one vehicle class's tasks and vehicles. Node
// 0 is always the synthetic DEPOT at (0, 0); each task's From/To facility is
// assigned the next free index on first appearance, in task order.
func Build(tasks []model.TransportTask, vehicles []model.Vehicle, facilitiesByID map[string]model.Facility) *Model {
	m := &Model{
		Locations: []Location{{FacilityID: "DEPOT", Latitude: 0, Longitude: 0}},
		Tasks:     tasks,
		Vehicles:  vehicles,
	}

	nodeIndex := make(map[string]int)
	nodeIndex["DEPOT"] = depotIndex

	nodeFor := func(facilityID string) int {
		if idx, ok := nodeIndex[facilityID]; ok {
			return idx
		}
		idx := len(m.Locations)
		loc := Location{FacilityID: facilityID}
		if f, ok := facilitiesByID[facilityID]; ok {
			loc.Latitude = f.Address.Latitude
			loc.Longitude = f.Address.Longitude
		}
		m.Locations = append(m.Locations, loc)
		nodeIndex[facilityID] = idx
		return idx
	}

	for _, t := range tasks {
		fromNode := nodeFor(t.From)
		toNode := nodeFor(t.To)
		m.PickupsDeliveries = append(m.PickupsDeliveries, [2]int{fromNode, toNode})
		m.Demands = append(m.Demands, t.DemandKg)
	}

	m.DistanceMatrix = buildDistanceMatrix(m.Locations)

	m.VehicleCapacities = make([]int, len(vehicles))
	for i, v := range vehicles {
		m.VehicleCapacities[i] = int(v.Specs.PayloadTonnes * 1000)
	}

	return m
}

// buildDistanceMatrix returns the symmetric integer distance matrix
// d[i][j] = ⌊haversine(loc_i, loc_j) × 100⌋.
func buildDistanceMatrix(locations []Location) [][]int {
	n := len(locations)
	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			km := geo.Haversine(locations[i].Latitude, locations[i].Longitude, locations[j].Latitude, locations[j].Longitude)
			d := int(km * distanceScale)
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	return matrix
}
