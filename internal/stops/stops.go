// Package stops merges solved VRP routes back into per-vehicle ordered
// stop lists and assembles the final bids offered to the dispatcher.
package stops

import (
	"sort"

	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/internal/vrpmodel"
	"github.com/coldchain/dispatch-optimizer/internal/vrpsolve"
)

// stopKey identifies a merged stop: one vehicle visiting one facility.
type stopKey struct {
	vehicle    int
	facilityID string
}

// Aggregate turns a solved route set into bids, one per vehicle that
// carries at least one task. A vehicle with an empty route contributes no
// bid. Item merging is by asset/SKU key; a facility visited by both a
// pickup and a delivery task keeps the action of the first task, in model
// task order, that names it.
func Aggregate(m *vrpmodel.Model, solution *vrpsolve.Solution, shipmentType string) []model.Bid {
	var bids []model.Bid

	for v, route := range solution.Routes {
		if len(route) == 0 {
			continue
		}
		vehicle := m.Vehicles[v]

		stopsByFacility := make(map[stopKey]*model.Stop)
		var orderedKeys []stopKey
		itemsByKey := make(map[stopKey]map[string]model.Item)

		tasksInRoute := tasksTouching(m, route)
		requestIDs := make(map[string]struct{})

		for _, nodeIdx := range route {
			facilityID := m.Locations[nodeIdx].FacilityID
			key := stopKey{vehicle: v, facilityID: facilityID}

			action, ok := actionAt(m, tasksInRoute, nodeIdx)
			if !ok {
				continue
			}

			if _, seen := stopsByFacility[key]; !seen {
				stopsByFacility[key] = &model.Stop{FacilityID: facilityID, Action: action}
				itemsByKey[key] = make(map[string]model.Item)
				orderedKeys = append(orderedKeys, key)
			}

			for _, t := range tasksInRoute {
				if t.From == facilityID || t.To == facilityID {
					for _, id := range t.OriginalRequestIDs {
						requestIDs[id] = struct{}{}
					}
				}
				mergeItemsAtNode(itemsByKey[key], m, t, nodeIdx)
			}
		}

		var orderedStops []model.Stop
		for _, key := range orderedKeys {
			stop := stopsByFacility[key]
			stop.Items = flattenItems(itemsByKey[key])
			orderedStops = append(orderedStops, *stop)
		}

		bids = append(bids, model.Bid{
			OriginalRequestIDs: sortedKeys(requestIDs),
			BiddingAssignments: []model.BiddingAssignment{
				{VehicleID: vehicle.VehicleID, DriverID: vehicle.OwnerDriverID},
			},
			ShipmentType: shipmentType,
			Stops:        orderedStops,
		})
	}

	return bids
}

// tasksTouching returns every task whose pickup or delivery node appears in
// route, preserving the model's task order.
func tasksTouching(m *vrpmodel.Model, route []int) []model.TransportTask {
	inRoute := make(map[int]bool, len(route))
	for _, n := range route {
		inRoute[n] = true
	}

	var out []model.TransportTask
	for i, pd := range m.PickupsDeliveries {
		if inRoute[pd[0]] || inRoute[pd[1]] {
			out = append(out, m.Tasks[i])
		}
	}
	return out
}

// actionAt resolves whether nodeIdx is a pickup or delivery stop, given the
// tasks known to touch this route. The first task (in task order) that names
// the node's facility decides: PICKUP if the task departs from it, DELIVERY
// if the task arrives there. Later tasks do not change the result.
func actionAt(m *vrpmodel.Model, tasks []model.TransportTask, nodeIdx int) (model.StopAction, bool) {
	facilityID := m.Locations[nodeIdx].FacilityID
	for _, t := range tasks {
		if t.From == facilityID {
			return model.ActionPickup, true
		}
		if t.To == facilityID {
			return model.ActionDelivery, true
		}
	}
	return "", false
}

// mergeItemsAtNode folds t's items into acc when t touches the facility at
// nodeIdx, merging quantities by item key.
func mergeItemsAtNode(acc map[string]model.Item, m *vrpmodel.Model, t model.TransportTask, nodeIdx int) {
	facilityID := m.Locations[nodeIdx].FacilityID
	if t.From != facilityID && t.To != facilityID {
		return
	}
	for _, item := range t.Items {
		key := item.Key()
		existing, ok := acc[key]
		if !ok {
			acc[key] = item
			continue
		}
		if existing.Quantity.Unit == item.Quantity.Unit {
			existing.Quantity.Value += item.Quantity.Value
			acc[key] = existing
		}
	}
}

func flattenItems(m map[string]model.Item) []model.Item {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
