package synth

import (
	"github.com/coldchain/dispatch-optimizer/internal/geo"
	"github.com/coldchain/dispatch-optimizer/internal/inventory"
	"github.com/coldchain/dispatch-optimizer/internal/model"
)

// phase2Surplus routes every remaining processor source to the default
// warehouse, if one exists. Sources are walked in the flat input order
// recorded by inventory.Virtual.
func (s *Synthesizer) phase2Surplus(
	table *inventory.Table,
	defaultWarehouse model.Facility,
	hasDefaultWarehouse bool,
	catalog map[string]model.Product,
) []model.TransportTask {
	if !hasDefaultWarehouse {
		return nil
	}

	var tasks []model.TransportTask
	for _, src := range table.Ordered {
		if src.RemainingValue <= 0 {
			continue
		}

		taskItem := src.OriginalItem.WithValue(src.RemainingValue)
		tasks = append(tasks, model.TransportTask{
			From:               src.FromFacility,
			To:                 defaultWarehouse.FacilityID,
			DemandKg:           int(geo.NormalizeToKg(taskItem, catalog, s.log)),
			Items:              []model.Item{taskItem},
			VehicleType:        model.VehicleColdChain,
			OriginalRequestIDs: []string{src.OriginalRequestID},
		})
	}

	return tasks
}

// phase2RawMaterial routes every PENDING dispatch request from a FARM to
// the default processor, if one exists, with its items carried verbatim.
func (s *Synthesizer) phase2RawMaterial(
	dispatches []model.DispatchRequest,
	facilitiesByID map[string]model.Facility,
	defaultProcessor model.Facility,
	hasDefaultProcessor bool,
	catalog map[string]model.Product,
) []model.TransportTask {
	if !hasDefaultProcessor {
		return nil
	}

	var tasks []model.TransportTask
	for _, req := range dispatches {
		if req.Status != model.StatusPending {
			continue
		}
		facility, ok := facilitiesByID[req.FromFacilityID]
		if !ok || facility.Type != model.FacilityFarm {
			continue
		}

		demandKg := 0.0
		for _, item := range req.Items {
			demandKg += geo.NormalizeToKg(item, catalog, s.log)
		}

		tasks = append(tasks, model.TransportTask{
			From:               req.FromFacilityID,
			To:                 defaultProcessor.FacilityID,
			DemandKg:           int(demandKg),
			Items:              req.Items,
			VehicleType:        model.VehicleRawMaterialTruck,
			OriginalRequestIDs: []string{req.RequestID},
		})
	}

	return tasks
}
