// Package synth implements the two-phase task synthesis matching layer: it
// turns dispatch/replenishment requests into homogeneous TransportTasks,
// reconciling the virtual processor inventory against the external
// warehouse inventory oracle and the surplus/raw-material fallback routing
// of Phase 2.
package synth

import (
	"context"

	"github.com/coldchain/dispatch-optimizer/internal/geo"
	"github.com/coldchain/dispatch-optimizer/internal/inventory"
	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/coldchain/dispatch-optimizer/pkg/logger"
)

// Synthesizer runs Task Synthesis for a single request. All mutation to the
// virtual inventory is confined to this package.
type Synthesizer struct {
	oracle inventory.Oracle
	log    *logger.Logger
}

// New creates a Synthesizer bound to a warehouse inventory oracle and a
// request-scoped logger.
func New(oracle inventory.Oracle, log *logger.Logger) *Synthesizer {
	if log == nil {
		log = logger.NewNoop()
	}
	return &Synthesizer{oracle: oracle, log: log}
}

// Synthesize runs Phase 1 (retailer demand fulfillment) followed by Phase 2
// (surplus and raw material routing) and returns the resulting task list in
// a deterministic order regardless of how warehouse lookups overlap.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	dispatches []model.DispatchRequest,
	replenishments []model.ReplenishmentRequest,
	facilities []model.Facility,
	catalog map[string]model.Product,
) []model.TransportTask {
	facilitiesByID := make(map[string]model.Facility, len(facilities))
	for _, f := range facilities {
		facilitiesByID[f.FacilityID] = f
	}

	table := inventory.Virtual(dispatches, facilitiesByID)
	warehouses := ActiveWarehouses(facilities)

	var tasks []model.TransportTask
	tasks = append(tasks, s.phase1(ctx, replenishments, facilitiesByID, table, warehouses, catalog)...)

	defaultWarehouse, hasDefaultWarehouse := DefaultWarehouse(facilities)
	defaultProcessor, hasDefaultProcessor := DefaultProcessor(facilities)
	tasks = append(tasks, s.phase2Surplus(table, defaultWarehouse, hasDefaultWarehouse, catalog)...)
	tasks = append(tasks, s.phase2RawMaterial(dispatches, facilitiesByID, defaultProcessor, hasDefaultProcessor, catalog)...)

	return tasks
}

// phase1 fulfills retailer replenishment demand from processor inventory
// first, falling back to warehouse stock for whatever remains unmet.
func (s *Synthesizer) phase1(
	ctx context.Context,
	replenishments []model.ReplenishmentRequest,
	facilitiesByID map[string]model.Facility,
	table *inventory.Table,
	warehouses []model.Facility,
	catalog map[string]model.Product,
) []model.TransportTask {
	var tasks []model.TransportTask

	for _, req := range replenishments {
		if req.Status != model.StatusPending {
			continue
		}
		if _, ok := facilitiesByID[req.RequestingFacilityID]; !ok {
			continue
		}

		for _, item := range req.Items {
			needed := item.Quantity.Value
			unit := item.Quantity.Unit
			sku := item.Key()

			needed, processorTasks := s.processorPass(req, table, sku, needed, unit, catalog)
			tasks = append(tasks, processorTasks...)

			if needed > 0 {
				warehouseTasks := s.warehousePass(ctx, req, sku, unit, needed, warehouses, catalog)
				tasks = append(tasks, warehouseTasks...)
			}
		}
	}

	return tasks
}

// processorPass consumes the virtual processor inventory for one
// replenishment item, in source insertion order, until demand is met or
// sources are exhausted. Unit mismatches skip the source without consuming it.
func (s *Synthesizer) processorPass(
	req model.ReplenishmentRequest,
	table *inventory.Table,
	sku string,
	needed float64,
	unit string,
	catalog map[string]model.Product,
) (float64, []model.TransportTask) {
	var tasks []model.TransportTask

	for _, src := range table.BySku[sku] {
		if needed <= 0 {
			break
		}
		if src.RemainingValue <= 0 {
			continue
		}
		if src.Unit != unit {
			continue
		}

		take := minFloat(needed, src.RemainingValue)
		taskItem := src.OriginalItem.WithValue(take)

		tasks = append(tasks, model.TransportTask{
			From:               src.FromFacility,
			To:                 req.RequestingFacilityID,
			DemandKg:           int(geo.NormalizeToKg(taskItem, catalog, s.log)),
			Items:              []model.Item{taskItem},
			VehicleType:        model.VehicleColdChain,
			OriginalRequestIDs: []string{src.OriginalRequestID},
		})

		needed -= take
		src.RemainingValue -= take
	}

	return needed, tasks
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
