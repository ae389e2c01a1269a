package synth

import (
	"context"
	"sync"

	"github.com/coldchain/dispatch-optimizer/internal/geo"
	"github.com/coldchain/dispatch-optimizer/internal/inventory"
	"github.com/coldchain/dispatch-optimizer/internal/metrics"
	"github.com/coldchain/dispatch-optimizer/internal/model"
)

// warehousePass queries active warehouses for whatever demand the processor
// pass left unmet. Lookups are issued concurrently per (warehouse, sku)
// pair, but results are always consumed in warehouse input order, then
// response asset order, to keep task creation order a deterministic
// function of the input.
func (s *Synthesizer) warehousePass(
	ctx context.Context,
	req model.ReplenishmentRequest,
	sku, unit string,
	needed float64,
	warehouses []model.Facility,
	catalog map[string]model.Product,
) []model.TransportTask {
	if len(warehouses) == 0 {
		return nil
	}

	results := make([][]inventory.AssetAvailability, len(warehouses))
	var wg sync.WaitGroup
	for i, wh := range warehouses {
		wg.Add(1)
		go func(i int, wh model.Facility) {
			defer wg.Done()
			assets, err := s.oracle.Lookup(ctx, wh.FacilityID, sku)
			if err != nil {
				metrics.WarehouseLookupErrorsTotal.Inc()
				s.log.Warn("warehouse lookup failed, treating as empty", "facilityID", wh.FacilityID, "sku", sku, "error", err)
				return
			}
			results[i] = assets
		}(i, wh)
	}
	wg.Wait()

	var tasks []model.TransportTask
	for i, wh := range warehouses {
		for _, asset := range results[i] {
			if needed <= 0 {
				return tasks
			}
			if asset.CurrentQuantity.Value <= 0 {
				continue
			}

			take := minFloat(needed, asset.CurrentQuantity.Value)
			taskItem := model.Item{
				AssetID: asset.AssetID,
				SKU:     sku,
				Quantity: model.Quantity{
					Value: take,
					Unit:  unit,
				},
			}

			tasks = append(tasks, model.TransportTask{
				From:               wh.FacilityID,
				To:                 req.RequestingFacilityID,
				DemandKg:           int(geo.NormalizeToKg(taskItem, catalog, s.log)),
				Items:              []model.Item{taskItem},
				VehicleType:        model.VehicleColdChain,
				OriginalRequestIDs: nil,
			})

			needed -= take
		}
	}

	return tasks
}
