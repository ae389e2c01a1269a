// Package inventory builds the per-request virtual processor inventory and
// provides access to the external warehouse inventory oracle.
package inventory

import "github.com/coldchain/dispatch-optimizer/internal/model"

// Source is a transient line of available supply sitting at a PROCESSOR,
// discovered from a PENDING dispatch request. It is mutated in place during
// Phase 1 of task synthesis and never persisted.
type Source struct {
	FromFacility    string
	RemainingValue  float64
	Unit            string
	OriginalItem    model.Item
	OriginalRequestID string
}

// Table is the virtual processor inventory built once per request: sources
// keyed by SKU for Phase 1 lookups, plus the same sources in flat input
// order for Phase 2's surplus sweep.
type Table struct {
	BySku   map[string][]*Source
	Ordered []*Source
}

// Virtual builds the virtual processor inventory: one Source per item of
// every PENDING DispatchRequest whose fromFacility is a PROCESSOR, keyed by
// SKU (falling back to AssetID when the item has no SKU). Sources are appended
// in input order so later phases can iterate deterministically.
func Virtual(dispatches []model.DispatchRequest, facilitiesByID map[string]model.Facility) *Table {
	t := &Table{BySku: make(map[string][]*Source)}

	for _, req := range dispatches {
		if req.Status != model.StatusPending {
			continue
		}
		facility, ok := facilitiesByID[req.FromFacilityID]
		if !ok || facility.Type != model.FacilityProcessor {
			continue
		}

		for _, item := range req.Items {
			key := item.SKU
			if key == "" {
				key = item.AssetID
			}
			src := &Source{
				FromFacility:      req.FromFacilityID,
				RemainingValue:    item.Quantity.Value,
				Unit:              item.Quantity.Unit,
				OriginalItem:      item,
				OriginalRequestID: req.RequestID,
			}
			t.BySku[key] = append(t.BySku[key], src)
			t.Ordered = append(t.Ordered, src)
		}
	}

	return t
}
