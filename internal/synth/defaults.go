package synth

import "github.com/coldchain/dispatch-optimizer/internal/model"

// DefaultWarehouse returns the first ACTIVE WAREHOUSE facility in input
// order, or the zero value and false if none exists. Computed once per
// request and passed explicitly into Phase 2 rather than recomputed.
func DefaultWarehouse(facilities []model.Facility) (model.Facility, bool) {
	for _, f := range facilities {
		if f.Type == model.FacilityWarehouse && f.Status == model.StatusActive {
			return f, true
		}
	}
	return model.Facility{}, false
}

// DefaultProcessor returns the first ACTIVE PROCESSOR facility in input
// order, or the zero value and false if none exists.
func DefaultProcessor(facilities []model.Facility) (model.Facility, bool) {
	for _, f := range facilities {
		if f.Type == model.FacilityProcessor && f.Status == model.StatusActive {
			return f, true
		}
	}
	return model.Facility{}, false
}

// ActiveWarehouses returns every ACTIVE WAREHOUSE facility, in input order.
func ActiveWarehouses(facilities []model.Facility) []model.Facility {
	var out []model.Facility
	for _, f := range facilities {
		if f.Type == model.FacilityWarehouse && f.Status == model.StatusActive {
			out = append(out, f)
		}
	}
	return out
}
