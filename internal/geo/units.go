package geo

import (
	"strings"

	"github.com/coldchain/dispatch-optimizer/internal/model"
)

// Diagnostics collects non-fatal warnings emitted while normalizing units,
// mirroring the request-scoped logger pattern used elsewhere in the pipeline
// (see pkg/logger) without taking a hard dependency on it here.
type Diagnostics interface {
	Warn(msg string, keysAndValues ...interface{})
}

// NormalizeToKg converts an item's quantity to kilograms using the product
// catalog's average per-unit weight. Returns 0 and logs a diagnostic when
// the SKU is unknown or the catalog carries no entry for it.
func NormalizeToKg(item model.Item, catalog map[string]model.Product, diag Diagnostics) float64 {
	sku := item.SKU
	if sku == "" {
		sku = item.AssetID
	}

	product, ok := catalog[sku]
	if !ok {
		if diag != nil {
			diag.Warn("unknown sku during weight normalization", "sku", sku)
		}
		return 0
	}

	weightKg := product.AverageWeight.Value
	switch strings.ToLower(product.AverageWeight.Unit) {
	case "g":
		weightKg = weightKg / 1000.0
	default:
		// any other unit defaults to kilograms
	}

	return item.Quantity.Value * weightKg
}
