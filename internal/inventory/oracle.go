package inventory

import (
	"context"

	"github.com/coldchain/dispatch-optimizer/internal/model"
)

// AssetAvailability is a single lot of on-hand inventory reported by the
// warehouse service for a given SKU.
type AssetAvailability struct {
	AssetID         string         `json:"assetID"`
	CurrentQuantity model.Quantity `json:"currentQuantity"`
}

// Oracle abstracts the external warehouse-inventory lookup so the task
// synthesizer can be tested against an in-memory fake instead of a live
// HTTP dependency.
type Oracle interface {
	Lookup(ctx context.Context, facilityID, sku string) ([]AssetAvailability, error)
}
