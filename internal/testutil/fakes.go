// Package testutil provides test fixtures and fakes shared across package
// tests.
package testutil

import (
	"context"
	"sort"

	"github.com/coldchain/dispatch-optimizer/internal/inventory"
)

// InMemoryOracle is a fake inventory.Oracle backed by an in-memory table,
// letting synthesizer tests run without a live warehouse service.
type InMemoryOracle struct {
	// Assets maps facilityID -> sku -> assets, in response order.
	Assets map[string]map[string][]inventory.AssetAvailability
	// Err, when set for a facilityID, is returned instead of a lookup result.
	Err map[string]error
}

// NewInMemoryOracle returns an empty fake ready for population.
func NewInMemoryOracle() *InMemoryOracle {
	return &InMemoryOracle{
		Assets: make(map[string]map[string][]inventory.AssetAvailability),
		Err:    make(map[string]error),
	}
}

// Put registers the assets returned for a given facility/sku pair.
func (f *InMemoryOracle) Put(facilityID, sku string, assets ...inventory.AssetAvailability) {
	if f.Assets[facilityID] == nil {
		f.Assets[facilityID] = make(map[string][]inventory.AssetAvailability)
	}
	f.Assets[facilityID][sku] = assets
}

// Lookup implements inventory.Oracle.
func (f *InMemoryOracle) Lookup(_ context.Context, facilityID, sku string) ([]inventory.AssetAvailability, error) {
	if err, ok := f.Err[facilityID]; ok {
		return nil, err
	}
	bySku, ok := f.Assets[facilityID]
	if !ok {
		return nil, nil
	}
	return bySku[sku], nil
}

// SortedKeys returns m's keys in sorted order, a small helper for
// deterministic-ordering assertions.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
