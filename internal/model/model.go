// Package model defines the shared domain types exchanged between the
// inventory view, task synthesizer, VRP solver and stop aggregator.
package model

// FacilityType identifies a tier of the cold-chain network.
type FacilityType string

const (
	FacilityFarm      FacilityType = "FARM"
	FacilityProcessor FacilityType = "PROCESSOR"
	FacilityWarehouse FacilityType = "WAREHOUSE"
	FacilityRetailer  FacilityType = "RETAILER"
)

// FacilityStatus tracks whether a facility currently participates in matching.
type FacilityStatus string

const (
	StatusActive   FacilityStatus = "ACTIVE"
	StatusInactive FacilityStatus = "INACTIVE"
)

// RequestStatus tracks whether a dispatch/replenishment request is still open.
type RequestStatus string

const (
	StatusPending RequestStatus = "PENDING"
)

// VehicleType is the shipment class a transport task requires.
type VehicleType string

const (
	VehicleColdChain       VehicleType = "COLD_CHAIN"
	VehicleRawMaterialTruck VehicleType = "RAW_MATERIAL_TRUCK"
)

// StopAction is the role a stop plays for a given facility.
type StopAction string

const (
	ActionPickup   StopAction = "PICKUP"
	ActionDelivery StopAction = "DELIVERY"
)

// Address is a geographic coordinate pair, in degrees.
type Address struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Facility is a node of the multi-tier supply network.
type Facility struct {
	FacilityID string         `json:"facilityID"`
	Type       FacilityType   `json:"type"`
	Status     FacilityStatus `json:"status"`
	Address    Address        `json:"address"`
}

// Quantity is an amount denominated in a caller-supplied unit. Two
// quantities are only additively comparable when their units match.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// WeightSpec expresses a product's average per-unit weight.
type WeightSpec struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // "g" or "kg"
}

// Product is a catalog entry keyed by SKU.
type Product struct {
	SKU           string     `json:"sku"`
	AverageWeight WeightSpec `json:"averageWeight"`
}

// Item is either a SKU-keyed product request or an asset-keyed physical lot.
// Exactly one of SKU/AssetID is expected to be the identity key; Key()
// resolves it deterministically: AssetID wins when present, SKU otherwise.
type Item struct {
	SKU      string   `json:"sku,omitempty"`
	AssetID  string   `json:"assetID,omitempty"`
	Quantity Quantity `json:"quantity"`
}

// Key returns the identity used to merge/aggregate this item.
func (i Item) Key() string {
	if i.AssetID != "" {
		return i.AssetID
	}
	return i.SKU
}

// WithValue returns a copy of the item with quantity.Value replaced.
func (i Item) WithValue(value float64) Item {
	i.Quantity.Value = value
	return i
}

// DispatchRequest originates supply at a FARM or PROCESSOR.
type DispatchRequest struct {
	RequestID       string        `json:"requestID"`
	FromFacilityID  string        `json:"fromFacilityID"`
	Status          RequestStatus `json:"status"`
	Items           []Item        `json:"items"`
}

// ReplenishmentRequest originates demand at a RETAILER.
type ReplenishmentRequest struct {
	RequestID             string        `json:"requestID"`
	RequestingFacilityID  string        `json:"requestingFacilityID"`
	Status                RequestStatus `json:"status"`
	Items                 []Item        `json:"items"`
}

// VehicleSpecs describes a candidate vehicle's carrying capability.
type VehicleSpecs struct {
	PayloadTonnes float64 `json:"payloadTonnes"`
	Refrigerated  bool    `json:"refrigerated"`
}

// Vehicle is a candidate carrier offered to the router.
type Vehicle struct {
	VehicleID     string       `json:"vehicleID"`
	OwnerDriverID string       `json:"ownerDriverID"`
	Specs         VehicleSpecs `json:"specs"`
}

// TransportTask is a single origin-to-destination, typed shipment produced
// by the task synthesizer.
type TransportTask struct {
	From               string
	To                 string
	DemandKg           int
	Items              []Item
	VehicleType        VehicleType
	OriginalRequestIDs []string
}

// Stop is one pickup or delivery touchpoint on a vehicle's route.
type Stop struct {
	FacilityID string     `json:"facilityID"`
	Action     StopAction `json:"action"`
	Items      []Item     `json:"items"`
}

// BiddingAssignment names the driver/vehicle pair proposed for a bid.
type BiddingAssignment struct {
	DriverID  string `json:"driverID"`
	VehicleID string `json:"vehicleID"`
}

// Bid is a candidate vehicle assignment offered to a downstream dispatcher.
type Bid struct {
	OriginalRequestIDs []string            `json:"originalRequestIDs"`
	BiddingAssignments []BiddingAssignment `json:"biddingAssignments"`
	ShipmentType       string              `json:"shipmentType"`
	Stops              []Stop              `json:"stops"`
}
