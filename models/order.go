package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType is the fulfillment mode of an order. The literals match
// what the portal sends.
type ServiceType string

const (
	ServiceDineIn   ServiceType = "Dine-In"
	ServiceTakeaway ServiceType = "Takeaway"
	ServiceDelivery ServiceType = "Delivery"
)

// Known reports whether the value is one of the three service types.
func (s ServiceType) Known() bool {
	switch s {
	case ServiceDineIn, ServiceTakeaway, ServiceDelivery:
		return true
	}
	return false
}

// MaxTableNumber is the highest table the dining room has.
const MaxTableNumber = 20

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderDraft is the non-cart order metadata collected before checkout.
// DeviceLocation comes from the location collaborator, SelectedLocation
// from an explicit pick on the map; the explicit pick always wins.
type OrderDraft struct {
	ServiceType         ServiceType `json:"service_type"`
	TableNumber         int         `json:"table_number,omitempty"`
	PhoneNumber         string      `json:"phone_number"`
	DeviceLocation      *LatLng     `json:"device_location,omitempty"`
	SelectedLocation    *LatLng     `json:"selected_location,omitempty"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
}

// DeliveryLocation resolves the point an order would be delivered to.
func (d OrderDraft) DeliveryLocation() *LatLng {
	if d.SelectedLocation != nil {
		return d.SelectedLocation
	}
	return d.DeviceLocation
}

// DraftPatch is a partial update of the draft; nil fields are left as
// they are. DeviceLocation is accepted here as well because the device
// fix ultimately comes from the customer's browser.
type DraftPatch struct {
	ServiceType         *ServiceType `json:"service_type,omitempty"`
	TableNumber         *int         `json:"table_number,omitempty"`
	PhoneNumber         *string      `json:"phone_number,omitempty"`
	DeviceLocation      *LatLng      `json:"device_location,omitempty"`
	SpecialInstructions *string      `json:"special_instructions,omitempty"`
}

type SelectLocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// OrderSubmission is the payload sent to the restaurant backend. It
// deliberately carries no total: the backend recomputes it from the
// lines so a tampered client cannot set its own price.
type OrderSubmission struct {
	Items       []CartLine  `json:"items"`
	OrderType   ServiceType `json:"orderType"`
	TableNumber int         `json:"tableNumber,omitempty"`
	PhoneNumber string      `json:"phoneNumber"`
	Location    *LatLng     `json:"location,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// WorkflowStatus tracks a cart through the checkout workflow.
type WorkflowStatus string

const (
	StatusCollecting WorkflowStatus = "collecting"
	StatusSubmitting WorkflowStatus = "submitting"
	StatusSubmitted  WorkflowStatus = "submitted"
	StatusFailed     WorkflowStatus = "failed"
)

type CheckoutResponse struct {
	Status WorkflowStatus `json:"status"`
}

// OrderPlacedEvent is published to the kitchen queue once the backend
// has accepted an order.
type OrderPlacedEvent struct {
	CartID      uuid.UUID   `json:"cart_id"`
	OrderType   ServiceType `json:"order_type"`
	TableNumber int         `json:"table_number,omitempty"`
	Items       []CartLine  `json:"items"`
	Notes       string      `json:"notes,omitempty"`
	PlacedAt    time.Time   `json:"placed_at"`
}
