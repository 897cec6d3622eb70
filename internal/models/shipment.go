package models

import (
	"strings"
	"time"
)

type ShipmentStatus string

// Канонический набор статусов. Запись создаёт и меняет внешняя операционная система,
// сайт её только читает.
const (
	ShipmentStatusPending        ShipmentStatus = "pending"
	ShipmentStatusPickedUp       ShipmentStatus = "picked_up"
	ShipmentStatusInTransit      ShipmentStatus = "in_transit"
	ShipmentStatusOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentStatusDelivered      ShipmentStatus = "delivered"
	ShipmentStatusDelayed        ShipmentStatus = "delayed"
	ShipmentStatusCancelled      ShipmentStatus = "cancelled"

	ShipmentStatusUnknown ShipmentStatus = "unknown"
)

var statusAliases = map[string]ShipmentStatus{
	"pick_up_complete": ShipmentStatusPickedUp,
	"pickup_complete":  ShipmentStatusPickedUp,
	"picked":           ShipmentStatusPickedUp,
	"canceled":         ShipmentStatusCancelled,
}

// ParseShipmentStatus normalizes a raw status string from the shipments table.
// Matching ignores case and treats '-' and ' ' like '_', so "Pick-up-complete"
// and "picked_up" land on the same value. Unrecognized input yields ShipmentStatusUnknown.
func ParseShipmentStatus(raw string) ShipmentStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)

	switch st := ShipmentStatus(s); st {
	case ShipmentStatusPending, ShipmentStatusPickedUp, ShipmentStatusInTransit,
		ShipmentStatusOutForDelivery, ShipmentStatusDelivered, ShipmentStatusDelayed,
		ShipmentStatusCancelled:
		return st
	}
	if st, ok := statusAliases[s]; ok {
		return st
	}
	return ShipmentStatusUnknown
}

type Shipment struct {
	TrackingNumber    string     `json:"tracking_number"`
	Status            string     `json:"status"`
	OriginState       string     `json:"origin_state"`
	DestinationState  string     `json:"destination_state"`
	EstimatedDays     *int       `json:"estimated_days,omitempty"`
	ScheduledDelivery *time.Time `json:"scheduled_delivery,omitempty"`
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	DelayReason       *string    `json:"delay_reason,omitempty"`
}

// NormalizeTrackingNumber приводит код к виду, в котором он хранится в shipments.
func NormalizeTrackingNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
