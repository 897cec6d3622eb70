package tracking

import (
	"time"

	"github.com/BearBump/FreightSite/internal/models"
)

// View: то, что страница трекинга и JSON API отдают клиенту.
type View struct {
	TrackingNumber    string                `json:"tracking_number"`
	Status            models.ShipmentStatus `json:"status"`
	RawStatus         string                `json:"raw_status"`
	Headline          string                `json:"headline"`
	OriginState       string                `json:"origin_state"`
	DestinationState  string                `json:"destination_state"`
	EstimatedDays     *int                  `json:"estimated_days,omitempty"`
	ScheduledDelivery *time.Time            `json:"scheduled_delivery,omitempty"`
	ActualDelivery    *time.Time            `json:"actual_delivery,omitempty"`
	Delayed           bool                  `json:"delayed"`
	DelayReason       *string               `json:"delay_reason,omitempty"`
	Stages            []Stage               `json:"stages"`
}

func NewView(sh *models.Shipment) *View {
	status := models.ParseShipmentStatus(sh.Status)
	v := &View{
		TrackingNumber:    sh.TrackingNumber,
		Status:            status,
		RawStatus:         sh.Status,
		Headline:          Headline(status),
		OriginState:       sh.OriginState,
		DestinationState:  sh.DestinationState,
		EstimatedDays:     sh.EstimatedDays,
		ScheduledDelivery: sh.ScheduledDelivery,
		Stages:            Progress(status),
	}
	switch status {
	case models.ShipmentStatusDelayed:
		v.Delayed = true
		v.DelayReason = sh.DelayReason
	case models.ShipmentStatusDelivered:
		v.ActualDelivery = sh.ActualDelivery
	}
	return v
}
