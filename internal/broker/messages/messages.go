// Package messages содержит события, которыми сайт обменивается через kafka.
package messages

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ShipmentUpdated публикует операционная система, когда меняется отгрузка.
// Сайту достаточно номера: по нему сбрасывается кэш.
type ShipmentUpdated struct {
	TrackingNumber string `json:"tracking_number"`
}

// SubmissionCreated уходит после успешной записи заявки.
type SubmissionCreated struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Table     string    `json:"table"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func ParseShipmentUpdated(value []byte) (ShipmentUpdated, error) {
	var m ShipmentUpdated
	if err := json.Unmarshal(value, &m); err != nil {
		return m, errors.Wrap(err, "decode shipment.updated")
	}
	m.TrackingNumber = strings.TrimSpace(m.TrackingNumber)
	if m.TrackingNumber == "" {
		return m, errors.New("shipment.updated: empty tracking_number")
	}
	return m, nil
}
