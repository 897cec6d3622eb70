package tracking

import "github.com/BearBump/FreightSite/internal/models"

type StageState string

const (
	StageCompleted StageState = "completed"
	StageCurrent   StageState = "current"
	StagePending   StageState = "pending"
)

type Stage struct {
	Label string     `json:"label"`
	State StageState `json:"state"`
}

// StageLabels are the four stages shown to the customer.
var StageLabels = [4]string{"Picked Up", "In Transit", "Out for Delivery", "Delivered"}

// StageIndex возвращает этап, на котором находится отгрузка.
// -1 значит, что ни один этап ещё не начат (pending, cancelled).
// Задержка не отдельный этап: отгрузка всё ещё в пути.
func StageIndex(status models.ShipmentStatus) int {
	switch status {
	case models.ShipmentStatusPickedUp:
		return 0
	case models.ShipmentStatusInTransit, models.ShipmentStatusDelayed:
		return 1
	case models.ShipmentStatusOutForDelivery:
		return 2
	case models.ShipmentStatusDelivered:
		return 3
	case models.ShipmentStatusPending, models.ShipmentStatusCancelled:
		return -1
	default:
		return 0
	}
}

// Progress maps a status onto the four display stages.
func Progress(status models.ShipmentStatus) []Stage {
	idx := StageIndex(status)
	out := make([]Stage, len(StageLabels))
	for i, label := range StageLabels {
		st := StagePending
		switch {
		case i < idx:
			st = StageCompleted
		case i == idx:
			st = StageCurrent
		}
		out[i] = Stage{Label: label, State: st}
	}
	return out
}

func Headline(status models.ShipmentStatus) string {
	switch status {
	case models.ShipmentStatusDelivered:
		return "Delivered Successfully"
	case models.ShipmentStatusDelayed:
		return "Delivery Delayed"
	case models.ShipmentStatusInTransit:
		return "In Transit"
	case models.ShipmentStatusOutForDelivery:
		return "Out for Delivery"
	case models.ShipmentStatusPickedUp:
		return "Picked Up"
	case models.ShipmentStatusCancelled:
		return "Shipment Cancelled"
	default:
		return "Processing"
	}
}
