package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Row is one record of the tabular store keyed by column name.
// A nil value is SQL NULL.
type Row map[string]any

var rowTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// String returns the column as text; ok is false for NULL or a missing column.
func (r Row) String(col string) (string, bool) {
	switch v := r[col].(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case [16]byte:
		// pgx отдаёт uuid как [16]byte
		return uuid.UUID(v).String(), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

func (r Row) StringPtr(col string) *string {
	s, ok := r.String(col)
	if !ok {
		return nil
	}
	return &s
}

func (r Row) IntPtr(col string) (*int, error) {
	var n int
	switch v := r[col].(type) {
	case nil:
		return nil, nil
	case int:
		n = v
	case int16:
		n = int(v)
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("column %s: unexpected type %T", col, v)
	}
	return &n, nil
}

func (r Row) TimePtr(col string) (*time.Time, error) {
	switch v := r[col].(type) {
	case nil:
		return nil, nil
	case time.Time:
		t := v.UTC()
		return &t, nil
	case string:
		for _, layout := range rowTimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				t = t.UTC()
				return &t, nil
			}
		}
		return nil, fmt.Errorf("column %s: unparsable time %q", col, v)
	default:
		return nil, fmt.Errorf("column %s: unexpected type %T", col, v)
	}
}

func ShipmentFromRow(row Row) (*Shipment, error) {
	var s Shipment
	var err error

	s.TrackingNumber, _ = row.String("tracking_number")
	s.Status, _ = row.String("status")
	s.OriginState, _ = row.String("origin_state")
	s.DestinationState, _ = row.String("destination_state")
	s.DelayReason = row.StringPtr("delay_reason")

	if s.EstimatedDays, err = row.IntPtr("estimated_days"); err != nil {
		return nil, err
	}
	if s.ScheduledDelivery, err = row.TimePtr("scheduled_delivery"); err != nil {
		return nil, err
	}
	if s.ActualDelivery, err = row.TimePtr("actual_delivery"); err != nil {
		return nil, err
	}
	return &s, nil
}
