package tracking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/BearBump/FreightSite/internal/models"
)

func states(ss ...StageState) []Stage {
	out := make([]Stage, len(ss))
	for i, s := range ss {
		out[i] = Stage{Label: StageLabels[i], State: s}
	}
	return out
}

func TestProgress(t *testing.T) {
	const (
		done = StageCompleted
		cur  = StageCurrent
		pend = StagePending
	)
	cases := []struct {
		status string
		want   []Stage
	}{
		{"picked_up", states(cur, pend, pend, pend)},
		{"PICK_UP_COMPLETE", states(cur, pend, pend, pend)},
		{"pickup_complete", states(cur, pend, pend, pend)},
		{"picked", states(cur, pend, pend, pend)},
		{"in_transit", states(done, cur, pend, pend)},
		{"delayed", states(done, cur, pend, pend)},
		{"out_for_delivery", states(done, done, cur, pend)},
		{"delivered", states(done, done, done, cur)},
		{"pending", states(pend, pend, pend, pend)},
		{"cancelled", states(pend, pend, pend, pend)},
		{"lost_in_space", states(cur, pend, pend, pend)},
		{"", states(cur, pend, pend, pend)},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			got := Progress(models.ParseShipmentStatus(tc.status))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Progress(%q) mismatch (-want +got):\n%s", tc.status, diff)
			}
		})
	}
}

func TestProgress_AtMostOneCurrent(t *testing.T) {
	all := []models.ShipmentStatus{
		models.ShipmentStatusPending, models.ShipmentStatusPickedUp, models.ShipmentStatusInTransit,
		models.ShipmentStatusOutForDelivery, models.ShipmentStatusDelivered, models.ShipmentStatusDelayed,
		models.ShipmentStatusCancelled, models.ShipmentStatusUnknown,
	}
	for _, st := range all {
		stages := Progress(st)
		require.Len(t, stages, 4)

		current := 0
		seenNonCompleted := false
		for _, s := range stages {
			if s.State == StageCurrent {
				current++
			}
			if s.State != StageCompleted {
				seenNonCompleted = true
			} else {
				require.False(t, seenNonCompleted, "completed stage after a non-completed one for %s", st)
			}
		}
		require.LessOrEqual(t, current, 1, st)
	}
}

func TestHeadline(t *testing.T) {
	require.Equal(t, "Delivered Successfully", Headline(models.ShipmentStatusDelivered))
	require.Equal(t, "Delivery Delayed", Headline(models.ShipmentStatusDelayed))
	require.Equal(t, "In Transit", Headline(models.ShipmentStatusInTransit))
	require.Equal(t, "Out for Delivery", Headline(models.ShipmentStatusOutForDelivery))
	require.Equal(t, "Picked Up", Headline(models.ShipmentStatusPickedUp))
	require.Equal(t, "Shipment Cancelled", Headline(models.ShipmentStatusCancelled))
	require.Equal(t, "Processing", Headline(models.ShipmentStatusPending))
	require.Equal(t, "Processing", Headline(models.ShipmentStatusUnknown))
}
