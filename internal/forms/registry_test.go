package forms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistry_ScopedBySessionAndKind(t *testing.T) {
	r := NewRegistry(time.Minute, time.Hour)

	a := r.Form("s1", "contact_page")
	require.Same(t, a, r.Form("s1", "contact_page"))
	require.NotSame(t, a, r.Form("s2", "contact_page"))
	require.NotSame(t, a, r.Form("s1", "footer_contact"))

	a.Set("name", "Jane")
	require.Equal(t, "Jane", r.Peek("s1", "contact_page").Values["name"])
	require.Empty(t, r.Peek("s2", "contact_page").Values)
	require.Empty(t, r.Peek("s3", "consultation").Values)
	require.Equal(t, 2, r.Len())

	r.Sweep()
}

func TestRegistry_SweepIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Minute, 10*time.Minute)
	r.now = func() time.Time { return now }

	f := r.Form("old", "contact_page")
	require.NoError(t, f.Submit(context.Background(), ok))

	now = now.Add(5 * time.Minute)
	r.Form("fresh", "contact_page")

	now = now.Add(6 * time.Minute)
	require.Equal(t, 1, r.Sweep())
	require.Equal(t, 1, r.Len())
	require.Empty(t, r.Peek("old", "contact_page").Values)

	now = now.Add(time.Hour)
	require.Equal(t, 1, r.Sweep())
	require.Zero(t, r.Len())
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	r := NewRegistry(time.Minute, time.Millisecond)
	r.Form("s", "contact_page")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- r.Run(ctx, 5*time.Millisecond) }()

	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
