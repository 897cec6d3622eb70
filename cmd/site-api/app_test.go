package main

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	siteapi "github.com/BearBump/FreightSite/internal/api/site_api"
	"github.com/BearBump/FreightSite/internal/broker/kafka"
	"github.com/BearBump/FreightSite/internal/forms"
	"github.com/BearBump/FreightSite/internal/services/submissions"
	"github.com/BearBump/FreightSite/internal/services/tracking"
	"github.com/BearBump/FreightSite/internal/storage/sqlitestore"
	"github.com/BearBump/FreightSite/internal/web"
)

// fakeConsumer сначала падает, потом отдаёт одно сообщение и ждёт отмены.
type fakeConsumer struct {
	calls atomic.Int32
}

func (c *fakeConsumer) Consume(ctx context.Context, handler kafka.Handler) error {
	if c.calls.Add(1) == 1 {
		return errors.New("broker not available")
	}
	if err := handler(ctx, []byte("AB123"), []byte(`{"tracking_number":"AB123"}`)); err != nil {
		return err
	}
	<-ctx.Done()
	return ctx.Err()
}

type countingInvalidator struct {
	n atomic.Int32
}

func (i *countingInvalidator) HandleShipmentUpdated(context.Context, []byte) error {
	i.n.Add(1)
	return nil
}

func TestRunSite_ServesAndConsumes(t *testing.T) {
	st, err := sqlitestore.New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer st.Close()

	pages, err := web.New()
	require.NoError(t, err)

	reg := forms.NewRegistry(time.Second, time.Minute)
	api := siteapi.New(tracking.New(st, nil, 0), submissions.New(st, nil, ""), reg, pages, siteapi.Options{})

	addrCh := make(chan string, 1)
	opts := siteOpts{
		httpAddr:   "127.0.0.1:0",
		topic:      "shipment.updated",
		sweepEvery: 10 * time.Millisecond,
		onListen:   func(addr string) { addrCh <- addr },
	}

	consumer := &fakeConsumer{}
	inv := &countingInvalidator{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- runSite(ctx, opts, api.Router(), inv, consumer, reg) }()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// первая попытка падает, backoff перезапускает чтение
	require.Eventually(t, func() bool { return inv.n.Load() == 1 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("runSite did not stop")
	}
}

func TestRunSite_ListenError(t *testing.T) {
	err := runSite(context.Background(), siteOpts{httpAddr: "bad-addr"}, http.NotFoundHandler(), nil, nil, nil)
	require.Error(t, err)
}

func TestSecondsOr(t *testing.T) {
	require.Equal(t, 5*time.Second, secondsOr(0, 5*time.Second))
	require.Equal(t, 3*time.Second, secondsOr(3, 5*time.Second))
}
