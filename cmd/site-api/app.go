package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/BearBump/FreightSite/internal/broker/kafka"
	"github.com/BearBump/FreightSite/internal/forms"
)

type siteOpts struct {
	httpAddr string

	topic         string
	consumerGroup string

	sweepEvery time.Duration

	onListen func(httpAddr string)
}

type kafkaConsumer interface {
	Consume(ctx context.Context, handler kafka.Handler) error
}

type shipmentInvalidator interface {
	HandleShipmentUpdated(ctx context.Context, value []byte) error
}

// runSite поднимает HTTP-сервер, чистильщик сессий форм и, если есть kafka,
// консьюмер инвалидаций. Всё останавливается вместе с ctx.
func runSite(ctx context.Context, opts siteOpts, handler http.Handler, inv shipmentInvalidator, consumer kafkaConsumer, reg *forms.Registry) error {
	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runHTTPServer(ctx, lis, handler)
	})

	if reg != nil && opts.sweepEvery > 0 {
		g.Go(func() error {
			return reg.Run(ctx, opts.sweepEvery)
		})
	}

	if consumer != nil {
		g.Go(func() error {
			slog.Info("kafka consumer started", "topic", opts.topic, "group", opts.consumerGroup)
			runConsumer(ctx, consumer, inv)
			return nil
		})
	}

	return g.Wait()
}

func runHTTPServer(ctx context.Context, lis net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("HTTP server listening", "addr", lis.Addr().String())
	err := srv.Serve(lis)
	if errors.Is(err, http.ErrServerClosed) {
		// сервер закрылся по ctx, наружу отдаём причину
		return ctx.Err()
	}
	return err
}

// runConsumer перезапускает чтение после ошибок брокера, пока жив ctx:
// недоступная kafka не должна ронять сайт.
func runConsumer(ctx context.Context, consumer kafkaConsumer, inv shipmentInvalidator) {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(time.Second),
		backoff.WithMaxInterval(30*time.Second),
		backoff.WithMaxElapsedTime(0),
	)
	_ = backoff.RetryNotify(func() error {
		err := consumer.Consume(ctx, func(ctx context.Context, _ []byte, value []byte) error {
			return inv.HandleShipmentUpdated(ctx, value)
		})
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		slog.Warn("kafka consumer failed, restarting", "err", err, "in", next.String())
	})
}
