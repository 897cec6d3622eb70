// Package cache описывает кэш и лимитер, которыми пользуются сервисы сайта.
package cache

import (
	"context"
	"time"
)

type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Decision is the limiter verdict for one request.
type Decision struct {
	Allowed bool
	// Count: сколько запросов уже учтено в текущем окне, включая этот.
	Count     int64
	Remaining int64
	// RetryAfter: сколько осталось до конца окна.
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (Decision, error)
}

func ShipmentKey(trackingNumber string) string {
	return "shipment:" + trackingNumber
}

func SubmitLimitKey(clientID string) string {
	return "rl:submit:" + clientID
}
