// Package tracking отвечает за поиск отгрузки по номеру и её отображение
// в виде четырёх этапов.
package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/BearBump/FreightSite/internal/broker/messages"
	"github.com/BearBump/FreightSite/internal/cache"
	"github.com/BearBump/FreightSite/internal/metrics"
	"github.com/BearBump/FreightSite/internal/models"
	"github.com/BearBump/FreightSite/internal/storage"
)

// Тексты ошибок показываются пользователю как есть.
var (
	ErrEmptyCode    = errors.New("Please enter a tracking number")
	ErrNotFound     = errors.New("Tracking ID not found. Please check and try again.")
	ErrLookupFailed = errors.New("Error fetching tracking information.")
)

type Store interface {
	GetShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Shipment, error)
}

type Service struct {
	store Store
	cache cache.BytesCache
	ttl   time.Duration
}

// New создаёт сервис. c может быть nil, тогда каждый поиск идёт в хранилище.
func New(store Store, c cache.BytesCache, ttl time.Duration) *Service {
	return &Service{store: store, cache: c, ttl: ttl}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

// Lookup ищет отгрузку ровно одним запросом в хранилище, без повторов.
func (s *Service) Lookup(ctx context.Context, raw string) (*View, error) {
	if strings.TrimSpace(raw) == "" {
		metrics.TrackingLookupsTotal.WithLabelValues(metrics.ResultEmpty).Inc()
		return nil, ErrEmptyCode
	}
	code := models.NormalizeTrackingNumber(raw)

	if sh, ok := s.fromCache(ctx, code); ok {
		metrics.TrackingLookupsTotal.WithLabelValues(metrics.ResultFound).Inc()
		return NewView(sh), nil
	}

	sh, err := s.store.GetShipmentByTrackingNumber(ctx, code)
	if errors.Is(err, storage.ErrNotFound) {
		metrics.TrackingLookupsTotal.WithLabelValues(metrics.ResultNotFound).Inc()
		return nil, ErrNotFound
	}
	if err != nil {
		slog.Error("tracking lookup failed", "tracking_number", code, "err", err)
		metrics.TrackingLookupsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, ErrLookupFailed
	}

	s.toCache(ctx, sh)
	metrics.TrackingLookupsTotal.WithLabelValues(metrics.ResultFound).Inc()
	return NewView(sh), nil
}

func (s *Service) fromCache(ctx context.Context, code string) (*models.Shipment, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	b, ok, err := s.cache.Get(ctx, cache.ShipmentKey(code))
	if err != nil {
		slog.Warn("shipment cache get failed", "tracking_number", code, "err", err)
		return nil, false
	}
	if !ok {
		metrics.ShipmentCacheTotal.WithLabelValues(metrics.ResultMiss).Inc()
		return nil, false
	}
	var sh models.Shipment
	if err := json.Unmarshal(b, &sh); err != nil {
		return nil, false
	}
	metrics.ShipmentCacheTotal.WithLabelValues(metrics.ResultHit).Inc()
	return &sh, true
}

// toCache: ошибка кэша не ломает ответ.
func (s *Service) toCache(ctx context.Context, sh *models.Shipment) {
	if !s.cacheEnabled() {
		return
	}
	b, err := json.Marshal(sh)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cache.ShipmentKey(sh.TrackingNumber), b, s.ttl); err != nil {
		slog.Warn("shipment cache set failed", "tracking_number", sh.TrackingNumber, "err", err)
	}
}

func (s *Service) InvalidateShipment(ctx context.Context, trackingNumber string) error {
	if s.cache == nil {
		return nil
	}
	code := models.NormalizeTrackingNumber(trackingNumber)
	if err := s.cache.Delete(ctx, cache.ShipmentKey(code)); err != nil {
		return err
	}
	metrics.ShipmentCacheTotal.WithLabelValues(metrics.ResultInvalidated).Inc()
	return nil
}

// HandleShipmentUpdated обрабатывает сообщение из топика shipment.updated.
// Битые сообщения пропускаются: повторная доставка их не починит.
func (s *Service) HandleShipmentUpdated(ctx context.Context, value []byte) error {
	msg, err := messages.ParseShipmentUpdated(value)
	if err != nil {
		slog.Warn("skip shipment.updated", "err", err)
		return nil
	}
	return s.InvalidateShipment(ctx, msg.TrackingNumber)
}
