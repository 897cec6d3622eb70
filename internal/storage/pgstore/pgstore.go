package pgstore

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/BearBump/FreightSite/internal/models"
	"github.com/BearBump/FreightSite/internal/storage"
)

const (
	maxConns        = 10
	maxConnLifetime = time.Hour
)

type Storage struct {
	db *pgxpool.Pool
	qb storage.Builder
}

// New подключается к Postgres, ждёт готовности базы не дольше connectWait
// и создаёт схему, если её ещё нет.
func New(ctx context.Context, connString string, connectWait time.Duration) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, errors.Wrap(err, "parse pg config")
	}
	cfg.MaxConns = maxConns
	cfg.MaxConnLifetime = maxConnLifetime

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "connect pg")
	}

	if err := ping(ctx, db, connectWait); err != nil {
		db.Close()
		return nil, err
	}

	s := &Storage{db: db, qb: storage.NewBuilder(sq.Dollar)}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func ping(ctx context.Context, db *pgxpool.Pool, wait time.Duration) error {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(500*time.Millisecond),
		backoff.WithMaxInterval(5*time.Second),
		backoff.WithMaxElapsedTime(wait),
	)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := db.Ping(ctx)
		if err != nil {
			slog.Warn("postgres is not ready", "attempt", attempt, "error", err.Error())
		}
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return errors.Wrapf(err, "postgres is not ready after %s", wait)
	}
	return nil
}

func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return errors.Wrap(s.db.Ping(ctx), "ping pg")
}

func (s *Storage) SelectOne(ctx context.Context, table string, filter sq.Eq) (models.Row, error) {
	q, args, err := s.qb.SelectOne(table, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", table)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", table)
	}
	return models.Row(row), nil
}

func (s *Storage) Insert(ctx context.Context, table string, row models.Row) (models.Row, error) {
	q, args, err := s.qb.Insert(table, row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "insert %s", table)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, errors.Wrapf(err, "insert %s", table)
	}
	return models.Row(created), nil
}

func (s *Storage) GetShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Shipment, error) {
	row, err := s.SelectOne(ctx, storage.TableShipments, storage.ShipmentFilter(trackingNumber))
	if err != nil {
		return nil, err
	}
	return models.ShipmentFromRow(row)
}
