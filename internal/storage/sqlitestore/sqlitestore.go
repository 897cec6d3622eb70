// Package sqlitestore is the embedded backend of the tabular store, used for
// local runs and tests where no Postgres is available.
package sqlitestore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/BearBump/FreightSite/internal/models"
	"github.com/BearBump/FreightSite/internal/storage"
)

type Storage struct {
	db *sql.DB
	qb storage.Builder
}

// New открывает файл базы (":memory:" для базы в памяти) и создаёт схему.
func New(ctx context.Context, path string) (*Storage, error) {
	if path == "" {
		path = "freightsite.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, errors.Wrap(err, "create dirs")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// одно соединение: иначе каждая новая коннекция к ":memory:" видит пустую базу
	db.SetMaxOpenConns(1)

	s := &Storage{db: db, qb: storage.NewBuilder(sq.Question)}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return errors.Wrap(s.db.PingContext(ctx), "ping sqlite")
}

func (s *Storage) SelectOne(ctx context.Context, table string, filter sq.Eq) (models.Row, error) {
	q, args, err := s.qb.SelectOne(table, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", table)
	}
	defer func() { _ = rows.Close() }()

	row, err := scanOne(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", table)
	}
	return row, nil
}

func (s *Storage) Insert(ctx context.Context, table string, row models.Row) (models.Row, error) {
	q, args, err := s.qb.Insert(table, row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "insert %s", table)
	}
	defer func() { _ = rows.Close() }()

	created, err := scanOne(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "insert %s", table)
	}
	return created, nil
}

func (s *Storage) GetShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Shipment, error) {
	row, err := s.SelectOne(ctx, storage.TableShipments, storage.ShipmentFilter(trackingNumber))
	if err != nil {
		return nil, err
	}
	return models.ShipmentFromRow(row)
}

// Exec нужен стендам и тестам, чтобы заводить отгрузки.
func (s *Storage) Exec(ctx context.Context, q string, args ...any) error {
	_, err := s.db.ExecContext(ctx, q, args...)
	return errors.Wrap(err, "exec")
}

func scanOne(rows *sql.Rows) (models.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, storage.ErrNotFound
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	out := make(models.Row, len(cols))
	for i, c := range cols {
		out[c] = values[i]
	}
	return out, rows.Err()
}
