package storage

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/BearBump/FreightSite/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnknownTable = errors.New("unknown table")
	ErrEmptyRow     = errors.New("empty row")
)

const (
	TableShipments                 = "shipments"
	TableContactPageSubmissions    = "contact_page_submissions"
	TableConsultationRequests      = "consultation_requests"
	TablePartnerApplications       = "partner_applications"
	TableContactSubmissionsFrieght = "contact_submissions_frieght"
)

var knownTables = map[string]struct{}{
	TableShipments:                 {},
	TableContactPageSubmissions:    {},
	TableConsultationRequests:      {},
	TablePartnerApplications:       {},
	TableContactSubmissionsFrieght: {},
}

// Builder строит SQL для обоих бэкендов; отличается только формат плейсхолдеров.
type Builder struct {
	qb sq.StatementBuilderType
}

func NewBuilder(ph sq.PlaceholderFormat) Builder {
	return Builder{qb: sq.StatementBuilder.PlaceholderFormat(ph)}
}

func CheckTable(table string) error {
	if _, ok := knownTables[table]; !ok {
		return errors.Wrapf(ErrUnknownTable, "table %q", table)
	}
	return nil
}

func (b Builder) SelectOne(table string, filter sq.Eq) (string, []any, error) {
	if err := CheckTable(table); err != nil {
		return "", nil, err
	}
	q := b.qb.Select("*").From(table).Limit(1)
	if len(filter) > 0 {
		q = q.Where(filter)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "build select")
	}
	return sql, args, nil
}

func (b Builder) Insert(table string, row models.Row) (string, []any, error) {
	if err := CheckTable(table); err != nil {
		return "", nil, err
	}
	if len(row) == 0 {
		return "", nil, ErrEmptyRow
	}
	sql, args, err := b.qb.Insert(table).
		SetMap(map[string]any(row)).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "build insert")
	}
	return sql, args, nil
}

// ShipmentFilter matches one tracking number exactly.
func ShipmentFilter(trackingNumber string) sq.Eq {
	return sq.Eq{"tracking_number": models.NormalizeTrackingNumber(trackingNumber)}
}
