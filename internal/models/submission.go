package models

import "time"

// SubmissionStatusNew: начальный статус любой заявки, дальше её ведут во внешней CRM.
const SubmissionStatusNew = "new"

// Служебные колонки, которые есть в каждой таблице заявок.
const (
	ColumnID        = "id"
	ColumnSource    = "source"
	ColumnStatus    = "status"
	ColumnCreatedAt = "created_at"
)

type Submission struct {
	ID        string
	Kind      string
	Table     string
	Source    string
	Status    string
	Fields    map[string]*string
	CreatedAt time.Time
}

// SubmissionFromRow builds a Submission from the row returned by the store.
// Only the declared field columns end up in Fields.
func SubmissionFromRow(kind, table string, fields []string, row Row) (*Submission, error) {
	out := &Submission{
		Kind:   kind,
		Table:  table,
		Fields: make(map[string]*string, len(fields)),
	}
	out.ID, _ = row.String(ColumnID)
	out.Source, _ = row.String(ColumnSource)
	out.Status, _ = row.String(ColumnStatus)

	createdAt, err := row.TimePtr(ColumnCreatedAt)
	if err != nil {
		return nil, err
	}
	if createdAt != nil {
		out.CreatedAt = *createdAt
	}

	for _, f := range fields {
		out.Fields[f] = row.StringPtr(f)
	}
	return out, nil
}
