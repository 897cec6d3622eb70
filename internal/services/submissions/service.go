// Package submissions turns form input of any variant into one stored row.
package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BearBump/FreightSite/internal/broker/messages"
	"github.com/BearBump/FreightSite/internal/metrics"
	"github.com/BearBump/FreightSite/internal/models"
)

// ErrPersist показывается пользователю, когда хранилище не приняло заявку.
var ErrPersist = errors.New("An error occurred. Please try again.")

type Inserter interface {
	Insert(ctx context.Context, table string, row models.Row) (models.Row, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type Service struct {
	store Inserter
	pub   Publisher
	topic string
	newID func() string
}

// New создаёт сервис. pub может быть nil, тогда события не публикуются.
func New(store Inserter, pub Publisher, topic string) *Service {
	return &Service{
		store: store,
		pub:   pub,
		topic: topic,
		newID: uuid.NewString,
	}
}

// Submit делает ровно одну вставку и ничего не повторяет.
// Ошибка проверки возвращается как *ValidationError, хранилище при этом не трогается.
func (s *Service) Submit(ctx context.Context, v Variant, in Input) (*models.Submission, error) {
	if err := Validate(v, in); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(v.Kind, metrics.ResultInvalid).Inc()
		return nil, err
	}

	row := Normalize(v, in)
	row[models.ColumnID] = s.newID()

	created, err := s.store.Insert(ctx, v.Table, row)
	if err != nil {
		slog.Error("submission insert failed", "kind", v.Kind, "table", v.Table, "err", err)
		metrics.SubmissionsTotal.WithLabelValues(v.Kind, metrics.ResultFailed).Inc()
		return nil, errors.Join(ErrPersist, err)
	}

	sub, err := models.SubmissionFromRow(v.Kind, v.Table, v.FieldNames(), created)
	if err != nil {
		// строка уже записана, поэтому отдаём то, что отправляли
		slog.Warn("decode created submission", "kind", v.Kind, "err", err)
		sub, _ = models.SubmissionFromRow(v.Kind, v.Table, v.FieldNames(), row)
	}
	metrics.SubmissionsTotal.WithLabelValues(v.Kind, metrics.ResultCreated).Inc()
	slog.Info("submission created", "kind", v.Kind, "id", sub.ID)

	s.publish(ctx, sub)
	return sub, nil
}

func (s *Service) publish(ctx context.Context, sub *models.Submission) {
	if s.pub == nil || s.topic == "" {
		return
	}
	b, err := json.Marshal(messages.SubmissionCreated{
		ID:        sub.ID,
		Kind:      sub.Kind,
		Table:     sub.Table,
		Source:    sub.Source,
		CreatedAt: sub.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := s.pub.Publish(ctx, s.topic, []byte(sub.Kind), b); err != nil {
		slog.Warn("publish submission.created failed", "id", sub.ID, "err", err)
	}
}
