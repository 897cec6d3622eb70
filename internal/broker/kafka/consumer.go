package kafka

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/BearBump/FreightSite/internal/metrics"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Handler получает ключ и тело сообщения. Ошибка останавливает чтение без коммита.
type Handler func(ctx context.Context, key, value []byte) error

// Consumer читает события об отгрузках из одного топика.
type Consumer struct {
	r     messageReader
	topic string
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
		// инвалидации до старта сайта не нужны: кэш после рестарта пустой
		StartOffset: kafka.LastOffset,
	}
	if groupID != "" {
		cfg.GroupTopics = []string{topic}
	} else {
		cfg.Topic = topic
	}
	return newConsumerWithReader(kafka.NewReader(cfg), topic)
}

func newConsumerWithReader(r messageReader, topic string) *Consumer {
	return &Consumer{r: r, topic: topic}
}

func (c *Consumer) Close() error {
	return c.r.Close()
}

// Consume читает, пока не отменён ctx или не упал handler.
// При отмене возвращает ctx.Err() без обёртки.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "fetch message")
		}
		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			// без коммита: сообщение перечитается после перезапуска
			metrics.KafkaMessagesTotal.WithLabelValues(c.topic, metrics.ResultFailed).Inc()
			return errors.Wrapf(err, "handle %s offset %d", c.topic, msg.Offset)
		}
		if err := c.r.CommitMessages(ctx, msg); err != nil {
			return errors.Wrap(err, "commit message")
		}
		metrics.KafkaMessagesTotal.WithLabelValues(c.topic, metrics.ResultProcessed).Inc()
	}
}
