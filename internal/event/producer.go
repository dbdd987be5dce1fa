// Package event publishes booking changes to Kafka.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeBookingSaved   = "booking_saved"
	TypeBookingUpdated = "booking_updated"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	Name       string    `json:"name"`
	Customer   string    `json:"customer"`
	Staff      string    `json:"staff"`
	ItemsCount int       `json:"items_count"`
	Total      float64   `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is implemented by Producer and by Noop.
type Publisher interface {
	Publish(ctx context.Context, key string, event BookingEvent) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		log: log.With(zap.String("producer", topic)),
	}
}

// Publish writes one event keyed by booking so a booking's events stay ordered.
func (p *Producer) Publish(ctx context.Context, key string, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event for %s: %w", event.Type, key, err)
	}

	p.log.Debug("Event published", zap.String("type", event.Type), zap.String("key", key))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Noop drops every event; used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, BookingEvent) error { return nil }

func (Noop) Close() error { return nil }
