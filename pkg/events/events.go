// Package events carries domain notifications out of the console and the
// persistence API. Confirmation messaging is simulated: events are published
// to Kafka (or only logged) and nothing is delivered to a patient.
package events

import (
	"context"
	"curoo/pkg/kafka"
	"curoo/pkg/logger"
	"curoo/pkg/middleware"
	"time"
)

const (
	AppointmentRequested     = "appointment.requested"
	AppointmentCreated       = "appointment.created"
	AppointmentUpdated       = "appointment.updated"
	AppointmentStatusChanged = "appointment.status_changed"
	AppointmentDeleted       = "appointment.deleted"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(eventType, key string, payload any) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher only records events in the log.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.log.Info("Event emitted",
		"request_id", middleware.RequestID(ctx),
		"event_type", event.Type,
		"key", event.Key,
		"occurred_at", event.OccurredAt,
	)
	return nil
}

// KafkaPublisher writes events to a Kafka topic, keyed by entity id.
type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	builder := kafka.NewMessage().
		WithKey(event.Key).
		WithValue(event).
		WithEventType(event.Type).
		WithSource(p.source).
		WithTimestamp(event.OccurredAt)
	if requestID := middleware.RequestID(ctx); requestID != "" {
		builder.WithCorrelationID(requestID)
	}

	msg, err := builder.Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
