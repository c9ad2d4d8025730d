package events

import (
	"context"
	"fmt"

	"spacebook/pkg/kafka"
	kafka_config "spacebook/pkg/kafka/config"
	kafka_middleware "spacebook/pkg/kafka/middleware"
	"spacebook/pkg/logger"
	"spacebook/pkg/middleware"
)

// MessagePublisher is the part of kafka.Producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer MessagePublisher
}

// NewKafkaPublisher opens a producer on topic with request logging enabled
// when the kafka config asks for it.
func NewKafkaPublisher(cfg *kafka_config.Config, topic string, log *logger.Logger) (Publisher, error) {
	producer, err := kafka.NewProducer(cfg, topic, log)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	if cfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(log))
	}
	return NewPublisher(producer), nil
}

func NewPublisher(producer MessagePublisher) Publisher {
	return &kafkaPublisher{producer: producer}
}

// Publish keys messages by space so events of one space stay ordered.
func (p *kafkaPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.Reservation.SpaceID).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		return fmt.Errorf("build %s message: %w", event.Type, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
