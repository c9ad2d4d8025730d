package kafka_middleware

import (
	"context"
	"time"

	"spacebook/pkg/kafka"
	"spacebook/pkg/logger"
)

func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.EventID(),
			"event_type", msg.EventType(),
			"correlation_id", msg.CorrelationID(),
			"duration_ms", time.Since(start).Milliseconds(),
		}

		if err != nil {
			attrs = append(attrs, "error", err, "error_type", kafka.ClassifyError(err).String())
			log.Error("Failed to publish kafka message", attrs...)
			return err
		}

		log.Debug("Published kafka message", attrs...)
		return nil
	}
}
