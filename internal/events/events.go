package events

import (
	"context"
	"time"

	"spacebook/pkg/model"
)

const (
	TypeReservationCreated = "reservation.created"
	TypeReservationDeleted = "reservation.deleted"

	SchemaVersion = "1"
	Source        = "spacebook-reservations"
)

// ReservationEvent is the payload published when a reservation is admitted
// or removed.
type ReservationEvent struct {
	Type        string             `json:"type"`
	Reservation *model.Reservation `json:"reservation"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func NewReservationEvent(eventType string, r *model.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:        eventType,
		Reservation: r,
		OccurredAt:  at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, ReservationEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
