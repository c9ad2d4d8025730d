package model

import (
	"time"

	"spacebook/pkg/timeslot"
)

type Reservation struct {
	ID          string         `json:"id,omitempty" bson:"_id,omitempty"`
	SpaceID     string         `json:"space_id" bson:"space_id"`
	RequesterID string         `json:"requester_id" bson:"requester_id"`
	Date        string         `json:"date" bson:"date"`
	StartTime   timeslot.Clock `json:"start_time" bson:"start_time"`
	EndTime     timeslot.Clock `json:"end_time" bson:"end_time"`
	Note        string         `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}

// Slot returns the interval occupied by the reservation.
func (r *Reservation) Slot() timeslot.TimeSlot {
	return timeslot.TimeSlot{Start: r.StartTime, End: r.EndTime}
}

// ReservationRequest is the admission input as received from the transport
// layer. Requester may be an account id or an email address.
type ReservationRequest struct {
	SpaceID   string `json:"space_id" validate:"required,max=64"`
	Requester string `json:"requester" validate:"required,max=120"`
	Date      string `json:"date" validate:"required,date_ymd"`
	StartTime string `json:"start_time" validate:"required,clock_hhmm"`
	Note      string `json:"note,omitempty" validate:"omitempty,max=300"`
}

// ReservationFilter narrows reservation listings. Empty fields match all.
type ReservationFilter struct {
	SpaceIDs []string
	Date     string
}

// ReservationSummary is the listing view of a reservation with its space and
// requester resolved.
type ReservationSummary struct {
	ID             string `json:"id"`
	SpaceID        string `json:"space_id"`
	SpaceName      string `json:"space_name"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Note           string `json:"note,omitempty"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	RequesterCPF   string `json:"requester_cpf"`
}
