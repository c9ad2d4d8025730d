package model

import "time"

// Space is a bookable resource published by an institution.
type Space struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty"`
	InstitutionID   string    `json:"institution_id" bson:"institution_id" validate:"required,max=64"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2,max=80"`
	Type            string    `json:"type" bson:"type" validate:"required,min=2,max=50"`
	Description     string    `json:"description,omitempty" bson:"description" validate:"omitempty,max=200"`
	MultiBooking    bool      `json:"multi_booking" bson:"multi_booking"`
	Available       bool      `json:"available" bson:"available"`
	SlotDurationMin int       `json:"slot_duration_min" bson:"slot_duration_min" validate:"required,min=1,max=840"`
	MaxAdvanceDays  int       `json:"max_advance_days" bson:"max_advance_days" validate:"min=0,max=365"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// SpaceInput is the create payload. Pointer fields distinguish "absent" from
// an explicit zero so configuration defaults only apply to omitted fields.
type SpaceInput struct {
	InstitutionID   string `json:"institution_id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Description     string `json:"description,omitempty"`
	MultiBooking    *bool  `json:"multi_booking,omitempty"`
	Available       *bool  `json:"available,omitempty"`
	SlotDurationMin *int   `json:"slot_duration_min,omitempty"`
	MaxAdvanceDays  *int   `json:"max_advance_days,omitempty"`
}

type SpaceUpdate struct {
	Name            string  `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	Type            string  `json:"type,omitempty" validate:"omitempty,min=2,max=50"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=200"`
	MultiBooking    *bool   `json:"multi_booking,omitempty"`
	Available       *bool   `json:"available,omitempty"`
	SlotDurationMin *int    `json:"slot_duration_min,omitempty" validate:"omitempty,min=1,max=840"`
	MaxAdvanceDays  *int    `json:"max_advance_days,omitempty" validate:"omitempty,min=0,max=365"`
}
