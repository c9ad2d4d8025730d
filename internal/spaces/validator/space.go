package validator

import (
	"spacebook/pkg/model"
	"spacebook/pkg/timeslot"
	"spacebook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type SpaceValidator struct {
	validate *validator.Validate
}

func NewSpaceValidator() (*SpaceValidator, error) {
	v, err := validation.New()
	if err != nil {
		return nil, err
	}
	return &SpaceValidator{validate: v}, nil
}

func (v *SpaceValidator) Validate(space *model.Space) error {
	if err := validation.Struct(v.validate, space); err != nil {
		return err
	}
	return v.validateBusinessRules(space)
}

func (v *SpaceValidator) ValidateUpdate(update *model.SpaceUpdate) error {
	return validation.Struct(v.validate, update)
}

// validateBusinessRules rejects durations that cannot produce a single slot
// in the operating window.
func (v *SpaceValidator) validateBusinessRules(space *model.Space) error {
	if _, err := timeslot.Generate(space.SlotDurationMin); err != nil {
		return validation.ValidationErrors{{
			Field:   "slot_duration_min",
			Message: err.Error(),
		}}
	}
	return nil
}
