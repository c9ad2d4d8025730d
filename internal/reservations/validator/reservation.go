package validator

import (
	"spacebook/pkg/model"
	"spacebook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ReservationValidator struct {
	validate *validator.Validate
}

func NewReservationValidator() (*ReservationValidator, error) {
	v, err := validation.New()
	if err != nil {
		return nil, err
	}
	return &ReservationValidator{validate: v}, nil
}

func (v *ReservationValidator) Validate(req *model.ReservationRequest) error {
	return validation.Struct(v.validate, req)
}
