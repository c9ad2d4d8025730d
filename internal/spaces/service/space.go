package service

import (
	"context"
	"errors"

	spaceserrors "spacebook/internal/spaces/errors"
	"spacebook/internal/spaces/repository"
	"spacebook/internal/spaces/validator"
	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"
	"spacebook/pkg/validation"

	"github.com/google/uuid"
)

type SpaceService interface {
	Create(ctx context.Context, input *model.SpaceInput) (*model.Space, error)
	GetByID(ctx context.Context, id string) (*model.Space, error)
	List(ctx context.Context, institutionID string) ([]*model.Space, error)
	Update(ctx context.Context, id string, updates *model.SpaceUpdate) (*model.Space, error)
	Delete(ctx context.Context, id string) error
}

// ReservationPurger removes the reservations owned by a space.
type ReservationPurger interface {
	DeleteBySpace(ctx context.Context, spaceID string) (int64, error)
}

// Defaults are applied to fields a create request leaves out.
type Defaults struct {
	SlotDurationMin int
	MaxAdvanceDays  int
}

type spaceService struct {
	repo      repository.SpaceRepository
	purger    ReservationPurger
	validator *validator.SpaceValidator
	defaults  Defaults
	log       *logger.Logger
}

func NewSpaceService(
	repo repository.SpaceRepository,
	purger ReservationPurger,
	validator *validator.SpaceValidator,
	defaults Defaults,
	log *logger.Logger,
) SpaceService {
	return &spaceService{
		repo:      repo,
		purger:    purger,
		validator: validator,
		defaults:  defaults,
		log:       log,
	}
}

func (s *spaceService) Create(ctx context.Context, input *model.SpaceInput) (*model.Space, error) {
	space := s.applyDefaults(input)
	s.sanitize(space)

	if err := s.validator.Validate(space); err != nil {
		s.log.Warn("Space validation failed",
			"name", space.Name,
			"institution_id", space.InstitutionID,
			"error", err,
		)
		return nil, validationError("Space validation failed", err)
	}

	if err := s.repo.Create(ctx, space); err != nil {
		s.log.Error("Failed to create space",
			"name", space.Name,
			"institution_id", space.InstitutionID,
			"error", err,
		)
		return nil, apperrors.Storage("Failed to create space", err)
	}

	s.log.Info("Space created successfully",
		"id", space.ID,
		"name", space.Name,
		"institution_id", space.InstitutionID,
		"slot_duration_min", space.SlotDurationMin,
		"multi_booking", space.MultiBooking,
	)
	return space, nil
}

func (s *spaceService) GetByID(ctx context.Context, id string) (*model.Space, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Space ID cannot be empty")
	}

	space, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Space", id)
		}
		s.log.Error("Failed to get space by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Storage("Failed to retrieve space", err)
	}
	return space, nil
}

func (s *spaceService) List(ctx context.Context, institutionID string) ([]*model.Space, error) {
	spaces, err := s.repo.ListByInstitution(ctx, institutionID)
	if err != nil {
		s.log.Error("Failed to list spaces",
			"institution_id", institutionID,
			"error", err,
		)
		return nil, apperrors.Storage("Failed to retrieve spaces", err)
	}
	return spaces, nil
}

func (s *spaceService) Update(ctx context.Context, id string, updates *model.SpaceUpdate) (*model.Space, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validationError("Space update validation failed", err)
	}

	merged := mergeSpaceUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.log.Warn("Merged space validation failed",
			"id", id,
			"error", err,
		)
		return nil, validationError("Space validation failed", err)
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		if errors.Is(err, spaceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Space", id)
		}
		s.log.Error("Failed to update space",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Storage("Failed to update space", err)
	}

	s.log.Info("Space updated successfully", "id", id)
	return merged, nil
}

// Delete removes the space and every reservation it owns.
func (s *spaceService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	purged, err := s.purger.DeleteBySpace(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete space reservations",
			"id", id,
			"error", err,
		)
		return apperrors.Storage("Failed to delete space reservations", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, spaceserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Space", id)
		}
		s.log.Error("Failed to delete space",
			"id", id,
			"error", err,
		)
		return apperrors.Storage("Failed to delete space", err)
	}

	s.log.Info("Space deleted successfully",
		"id", id,
		"reservations_deleted", purged,
	)
	return nil
}

func (s *spaceService) applyDefaults(input *model.SpaceInput) *model.Space {
	space := &model.Space{
		ID:              uuid.NewString(),
		InstitutionID:   input.InstitutionID,
		Name:            input.Name,
		Type:            input.Type,
		Description:     input.Description,
		MultiBooking:    false,
		Available:       true,
		SlotDurationMin: s.defaults.SlotDurationMin,
		MaxAdvanceDays:  s.defaults.MaxAdvanceDays,
	}
	if input.MultiBooking != nil {
		space.MultiBooking = *input.MultiBooking
	}
	if input.Available != nil {
		space.Available = *input.Available
	}
	if input.SlotDurationMin != nil {
		space.SlotDurationMin = *input.SlotDurationMin
	}
	if input.MaxAdvanceDays != nil {
		space.MaxAdvanceDays = *input.MaxAdvanceDays
	}
	return space
}

func (s *spaceService) sanitize(space *model.Space) {
	space.InstitutionID = sanitizer.TrimAndNormalize(space.InstitutionID)
	space.Name = sanitizer.NormalizeName(space.Name)
	space.Type = sanitizer.SanitizeSpaceType(space.Type)
	space.Description = sanitizer.TrimAndNormalize(space.Description)
}

func mergeSpaceUpdates(existing *model.Space, updates *model.SpaceUpdate) *model.Space {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Type != "" {
		merged.Type = updates.Type
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.MultiBooking != nil {
		merged.MultiBooking = *updates.MultiBooking
	}
	if updates.Available != nil {
		merged.Available = *updates.Available
	}
	if updates.SlotDurationMin != nil {
		merged.SlotDurationMin = *updates.SlotDurationMin
	}
	if updates.MaxAdvanceDays != nil {
		merged.MaxAdvanceDays = *updates.MaxAdvanceDays
	}
	return &merged
}

func validationError(message string, err error) *apperrors.AppError {
	var errs validation.ValidationErrors
	if errors.As(err, &errs) {
		return apperrors.Validation(message, map[string]any{"errors": errs})
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
