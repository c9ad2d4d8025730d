package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountserrors "spacebook/internal/accounts/errors"
	"spacebook/internal/events"
	reservationserrors "spacebook/internal/reservations/errors"
	"spacebook/internal/reservations/repository"
	"spacebook/internal/reservations/validator"
	spaceserrors "spacebook/internal/spaces/errors"
	"spacebook/pkg/clock"
	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"
	"spacebook/pkg/timeslot"
	"spacebook/pkg/validation"

	"github.com/google/uuid"
)

// SpaceStore is the read side of the space repository.
type SpaceStore interface {
	FindByID(ctx context.Context, id string) (*model.Space, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Space, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]*model.Space, error)
}

type AccountStore interface {
	Resolve(ctx context.Context, identifier string) (*model.Requester, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Requester, error)
}

type ReservationService interface {
	Create(ctx context.Context, req *model.ReservationRequest) (*model.ReservationSummary, error)
	Availability(ctx context.Context, spaceID, date string) ([]timeslot.TimeSlot, error)
	List(ctx context.Context, spaceID, institutionID string) ([]*model.ReservationSummary, error)
	GetByID(ctx context.Context, id string) (*model.ReservationSummary, error)
	Delete(ctx context.Context, id string) error
}

type Options struct {
	// EnforceHorizon rejects dates before today or beyond the space's
	// max advance days.
	EnforceHorizon bool
}

type reservationService struct {
	repo      repository.ReservationRepository
	spaces    SpaceStore
	accounts  AccountStore
	publisher events.Publisher
	validator *validator.ReservationValidator
	clock     clock.Clock
	opts      Options
	locks     *keyedMutex
	log       *logger.Logger
}

func NewReservationService(
	repo repository.ReservationRepository,
	spaces SpaceStore,
	accounts AccountStore,
	publisher events.Publisher,
	validator *validator.ReservationValidator,
	clock clock.Clock,
	opts Options,
	log *logger.Logger,
) ReservationService {
	return &reservationService{
		repo:      repo,
		spaces:    spaces,
		accounts:  accounts,
		publisher: publisher,
		validator: validator,
		clock:     clock,
		opts:      opts,
		locks:     newKeyedMutex(),
		log:       log,
	}
}

// Create admits a reservation or returns the reason it was refused. The
// conflict check and the insert run under the (space, date) lock, in process
// and in storage.
func (s *reservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.ReservationSummary, error) {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.log.Warn("Reservation validation failed",
			"space_id", req.SpaceID,
			"date", req.Date,
			"start_time", req.StartTime,
			"error", err,
		)
		return nil, validationError("Reservation validation failed", err)
	}

	space, err := s.findSpace(ctx, req.SpaceID)
	if err != nil {
		return nil, err
	}

	requester, err := s.accounts.Resolve(ctx, req.Requester)
	if err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Requester", req.Requester)
		}
		s.log.Error("Failed to resolve requester",
			"requester", req.Requester,
			"error", err,
		)
		return nil, apperrors.Storage("Failed to resolve requester", err)
	}

	if !space.Available {
		return nil, apperrors.SpaceUnavailable(fmt.Sprintf("Space '%s' is not accepting reservations", space.ID))
	}

	start, err := timeslot.ParseClock(req.StartTime)
	if err != nil {
		return nil, validationError("Reservation validation failed", err)
	}

	if err := checkSlotDuration(space); err != nil {
		return nil, err
	}

	if err := s.checkHorizon(req.Date, space.MaxAdvanceDays); err != nil {
		return nil, err
	}

	reservation := &model.Reservation{
		ID:          uuid.NewString(),
		SpaceID:     space.ID,
		RequesterID: requester.ID,
		Date:        req.Date,
		StartTime:   start,
		EndTime:     start.Add(space.SlotDurationMin),
		Note:        req.Note,
	}

	unlock, err := s.locks.Lock(ctx, space.ID+"|"+req.Date)
	if err != nil {
		return nil, admissionError(err)
	}
	defer unlock()

	err = s.repo.WithSpaceLock(ctx, space.ID, req.Date, func(ctx context.Context) error {
		// The space may have been reconfigured or deleted since it was read.
		current, err := s.findSpace(ctx, space.ID)
		if err != nil {
			return err
		}
		if !current.Available {
			return apperrors.SpaceUnavailable(fmt.Sprintf("Space '%s' is not accepting reservations", current.ID))
		}
		if err := checkSlotDuration(current); err != nil {
			return err
		}
		space = current
		reservation.EndTime = start.Add(current.SlotDurationMin)

		if !current.MultiBooking {
			existing, err := s.repo.FindBySpaceAndDate(ctx, current.ID, req.Date)
			if err != nil {
				return apperrors.Storage("Failed to load reservations", err)
			}
			occupied := occupiedSlots(existing)
			if i := timeslot.FirstOverlap(reservation.Slot(), occupied); i >= 0 {
				return apperrors.SlotConflict(fmt.Sprintf(
					"Slot %s-%s overlaps an existing reservation (%s-%s)",
					reservation.StartTime, reservation.EndTime, occupied[i].Start, occupied[i].End,
				))
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, reservation); err != nil {
			return apperrors.Storage("Failed to save reservation", err)
		}
		return nil
	})
	if err != nil {
		appErr := admissionError(err)
		if appErr.Code == apperrors.CodeStorage || appErr.Code == apperrors.CodeTimeout {
			s.log.Error("Reservation admission failed",
				"space_id", space.ID,
				"date", req.Date,
				"start_time", req.StartTime,
				"error", err,
			)
		} else {
			s.log.Info("Reservation refused",
				"space_id", space.ID,
				"date", req.Date,
				"start_time", req.StartTime,
				"code", appErr.Code,
			)
		}
		return nil, appErr
	}

	s.log.Info("Reservation created successfully",
		"id", reservation.ID,
		"space_id", reservation.SpaceID,
		"requester_id", reservation.RequesterID,
		"date", reservation.Date,
		"start_time", reservation.StartTime.String(),
		"end_time", reservation.EndTime.String(),
	)
	s.publish(ctx, events.TypeReservationCreated, reservation)

	return summarize(reservation, space, requester), nil
}

// Availability lists the free grid slots of a space on date. Only committed
// reservations are seen; no admission lock is taken.
func (s *reservationService) Availability(ctx context.Context, spaceID, date string) ([]timeslot.TimeSlot, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, apperrors.Validation("Invalid date", map[string]any{
			"date": "must be a date in YYYY-MM-DD format",
		})
	}

	space, err := s.findSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !space.Available {
		return []timeslot.TimeSlot{}, nil
	}

	var occupied []timeslot.TimeSlot
	if !space.MultiBooking {
		existing, err := s.repo.FindBySpaceAndDate(ctx, space.ID, date)
		if err != nil {
			s.log.Error("Failed to load reservations for availability",
				"space_id", space.ID,
				"date", date,
				"error", err,
			)
			return nil, apperrors.Storage("Failed to load reservations", err)
		}
		occupied = occupiedSlots(existing)
	}

	if err := checkSlotDuration(space); err != nil {
		return nil, err
	}
	slots, err := timeslot.Available(space.SlotDurationMin, space.MultiBooking, occupied)
	if err != nil {
		return nil, apperrors.InvalidConfiguration(fmt.Sprintf("Space '%s' has an invalid slot duration: %d", space.ID, space.SlotDurationMin))
	}
	return slots, nil
}

// checkSlotDuration refuses spaces whose stored duration cannot produce a
// slot with end after start.
func checkSlotDuration(space *model.Space) error {
	if space.SlotDurationMin <= 0 {
		return apperrors.InvalidConfiguration(fmt.Sprintf("Space '%s' has an invalid slot duration: %d", space.ID, space.SlotDurationMin))
	}
	return nil
}

// List returns reservation summaries, narrowed to one space or to the spaces
// of one institution. Both filters empty lists everything.
func (s *reservationService) List(ctx context.Context, spaceID, institutionID string) ([]*model.ReservationSummary, error) {
	var spaces []*model.Space
	var err error

	switch {
	case spaceID != "":
		space, findErr := s.findSpace(ctx, spaceID)
		if findErr != nil {
			return nil, findErr
		}
		if institutionID != "" && space.InstitutionID != institutionID {
			return []*model.ReservationSummary{}, nil
		}
		spaces = []*model.Space{space}
	case institutionID != "":
		spaces, err = s.spaces.ListByInstitution(ctx, institutionID)
		if err != nil {
			return nil, apperrors.Storage("Failed to retrieve spaces", err)
		}
		if len(spaces) == 0 {
			return []*model.ReservationSummary{}, nil
		}
	}

	filter := model.ReservationFilter{}
	for _, space := range spaces {
		filter.SpaceIDs = append(filter.SpaceIDs, space.ID)
	}

	reservations, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list reservations",
			"space_id", spaceID,
			"institution_id", institutionID,
			"error", err,
		)
		return nil, apperrors.Storage("Failed to retrieve reservations", err)
	}

	return s.summarizeAll(ctx, reservations, spaces)
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.ReservationSummary, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summarizeAll(ctx, []*model.Reservation{reservation}, nil)
	if err != nil {
		return nil, err
	}
	return summaries[0], nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		s.log.Error("Failed to delete reservation",
			"id", id,
			"error", err,
		)
		return apperrors.Storage("Failed to delete reservation", err)
	}

	s.log.Info("Reservation deleted successfully",
		"id", id,
		"space_id", reservation.SpaceID,
		"date", reservation.Date,
	)
	s.publish(ctx, events.TypeReservationDeleted, reservation)
	return nil
}

func (s *reservationService) findSpace(ctx context.Context, id string) (*model.Space, error) {
	space, err := s.spaces.FindByID(ctx, id)
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

func (s *reservationService) findReservation(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		s.log.Error("Failed to get reservation by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Storage("Failed to retrieve reservation", err)
	}
	return reservation, nil
}

// checkHorizon compares calendar days in the clock's zone. Production wires
// clock.NewSystem(nil), so "today" is the process local date.
func (s *reservationService) checkHorizon(date string, maxAdvanceDays int) error {
	if !s.opts.EnforceHorizon {
		return nil
	}

	day, err := timeslot.ParseDate(date)
	if err != nil {
		return validationError("Reservation validation failed", err)
	}

	y, m, d := s.clock.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	last := today.AddDate(0, 0, maxAdvanceDays)

	if day.Before(today) {
		return apperrors.HorizonExceeded(fmt.Sprintf("Date %s is in the past", date))
	}
	if day.After(last) {
		return apperrors.HorizonExceeded(fmt.Sprintf(
			"Date %s is more than %d days ahead (last bookable day is %s)",
			date, maxAdvanceDays, last.Format(timeslot.DateLayout),
		)).WithDetails(map[string]any{
			"max_advance_days": maxAdvanceDays,
			"last_date":        last.Format(timeslot.DateLayout),
		})
	}
	return nil
}

// publish reports the event without failing the request; the reservation is
// already committed.
func (s *reservationService) publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	event := events.NewReservationEvent(eventType, reservation, s.clock.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
	}
}

func (s *reservationService) sanitize(req *model.ReservationRequest) {
	req.SpaceID = sanitizer.TrimAndNormalize(req.SpaceID)
	req.Requester = sanitizer.SanitizeIdentifier(req.Requester)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.StartTime = sanitizer.TrimAndNormalize(req.StartTime)
	req.Note = sanitizer.NormalizeNote(req.Note)
}

func (s *reservationService) summarizeAll(ctx context.Context, reservations []*model.Reservation, known []*model.Space) ([]*model.ReservationSummary, error) {
	spaces := make(map[string]*model.Space, len(known))
	for _, space := range known {
		spaces[space.ID] = space
	}

	var missingSpaces []string
	requesterIDs := make([]string, 0, len(reservations))
	seen := make(map[string]bool)
	for _, r := range reservations {
		if _, ok := spaces[r.SpaceID]; !ok && !seen["s:"+r.SpaceID] {
			seen["s:"+r.SpaceID] = true
			missingSpaces = append(missingSpaces, r.SpaceID)
		}
		if !seen["r:"+r.RequesterID] {
			seen["r:"+r.RequesterID] = true
			requesterIDs = append(requesterIDs, r.RequesterID)
		}
	}

	if len(missingSpaces) > 0 {
		found, err := s.spaces.FindByIDs(ctx, missingSpaces)
		if err != nil {
			return nil, apperrors.Storage("Failed to retrieve spaces", err)
		}
		for _, space := range found {
			spaces[space.ID] = space
		}
	}

	requesters := make(map[string]*model.Requester, len(requesterIDs))
	if len(requesterIDs) > 0 {
		found, err := s.accounts.FindByIDs(ctx, requesterIDs)
		if err != nil {
			return nil, apperrors.Storage("Failed to retrieve requesters", err)
		}
		for _, requester := range found {
			requesters[requester.ID] = requester
		}
	}

	summaries := make([]*model.ReservationSummary, 0, len(reservations))
	for _, r := range reservations {
		summaries = append(summaries, summarize(r, spaces[r.SpaceID], requesters[r.RequesterID]))
	}
	return summaries, nil
}

// summarize tolerates a missing space or requester; their fields stay empty.
func summarize(r *model.Reservation, space *model.Space, requester *model.Requester) *model.ReservationSummary {
	summary := &model.ReservationSummary{
		ID:        r.ID,
		SpaceID:   r.SpaceID,
		Date:      timeslot.FormatDisplayDate(r.Date),
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
		Note:      r.Note,
	}
	if space != nil {
		summary.SpaceName = space.Name
	}
	if requester != nil {
		summary.RequesterName = requester.Name
		summary.RequesterEmail = requester.Email
		summary.RequesterCPF = requester.CPF
	}
	return summary
}

func occupiedSlots(reservations []*model.Reservation) []timeslot.TimeSlot {
	slots := make([]timeslot.TimeSlot, 0, len(reservations))
	for _, r := range reservations {
		slots = append(slots, r.Slot())
	}
	return slots
}

func validationError(message string, err error) *apperrors.AppError {
	var errs validation.ValidationErrors
	if errors.As(err, &errs) {
		return apperrors.Validation(message, map[string]any{"errors": errs})
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}

// admissionError maps lock and storage failures of an admission to AppError.
func admissionError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, reservationserrors.ErrSpaceNotFound):
		return apperrors.NotFound("Space")
	case errors.Is(err, reservationserrors.ErrLockTimeout):
		return apperrors.Timeout("Timed out waiting for concurrent reservations on this space")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.Timeout("Reservation request cancelled before it was saved")
	default:
		return apperrors.Storage("Failed to save reservation", err)
	}
}
