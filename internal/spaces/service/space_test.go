package service

import (
	"context"
	"errors"
	"testing"

	spaceserrors "spacebook/internal/spaces/errors"
	"spacebook/internal/spaces/repository"
	"spacebook/internal/spaces/validator"
	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

type mockPurger struct {
	deleteBySpaceFunc func(ctx context.Context, spaceID string) (int64, error)
	calls             []string
}

func (m *mockPurger) DeleteBySpace(ctx context.Context, spaceID string) (int64, error) {
	m.calls = append(m.calls, spaceID)
	if m.deleteBySpaceFunc != nil {
		return m.deleteBySpaceFunc(ctx, spaceID)
	}
	return 0, nil
}

type failingRepository struct {
	repository.SpaceRepository
	err error
}

func (f *failingRepository) Create(ctx context.Context, space *model.Space) error {
	return f.err
}

func (f *failingRepository) FindByID(ctx context.Context, id string) (*model.Space, error) {
	return nil, f.err
}

func newTestService(t *testing.T, repo repository.SpaceRepository, purger ReservationPurger) SpaceService {
	t.Helper()
	v, err := validator.NewSpaceValidator()
	if err != nil {
		t.Fatalf("NewSpaceValidator() error = %v", err)
	}
	return NewSpaceService(repo, purger, v, Defaults{SlotDurationMin: 30, MaxAdvanceDays: 7}, logger.Discard())
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := newTestService(t, repository.NewMemorySpaceRepository(), &mockPurger{})

	space, err := svc.Create(context.Background(), &model.SpaceInput{
		InstitutionID: "inst-1",
		Name:          "  Court   A ",
		Type:          "Sports Court",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if space.ID == "" {
		t.Error("expected generated id")
	}
	if space.Name != "Court A" {
		t.Errorf("Name = %q, want %q", space.Name, "Court A")
	}
	if space.Type != "sports_court" {
		t.Errorf("Type = %q, want %q", space.Type, "sports_court")
	}
	if space.SlotDurationMin != 30 {
		t.Errorf("SlotDurationMin = %d, want 30", space.SlotDurationMin)
	}
	if space.MaxAdvanceDays != 7 {
		t.Errorf("MaxAdvanceDays = %d, want 7", space.MaxAdvanceDays)
	}
	if space.MultiBooking {
		t.Error("MultiBooking should default to false")
	}
	if !space.Available {
		t.Error("Available should default to true")
	}
}

func TestCreate_ExplicitValuesOverrideDefaults(t *testing.T) {
	svc := newTestService(t, repository.NewMemorySpaceRepository(), &mockPurger{})

	space, err := svc.Create(context.Background(), &model.SpaceInput{
		InstitutionID:   "inst-1",
		Name:            "Studio",
		Type:            "room",
		MultiBooking:    boolPtr(true),
		Available:       boolPtr(false),
		SlotDurationMin: intPtr(45),
		MaxAdvanceDays:  intPtr(0),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !space.MultiBooking || space.Available || space.SlotDurationMin != 45 || space.MaxAdvanceDays != 0 {
		t.Errorf("explicit values not kept: %+v", space)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	svc := newTestService(t, repository.NewMemorySpaceRepository(), &mockPurger{})

	tests := []struct {
		name  string
		input *model.SpaceInput
	}{
		{"missing name", &model.SpaceInput{InstitutionID: "inst-1", Type: "room"}},
		{"missing institution", &model.SpaceInput{Name: "Room", Type: "room"}},
		{"zero duration", &model.SpaceInput{InstitutionID: "inst-1", Name: "Room", Type: "room", SlotDurationMin: intPtr(0)}},
		{"negative duration", &model.SpaceInput{InstitutionID: "inst-1", Name: "Room", Type: "room", SlotDurationMin: intPtr(-30)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Errorf("Create() error = %v, want %s", err, apperrors.CodeValidation)
			}
		})
	}
}

func TestCreate_StorageFailure(t *testing.T) {
	svc := newTestService(t, &failingRepository{err: errors.New("disk full")}, &mockPurger{})

	_, err := svc.Create(context.Background(), &model.SpaceInput{InstitutionID: "inst-1", Name: "Room", Type: "room"})
	if !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Errorf("Create() error = %v, want %s", err, apperrors.CodeStorage)
	}
}

func TestGetByID(t *testing.T) {
	svc := newTestService(t, repository.NewMemorySpaceRepository(), &mockPurger{})

	if _, err := svc.GetByID(context.Background(), ""); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("empty id error = %v, want %s", err, apperrors.CodeInvalidInput)
	}
	if _, err := svc.GetByID(context.Background(), "missing"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("missing id error = %v, want %s", err, apperrors.CodeNotFound)
	}
}

func TestGetByID_StorageFailure(t *testing.T) {
	svc := newTestService(t, &failingRepository{err: errors.New("connection reset")}, &mockPurger{})

	_, err := svc.GetByID(context.Background(), "space-1")
	if !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Errorf("GetByID() error = %v, want %s", err, apperrors.CodeStorage)
	}
}

func TestList_FiltersByInstitution(t *testing.T) {
	svc := newTestService(t, repository.NewMemorySpaceRepository(), &mockPurger{})
	ctx := context.Background()

	for _, in := range []*model.SpaceInput{
		{InstitutionID: "inst-1", Name: "Court B", Type: "court"},
		{InstitutionID: "inst-1", Name: "Court A", Type: "court"},
		{InstitutionID: "inst-2", Name: "Pool", Type: "pool"},
	} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	spaces, err := svc.List(ctx, "inst-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(spaces) != 2 {
		t.Fatalf("List(inst-1) returned %d spaces, want 2", len(spaces))
	}
	if spaces[0].Name != "Court A" || spaces[1].Name != "Court B" {
		t.Errorf("List() not sorted by name: %q, %q", spaces[0].Name, spaces[1].Name)
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(\"\") returned %d spaces, want 3", len(all))
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t, repository.NewMemorySpaceRepository(), &mockPurger{})
	ctx := context.Background()

	space, err := svc.Create(ctx, &model.SpaceInput{InstitutionID: "inst-1", Name: "Room", Type: "room"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	desc := "Second floor"
	updated, err := svc.Update(ctx, space.ID, &model.SpaceUpdate{
		Description:     &desc,
		MultiBooking:    boolPtr(true),
		SlotDurationMin: intPtr(60),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Room" {
		t.Errorf("Name changed to %q", updated.Name)
	}
	if updated.Description != desc || !updated.MultiBooking || updated.SlotDurationMin != 60 {
		t.Errorf("updates not applied: %+v", updated)
	}

	stored, err := svc.GetByID(ctx, space.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.SlotDurationMin != 60 {
		t.Errorf("stored SlotDurationMin = %d, want 60", stored.SlotDurationMin)
	}

	if _, err := svc.Update(ctx, space.ID, &model.SpaceUpdate{SlotDurationMin: intPtr(0)}); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("zero duration update error = %v, want %s", err, apperrors.CodeValidation)
	}
	if _, err := svc.Update(ctx, "missing", &model.SpaceUpdate{}); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("missing space update error = %v, want %s", err, apperrors.CodeNotFound)
	}
}

func TestDelete_PurgesReservations(t *testing.T) {
	repo := repository.NewMemorySpaceRepository()
	purger := &mockPurger{
		deleteBySpaceFunc: func(ctx context.Context, spaceID string) (int64, error) {
			return 3, nil
		},
	}
	svc := newTestService(t, repo, purger)
	ctx := context.Background()

	space, err := svc.Create(ctx, &model.SpaceInput{InstitutionID: "inst-1", Name: "Room", Type: "room"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, space.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(purger.calls) != 1 || purger.calls[0] != space.ID {
		t.Errorf("purger calls = %v, want [%s]", purger.calls, space.ID)
	}
	if _, err := repo.FindByID(ctx, space.ID); !errors.Is(err, spaceserrors.ErrNotFound) {
		t.Errorf("space still present after delete: %v", err)
	}
}

func TestDelete_PurgeFailureKeepsSpace(t *testing.T) {
	repo := repository.NewMemorySpaceRepository()
	purger := &mockPurger{
		deleteBySpaceFunc: func(ctx context.Context, spaceID string) (int64, error) {
			return 0, errors.New("timeout")
		},
	}
	svc := newTestService(t, repo, purger)
	ctx := context.Background()

	space, err := svc.Create(ctx, &model.SpaceInput{InstitutionID: "inst-1", Name: "Room", Type: "room"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, space.ID); !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Fatalf("Delete() error = %v, want %s", err, apperrors.CodeStorage)
	}
	if _, err := repo.FindByID(ctx, space.ID); err != nil {
		t.Errorf("space should survive a failed purge: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	purger := &mockPurger{}
	svc := newTestService(t, repository.NewMemorySpaceRepository(), purger)

	if err := svc.Delete(context.Background(), "missing"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("Delete() error = %v, want %s", err, apperrors.CodeNotFound)
	}
	if len(purger.calls) != 0 {
		t.Errorf("purger should not run for missing space, calls = %v", purger.calls)
	}
}
