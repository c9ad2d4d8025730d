package service

import (
	"context"
	"sync"
	"testing"

	accountsrepo "spacebook/internal/accounts/repository"
	"spacebook/internal/reservations/repository"
	"spacebook/internal/reservations/validator"
	spacesrepo "spacebook/internal/spaces/repository"
	"spacebook/internal/testutil"
	"spacebook/pkg/client"
	"spacebook/pkg/clock"
	"spacebook/pkg/config"
	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

// Two services sharing one database stand in for two replicas: their
// in-process locks are independent, so only the row lock orders them.
func TestCreate_PostgresConcurrentReplicas(t *testing.T) {
	pool := testutil.NewTestPool(t)
	cfg := &config.Config{StorageDriver: config.StoragePostgres, Client: &client.Client{Postgres: pool}}
	ctx := context.Background()

	spaces := spacesrepo.NewPostgresSpaceRepository(cfg)
	accounts := accountsrepo.NewPostgresAccountRepository(cfg)
	reservations := repository.NewPostgresReservationRepository(cfg)

	if err := spaces.Create(ctx, &model.Space{
		ID: "court", InstitutionID: "inst-1", Name: "Court", Type: "court",
		Available: true, SlotDurationMin: 30, MaxAdvanceDays: 7,
	}); err != nil {
		t.Fatalf("seed space: %v", err)
	}
	if err := accounts.Create(ctx, &model.Requester{ID: "user-1", Name: "Ana Souza", Email: "ana@example.com"}); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	v, err := validator.NewReservationValidator()
	if err != nil {
		t.Fatalf("NewReservationValidator() error = %v", err)
	}
	replicas := make([]ReservationService, 2)
	for i := range replicas {
		replicas[i] = NewReservationService(reservations, spaces, accounts, &recordingPublisher{}, v,
			clock.NewFixed(testNow), Options{EnforceHorizon: true}, logger.Discard())
	}

	// Distinct starts within 30 minutes of each other, so every pair overlaps.
	starts := []string{"09:00", "09:05", "09:10", "09:15", "09:20", "09:25", "09:02", "09:12"}
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		admitted  int
		conflicts int
		others    []error
	)
	begin := make(chan struct{})
	for i, start := range starts {
		wg.Add(1)
		go func(svc ReservationService, start string) {
			defer wg.Done()
			<-begin
			_, err := svc.Create(ctx, request("court", "user-1", testDate, start))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case apperrors.HasCode(err, apperrors.CodeSlotConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}(replicas[i%len(replicas)], start)
	}
	close(begin)
	wg.Wait()

	if admitted != 1 || conflicts != len(starts)-1 || len(others) != 0 {
		t.Fatalf("admitted = %d, conflicts = %d, other errors = %v; want 1, %d, none", admitted, conflicts, others, len(starts)-1)
	}

	stored, err := reservations.FindBySpaceAndDate(ctx, "court", testDate)
	if err != nil {
		t.Fatalf("FindBySpaceAndDate() error = %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("stored %d reservations, want 1", len(stored))
	}
}
