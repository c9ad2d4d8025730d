package seed

import (
	"context"
	"errors"
	"fmt"

	accountserrors "spacebook/internal/accounts/errors"
	accountsrepo "spacebook/internal/accounts/repository"
	spaceserrors "spacebook/internal/spaces/errors"
	spacesrepo "spacebook/internal/spaces/repository"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
)

const DemoInstitutionID = "demo-institution"

var (
	DemoMembers = []model.Requester{
		{ID: "demo-member-1", Name: "Ana Souza", Email: "ana.souza@example.com", CPF: "52998224725"},
		{ID: "demo-member-2", Name: "Bruno Lima", Email: "bruno.lima@example.com", CPF: "11144477735"},
	}

	DemoSpaces = []model.Space{
		{
			ID:              "demo-space-court",
			InstitutionID:   DemoInstitutionID,
			Name:            "Quadra Poliesportiva",
			Type:            "sports_court",
			Description:     "Covered court, 30 minute slots",
			Available:       true,
			SlotDurationMin: 30,
			MaxAdvanceDays:  7,
		},
		{
			ID:              "demo-space-auditorium",
			InstitutionID:   DemoInstitutionID,
			Name:            "Auditorio",
			Type:            "auditorium",
			Description:     "Shared auditorium, overlapping reservations allowed",
			MultiBooking:    true,
			Available:       true,
			SlotDurationMin: 60,
			MaxAdvanceDays:  30,
		},
		{
			ID:              "demo-space-lab",
			InstitutionID:   DemoInstitutionID,
			Name:            "Laboratorio de Informatica",
			Type:            "lab",
			Description:     "Closed for maintenance",
			Available:       false,
			SlotDurationMin: 50,
			MaxAdvanceDays:  7,
		},
	}
)

type Result struct {
	SpacesCreated  int
	MembersCreated int
}

// Run inserts the demo institution. Records that already exist are left
// untouched, so running it twice is harmless.
func Run(ctx context.Context, spaces spacesrepo.SpaceRepository, accounts accountsrepo.AccountRepository, log *logger.Logger) (Result, error) {
	var result Result

	for _, m := range DemoMembers {
		member := m
		err := accounts.Create(ctx, &member)
		switch {
		case err == nil:
			result.MembersCreated++
			log.Info("Seeded member", "id", member.ID, "email", member.Email)
		case errors.Is(err, accountserrors.ErrDuplicateEmail):
			log.Debug("Member already present", "id", member.ID)
		default:
			return result, fmt.Errorf("seed member %s: %w", member.ID, err)
		}
	}

	for _, s := range DemoSpaces {
		space := s
		err := spaces.Create(ctx, &space)
		switch {
		case err == nil:
			result.SpacesCreated++
			log.Info("Seeded space", "id", space.ID, "name", space.Name)
		case errors.Is(err, spaceserrors.ErrDuplicateID):
			log.Debug("Space already present", "id", space.ID)
		default:
			return result, fmt.Errorf("seed space %s: %w", space.ID, err)
		}
	}

	return result, nil
}
