package repository

import (
	"context"
	"errors"
	"testing"

	accountserrors "spacebook/internal/accounts/errors"
	"spacebook/pkg/model"
)

func TestMemoryAccountRepository_Resolve(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	member := &model.Requester{ID: "user-1", Name: "Ana Souza", Email: "ana@example.com", CPF: "12345678909"}
	if err := repo.Create(ctx, member); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name       string
		identifier string
		wantErr    error
	}{
		{name: "by id", identifier: "user-1"},
		{name: "by email", identifier: "ana@example.com"},
		{name: "unknown id", identifier: "user-2", wantErr: accountserrors.ErrNotFound},
		{name: "unknown email", identifier: "bob@example.com", wantErr: accountserrors.ErrNotFound},
		{name: "empty", identifier: "", wantErr: accountserrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Resolve(ctx, tt.identifier)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.identifier, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.identifier, err)
			}
			if got.ID != "user-1" || got.CPF != "12345678909" {
				t.Errorf("Resolve(%q) = %+v", tt.identifier, got)
			}
		})
	}
}

func TestMemoryAccountRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &model.Requester{ID: "a", Email: "x@example.com"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(ctx, &model.Requester{ID: "b", Email: "x@example.com"})
	if !errors.Is(err, accountserrors.ErrDuplicateEmail) {
		t.Errorf("Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestMemoryAccountRepository_FindByIDs(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	for _, r := range []*model.Requester{
		{ID: "a", Email: "a@example.com"},
		{ID: "b", Email: "b@example.com"},
	} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := repo.FindByIDs(ctx, []string{"a", "missing", "b"})
	if err != nil {
		t.Fatalf("FindByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("FindByIDs() returned %d accounts, want 2", len(got))
	}
}

func TestMemoryAccountRepository_CreateNormalizesAccount(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	member := &model.Requester{ID: " user-9 ", Name: "  Carla   Dias ", Email: "Carla.Dias@Example.COM", CPF: "123.456.789-09"}
	if err := repo.Create(ctx, member); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, identifier := range []string{"carla.dias@example.com", "Carla.Dias@Example.COM", " CARLA.DIAS@EXAMPLE.COM ", "user-9"} {
		got, err := repo.Resolve(ctx, identifier)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", identifier, err)
		}
		if got.ID != "user-9" || got.Email != "carla.dias@example.com" || got.CPF != "12345678909" {
			t.Errorf("Resolve(%q) = %+v", identifier, got)
		}
	}

	err := repo.Create(ctx, &model.Requester{ID: "user-10", Email: "CARLA.dias@example.com"})
	if !errors.Is(err, accountserrors.ErrDuplicateEmail) {
		t.Errorf("Create() with differently cased email error = %v, want ErrDuplicateEmail", err)
	}
}
