package repository

import (
	"context"
	"strings"

	"spacebook/pkg/config"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"
)

const (
	CollectionName = "Users"
	TableName      = "users"
)

// AccountRepository reads member accounts. Accounts are registered by the
// surrounding application; Create exists for seeding and tests.
type AccountRepository interface {
	Create(ctx context.Context, requester *model.Requester) error
	// Resolve finds an account by id, or by email when identifier contains "@".
	Resolve(ctx context.Context, identifier string) (*model.Requester, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Requester, error)
}

func New(cfg *config.Config) AccountRepository {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		return NewMongoAccountRepository(cfg)
	case config.StoragePostgres:
		return NewPostgresAccountRepository(cfg)
	default:
		return NewMemoryAccountRepository()
	}
}

func isEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// normalizeAccount puts an account in its stored form: emails lower-cased so
// Resolve matches them case-insensitively, CPF reduced to digits.
func normalizeAccount(requester *model.Requester) {
	requester.ID = strings.TrimSpace(requester.ID)
	requester.Name = sanitizer.NormalizeName(requester.Name)
	requester.Email = sanitizer.NormalizeEmail(requester.Email)
	requester.CPF = sanitizer.SanitizeCPF(requester.CPF)
}
