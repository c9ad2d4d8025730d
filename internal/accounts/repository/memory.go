package repository

import (
	"context"
	"sync"

	accountserrors "spacebook/internal/accounts/errors"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"
)

type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]model.Requester
	byEmail  map[string]string
}

func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{
		accounts: make(map[string]model.Requester),
		byEmail:  make(map[string]string),
	}
}

func (r *memoryAccountRepository) Create(_ context.Context, requester *model.Requester) error {
	normalizeAccount(requester)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[requester.Email]; exists {
		return accountserrors.ErrDuplicateEmail
	}
	r.accounts[requester.ID] = *requester
	r.byEmail[requester.Email] = requester.ID
	return nil
}

func (r *memoryAccountRepository) Resolve(_ context.Context, identifier string) (*model.Requester, error) {
	identifier = sanitizer.SanitizeIdentifier(identifier)
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := identifier
	if isEmail(identifier) {
		var ok bool
		if id, ok = r.byEmail[identifier]; !ok {
			return nil, accountserrors.ErrNotFound
		}
	}

	requester, ok := r.accounts[id]
	if !ok {
		return nil, accountserrors.ErrNotFound
	}
	return &requester, nil
}

func (r *memoryAccountRepository) FindByIDs(_ context.Context, ids []string) ([]*model.Requester, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Requester{}
	for _, id := range ids {
		if requester, ok := r.accounts[id]; ok {
			out = append(out, &requester)
		}
	}
	return out, nil
}
