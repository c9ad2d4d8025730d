package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	spaceserrors "spacebook/internal/spaces/errors"
	"spacebook/pkg/model"
)

type memorySpaceRepository struct {
	mu     sync.RWMutex
	spaces map[string]model.Space
}

func NewMemorySpaceRepository() SpaceRepository {
	return &memorySpaceRepository{spaces: make(map[string]model.Space)}
}

func (r *memorySpaceRepository) Create(_ context.Context, space *model.Space) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.spaces[space.ID]; exists {
		return spaceserrors.ErrDuplicateID
	}
	space.CreatedAt = time.Now().UTC()
	r.spaces[space.ID] = *space
	return nil
}

func (r *memorySpaceRepository) FindByID(_ context.Context, id string) (*model.Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	space, ok := r.spaces[id]
	if !ok {
		return nil, spaceserrors.ErrNotFound
	}
	return &space, nil
}

func (r *memorySpaceRepository) FindByIDs(_ context.Context, ids []string) ([]*model.Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Space{}
	for _, id := range ids {
		if space, ok := r.spaces[id]; ok {
			out = append(out, &space)
		}
	}
	sortSpaces(out)
	return out, nil
}

func (r *memorySpaceRepository) ListByInstitution(_ context.Context, institutionID string) ([]*model.Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Space{}
	for _, space := range r.spaces {
		if institutionID != "" && space.InstitutionID != institutionID {
			continue
		}
		space := space
		out = append(out, &space)
	}
	sortSpaces(out)
	return out, nil
}

func (r *memorySpaceRepository) Update(_ context.Context, space *model.Space) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.spaces[space.ID]
	if !ok {
		return spaceserrors.ErrNotFound
	}
	updated := *space
	updated.InstitutionID = existing.InstitutionID
	updated.CreatedAt = existing.CreatedAt
	r.spaces[space.ID] = updated
	return nil
}

func (r *memorySpaceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.spaces[id]; !ok {
		return spaceserrors.ErrNotFound
	}
	delete(r.spaces, id)
	return nil
}

func sortSpaces(spaces []*model.Space) {
	sort.Slice(spaces, func(i, j int) bool {
		if spaces[i].Name != spaces[j].Name {
			return spaces[i].Name < spaces[j].Name
		}
		return spaces[i].ID < spaces[j].ID
	})
}
