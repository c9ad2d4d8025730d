package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	spaceserrors "spacebook/internal/spaces/errors"
	"spacebook/pkg/config"
	"spacebook/pkg/db/postgres"
	"spacebook/pkg/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const spaceColumns = `id, institution_id, name, type, description, multi_booking, available, slot_duration_min, max_advance_days, created_at`

type postgresSpaceRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSpaceRepository(cfg *config.Config) SpaceRepository {
	return &postgresSpaceRepository{pool: cfg.Client.Postgres}
}

func (r *postgresSpaceRepository) Create(ctx context.Context, space *model.Space) error {
	const query = `
INSERT INTO spaces (` + spaceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	space.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	_, err := postgres.Conn(ctx, r.pool).Exec(ctx, query,
		space.ID, space.InstitutionID, space.Name, space.Type, space.Description,
		space.MultiBooking, space.Available, space.SlotDurationMin, space.MaxAdvanceDays, space.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return spaceserrors.ErrDuplicateID
		}
		return fmt.Errorf("insert space: %w", err)
	}
	return nil
}

func (r *postgresSpaceRepository) FindByID(ctx context.Context, id string) (*model.Space, error) {
	const query = `SELECT ` + spaceColumns + ` FROM spaces WHERE id = $1`

	space, err := scanSpace(postgres.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, spaceserrors.ErrNotFound
		}
		return nil, fmt.Errorf("get space: %w", err)
	}
	return space, nil
}

func (r *postgresSpaceRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Space, error) {
	if len(ids) == 0 {
		return []*model.Space{}, nil
	}
	const query = `SELECT ` + spaceColumns + ` FROM spaces WHERE id = ANY($1) ORDER BY name, id`
	return r.query(ctx, query, ids)
}

func (r *postgresSpaceRepository) ListByInstitution(ctx context.Context, institutionID string) ([]*model.Space, error) {
	if institutionID == "" {
		return r.query(ctx, `SELECT `+spaceColumns+` FROM spaces ORDER BY name, id`)
	}
	const query = `SELECT ` + spaceColumns + ` FROM spaces WHERE institution_id = $1 ORDER BY name, id`
	return r.query(ctx, query, institutionID)
}

func (r *postgresSpaceRepository) query(ctx context.Context, query string, args ...any) ([]*model.Space, error) {
	rows, err := postgres.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	spaces := []*model.Space{}
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	return spaces, nil
}

func (r *postgresSpaceRepository) Update(ctx context.Context, space *model.Space) error {
	const query = `
UPDATE spaces
SET name = $2, type = $3, description = $4, multi_booking = $5, available = $6,
    slot_duration_min = $7, max_advance_days = $8
WHERE id = $1`

	tag, err := postgres.Conn(ctx, r.pool).Exec(ctx, query,
		space.ID, space.Name, space.Type, space.Description, space.MultiBooking,
		space.Available, space.SlotDurationMin, space.MaxAdvanceDays,
	)
	if err != nil {
		return fmt.Errorf("update space: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return spaceserrors.ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to remove the reservations.
func (r *postgresSpaceRepository) Delete(ctx context.Context, id string) error {
	tag, err := postgres.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return spaceserrors.ErrNotFound
	}
	return nil
}

func scanSpace(row pgx.Row) (*model.Space, error) {
	var s model.Space
	err := row.Scan(
		&s.ID, &s.InstitutionID, &s.Name, &s.Type, &s.Description,
		&s.MultiBooking, &s.Available, &s.SlotDurationMin, &s.MaxAdvanceDays, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
