package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationserrors "spacebook/internal/reservations/errors"
	"spacebook/pkg/config"
	"spacebook/pkg/db/postgres"
	"spacebook/pkg/model"
	"spacebook/pkg/timeslot"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `id, space_id, requester_id, date, start_min, end_min, note, created_at`

type postgresReservationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReservationRepository(cfg *config.Config) ReservationRepository {
	return &postgresReservationRepository{pool: cfg.Client.Postgres}
}

func (r *postgresReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	const query = `
INSERT INTO reservations (` + reservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	_, err := postgres.Conn(ctx, r.pool).Exec(ctx, query,
		reservation.ID, reservation.SpaceID, reservation.RequesterID, reservation.Date,
		int(reservation.StartTime), int(reservation.EndTime), reservation.Note, reservation.CreatedAt,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return reservationserrors.ErrSpaceNotFound
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *postgresReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(postgres.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return reservation, nil
}

func (r *postgresReservationRepository) FindBySpaceAndDate(ctx context.Context, spaceID, date string) ([]*model.Reservation, error) {
	const query = `SELECT ` + reservationColumns + `
FROM reservations
WHERE space_id = $1 AND date = $2
ORDER BY start_min, created_at`
	return r.query(ctx, query, spaceID, date)
}

func (r *postgresReservationRepository) FindAll(ctx context.Context, filter model.ReservationFilter) ([]*model.Reservation, error) {
	var (
		conditions []string
		args       []any
	)
	if len(filter.SpaceIDs) > 0 {
		args = append(args, filter.SpaceIDs)
		conditions = append(conditions, fmt.Sprintf("space_id = ANY($%d)", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY date, start_min, created_at`

	return r.query(ctx, query, args...)
}

func (r *postgresReservationRepository) query(ctx context.Context, query string, args ...any) ([]*model.Reservation, error) {
	rows, err := postgres.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	reservations := []*model.Reservation{}
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func (r *postgresReservationRepository) Delete(ctx context.Context, id string) error {
	tag, err := postgres.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return reservationserrors.ErrNotFound
	}
	return nil
}

func (r *postgresReservationRepository) DeleteBySpace(ctx context.Context, spaceID string) (int64, error) {
	tag, err := postgres.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM reservations WHERE space_id = $1`, spaceID)
	if err != nil {
		return 0, fmt.Errorf("delete reservations of space: %w", err)
	}
	return tag.RowsAffected(), nil
}

// WithSpaceLock locks the space row for the rest of the transaction. Every
// date of the space is serialized, which also orders admissions after a
// concurrent space delete.
func (r *postgresReservationRepository) WithSpaceLock(ctx context.Context, spaceID, _ string, fn func(ctx context.Context) error) error {
	return postgres.WithTx(ctx, r.pool, func(txCtx context.Context) error {
		var id string
		err := postgres.Conn(txCtx, r.pool).
			QueryRow(txCtx, `SELECT id FROM spaces WHERE id = $1 FOR UPDATE`, spaceID).
			Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return reservationserrors.ErrSpaceNotFound
			}
			return fmt.Errorf("lock space: %w", err)
		}
		return fn(txCtx)
	})
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var (
		r          model.Reservation
		start, end int
	)
	if err := row.Scan(&r.ID, &r.SpaceID, &r.RequesterID, &r.Date, &start, &end, &r.Note, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.StartTime = timeslot.Clock(start)
	r.EndTime = timeslot.Clock(end)
	return &r, nil
}
