package repository

import (
	"context"
	"errors"
	"fmt"

	accountserrors "spacebook/internal/accounts/errors"
	"spacebook/pkg/config"
	"spacebook/pkg/db/postgres"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepository(cfg *config.Config) AccountRepository {
	return &postgresAccountRepository{pool: cfg.Client.Postgres}
}

func (r *postgresAccountRepository) Create(ctx context.Context, requester *model.Requester) error {
	normalizeAccount(requester)
	const query = `INSERT INTO users (id, name, email, cpf) VALUES ($1, $2, $3, $4)`

	_, err := postgres.Conn(ctx, r.pool).Exec(ctx, query, requester.ID, requester.Name, requester.Email, requester.CPF)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return accountserrors.ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *postgresAccountRepository) Resolve(ctx context.Context, identifier string) (*model.Requester, error) {
	identifier = sanitizer.SanitizeIdentifier(identifier)
	query := `SELECT id, name, email, cpf FROM users WHERE id = $1`
	if isEmail(identifier) {
		query = `SELECT id, name, email, cpf FROM users WHERE email = $1`
	}

	var a model.Requester
	err := postgres.Conn(ctx, r.pool).QueryRow(ctx, query, identifier).Scan(&a.ID, &a.Name, &a.Email, &a.CPF)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accountserrors.ErrNotFound
		}
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	return &a, nil
}

func (r *postgresAccountRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Requester, error) {
	if len(ids) == 0 {
		return []*model.Requester{}, nil
	}

	rows, err := postgres.Conn(ctx, r.pool).Query(ctx, `SELECT id, name, email, cpf FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer rows.Close()

	requesters := []*model.Requester{}
	for rows.Next() {
		var a model.Requester
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.CPF); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		requesters = append(requesters, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	return requesters, nil
}
