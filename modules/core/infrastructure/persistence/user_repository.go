package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

const (
	userFindQuery  = `SELECT id, tenant_id, email, first_name, last_name, created_at, updated_at FROM users`
	userCountQuery = `SELECT COUNT(*) FROM users`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (r *PgUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	if params == nil {
		params = &user.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := ` WHERE tenant_id = $1`
	args := []any{repo.PgUUID(tenantID)}
	if params.Q != "" {
		where += ` AND (email ILIKE $2 OR first_name ILIKE $2 OR last_name ILIKE $2)`
		args = append(args, "%"+params.Q+"%")
	}

	var total int64
	if err := tx.QueryRow(ctx, userCountQuery+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf("%s%s ORDER BY last_name, first_name LIMIT %d OFFSET %d", userFindQuery, where, limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		var m models.User
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Email, &m.FirstName, &m.LastName, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, toDomainUser(m))
	}
	return out, total, rows.Err()
}

func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.queryOne(ctx, userFindQuery+` WHERE id = $1`, repo.PgUUID(id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.queryOne(ctx, userFindQuery+` WHERE email = $1`, email)
}

func (r *PgUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, repo.PgUUID(id)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, `
INSERT INTO users (tenant_id, email, first_name, last_name)
VALUES ($1, $2, $3, $4)
RETURNING id
`, repo.PgUUID(u.TenantID()), u.Email(), u.FirstName(), u.LastName()).Scan(&id); err != nil {
		if repo.IsUniqueViolation(err) {
			return user.User{}, fmt.Errorf("%w: email already in use", serrors.ErrValidation)
		}
		return user.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PgUserRepository) queryOne(ctx context.Context, query string, args ...any) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	var m models.User
	if err := tx.QueryRow(ctx, query, args...).Scan(&m.ID, &m.TenantID, &m.Email, &m.FirstName, &m.LastName, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return toDomainUser(m), nil
}
