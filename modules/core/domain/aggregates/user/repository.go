package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

var ErrNotFound = fmt.Errorf("user: %w", serrors.ErrNotFound)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, u User) (User, error)
}
