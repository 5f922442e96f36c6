package staffrole

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

var ErrNotFound = fmt.Errorf("staff role: %w", serrors.ErrNotFound)

// StaffRole is a small global catalog entry shared across all organizations.
// Roles are looked up by exact name and created on first use.
type StaffRole struct {
	id   uuid.UUID
	name string
}

func New(name string) StaffRole {
	return StaffRole{name: Normalize(name)}
}

func Hydrate(id uuid.UUID, name string) StaffRole {
	return StaffRole{id: id, name: name}
}

func (r StaffRole) ID() uuid.UUID { return r.id }
func (r StaffRole) Name() string  { return r.name }
func (r StaffRole) IsZero() bool  { return r.id == uuid.Nil && r.name == "" }

func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// Repository is the staff role catalog. GetOrCreate must be idempotent under
// concurrent first-use of the same name: an upsert guarded by the unique
// constraint on name, not check-then-insert.
type Repository interface {
	GetAll(ctx context.Context) ([]StaffRole, error)
	GetByID(ctx context.Context, id uuid.UUID) (StaffRole, error)
	GetOrCreate(ctx context.Context, name string) (StaffRole, error)
}
