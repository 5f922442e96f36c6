package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

var ErrNotFound = fmt.Errorf("tenant: %w", serrors.ErrNotFound)

// Tenant is one isolated installation. Every row in the system hangs off a
// tenant; single-tenant deployments run everything under the default one.
type Tenant struct {
	id        uuid.UUID
	name      string
	domain    string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Tenant)

func WithID(id uuid.UUID) Option {
	return func(t *Tenant) {
		t.id = id
	}
}

func WithDomain(domain string) Option {
	return func(t *Tenant) {
		t.domain = domain
	}
}

func New(name string, opts ...Option) *Tenant {
	t := &Tenant{
		id:       uuid.New(),
		name:     name,
		isActive: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func Hydrate(id uuid.UUID, name, domain string, isActive bool, createdAt, updatedAt time.Time) *Tenant {
	return &Tenant{
		id:        id,
		name:      name,
		domain:    domain,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (t *Tenant) ID() uuid.UUID        { return t.id }
func (t *Tenant) Name() string         { return t.name }
func (t *Tenant) Domain() string       { return t.domain }
func (t *Tenant) IsActive() bool       { return t.isActive }
func (t *Tenant) CreatedAt() time.Time { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time { return t.updatedAt }

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, t *Tenant) (*Tenant, error)
}
