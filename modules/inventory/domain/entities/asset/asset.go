package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

var ErrNotFound = fmt.Errorf("asset: %w", serrors.ErrNotFound)

// Asset is one physical piece of equipment owned by an organization. Assets
// are the unit of conflict detection; kits are just named groupings of them.
type Asset struct {
	id               uuid.UUID
	tenantID         uuid.UUID
	organizationID   uuid.UUID
	name             string
	serialNumber     string
	replacementValue *money.Money
	createdAt        time.Time
	updatedAt        time.Time
}

type Option func(*Asset)

func WithSerialNumber(serial string) Option {
	return func(a *Asset) {
		a.serialNumber = serial
	}
}

func WithReplacementValue(v *money.Money) Option {
	return func(a *Asset) {
		a.replacementValue = v
	}
}

func New(tenantID, organizationID uuid.UUID, name string, opts ...Option) *Asset {
	a := &Asset{
		tenantID:       tenantID,
		organizationID: organizationID,
		name:           name,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	organizationID uuid.UUID,
	name string,
	serialNumber string,
	replacementValue *money.Money,
	createdAt time.Time,
	updatedAt time.Time,
) *Asset {
	return &Asset{
		id:               id,
		tenantID:         tenantID,
		organizationID:   organizationID,
		name:             name,
		serialNumber:     serialNumber,
		replacementValue: replacementValue,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (a *Asset) ID() uuid.UUID                  { return a.id }
func (a *Asset) TenantID() uuid.UUID            { return a.tenantID }
func (a *Asset) OrganizationID() uuid.UUID      { return a.organizationID }
func (a *Asset) Name() string                   { return a.name }
func (a *Asset) SerialNumber() string           { return a.serialNumber }
func (a *Asset) ReplacementValue() *money.Money { return a.replacementValue }
func (a *Asset) CreatedAt() time.Time           { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time           { return a.updatedAt }

type FindParams struct {
	OrganizationID uuid.UUID
	Q              string
	Limit          int
	Offset         int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]*Asset, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, a *Asset) (*Asset, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}
