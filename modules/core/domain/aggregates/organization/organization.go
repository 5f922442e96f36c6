package organization

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the organization-type vocabulary. Gig participants reuse it to name
// the capacity in which an organization joins a gig.
type Type string

const (
	TypeVenue      Type = "venue"
	TypeAct        Type = "act"
	TypeProduction Type = "production"
	TypeAgency     Type = "agency"
	TypeOther      Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeVenue, TypeAct, TypeProduction, TypeAgency, TypeOther:
		return true
	}
	return false
}

type Organization struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	orgType   Type
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, name string, orgType Type) Organization {
	return Organization{
		tenantID: tenantID,
		name:     strings.TrimSpace(name),
		orgType:  orgType,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	name string,
	orgType Type,
	createdAt time.Time,
	updatedAt time.Time,
) Organization {
	return Organization{
		id:        id,
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		orgType:   orgType,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (o Organization) ID() uuid.UUID        { return o.id }
func (o Organization) TenantID() uuid.UUID  { return o.tenantID }
func (o Organization) Name() string         { return o.name }
func (o Organization) Type() Type           { return o.orgType }
func (o Organization) CreatedAt() time.Time { return o.createdAt }
func (o Organization) UpdatedAt() time.Time { return o.updatedAt }
func (o Organization) IsZero() bool         { return o.id == uuid.Nil && o.name == "" }
