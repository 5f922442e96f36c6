package gig

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
)

// Participant links an organization to a gig in a named capacity (venue, act,
// production company). The role reuses the organization-type vocabulary.
// Participants are exclusively owned by their gig.
type Participant struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	gigID          uuid.UUID
	organizationID uuid.UUID
	role           organization.Type
	createdAt      time.Time
}

func NewParticipant(tenantID, gigID, organizationID uuid.UUID, role organization.Type) Participant {
	return Participant{
		tenantID:       tenantID,
		gigID:          gigID,
		organizationID: organizationID,
		role:           role,
	}
}

func HydrateParticipant(
	id uuid.UUID,
	tenantID uuid.UUID,
	gigID uuid.UUID,
	organizationID uuid.UUID,
	role organization.Type,
	createdAt time.Time,
) Participant {
	return Participant{
		id:             id,
		tenantID:       tenantID,
		gigID:          gigID,
		organizationID: organizationID,
		role:           role,
		createdAt:      createdAt,
	}
}

func (p Participant) ID() uuid.UUID             { return p.id }
func (p Participant) TenantID() uuid.UUID       { return p.tenantID }
func (p Participant) GigID() uuid.UUID          { return p.gigID }
func (p Participant) OrganizationID() uuid.UUID { return p.organizationID }
func (p Participant) Role() organization.Type   { return p.role }
func (p Participant) CreatedAt() time.Time      { return p.createdAt }
