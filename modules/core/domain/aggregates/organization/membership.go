package organization

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleAdmin   MemberRole = "admin"
	RoleManager MemberRole = "manager"
	RoleStaff   MemberRole = "staff"
	RoleViewer  MemberRole = "viewer"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// CanManageGigs reports whether the role carries write authority over gigs
// of organizations the member belongs to. Staff and viewers read only.
func (r MemberRole) CanManageGigs() bool {
	return r == RoleAdmin || r == RoleManager
}

// Membership links a user to an organization in a given role.
type Membership struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	organizationID uuid.UUID
	userID         uuid.UUID
	role           MemberRole
	createdAt      time.Time
}

func NewMembership(tenantID, organizationID, userID uuid.UUID, role MemberRole) Membership {
	return Membership{
		tenantID:       tenantID,
		organizationID: organizationID,
		userID:         userID,
		role:           role,
	}
}

func HydrateMembership(
	id uuid.UUID,
	tenantID uuid.UUID,
	organizationID uuid.UUID,
	userID uuid.UUID,
	role MemberRole,
	createdAt time.Time,
) Membership {
	return Membership{
		id:             id,
		tenantID:       tenantID,
		organizationID: organizationID,
		userID:         userID,
		role:           role,
		createdAt:      createdAt,
	}
}

func (m Membership) ID() uuid.UUID             { return m.id }
func (m Membership) TenantID() uuid.UUID       { return m.tenantID }
func (m Membership) OrganizationID() uuid.UUID { return m.organizationID }
func (m Membership) UserID() uuid.UUID         { return m.userID }
func (m Membership) Role() MemberRole          { return m.role }
func (m Membership) CreatedAt() time.Time      { return m.createdAt }
