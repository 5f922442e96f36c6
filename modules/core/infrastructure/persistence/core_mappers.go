package persistence

import (
	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence/models"
)

func toDomainUser(m models.User) user.User {
	return user.Hydrate(m.ID, m.TenantID, m.Email, m.FirstName, m.LastName, m.CreatedAt, m.UpdatedAt)
}

func toDomainOrganization(m models.Organization) organization.Organization {
	return organization.Hydrate(m.ID, m.TenantID, m.Name, organization.Type(m.Type), m.CreatedAt, m.UpdatedAt)
}

func toDomainMembership(m models.Membership) organization.Membership {
	return organization.HydrateMembership(m.ID, m.TenantID, m.OrganizationID, m.UserID, organization.MemberRole(m.Role), m.CreatedAt)
}
