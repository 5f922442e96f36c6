package persistence

import (
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/entities/staffrole"
	"github.com/crewcall-hq/crewcall/modules/scheduling/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/repo"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
)

func toDomainGig(m models.Gig) *gig.Gig {
	return gig.Hydrate(
		m.ID,
		m.TenantID,
		m.Title,
		m.StartAt,
		m.EndAt,
		m.Timezone,
		gig.Status(m.Status),
		m.Tags,
		m.Notes,
		repo.MoneyFromDB(m.AmountPaidAmount, m.AmountPaidCurrency),
		repo.UUIDPtr(m.ParentGigID),
		int(m.HierarchyDepth),
		m.CreatedBy,
		m.UpdatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainParticipant(m models.Participant) gig.Participant {
	return gig.HydrateParticipant(m.ID, m.TenantID, m.GigID, m.OrganizationID, organization.Type(m.Role), m.CreatedAt)
}

func toDomainStaffSlot(m models.StaffSlot) gig.StaffSlot {
	return gig.HydrateStaffSlot(
		m.ID, m.TenantID, m.GigID, m.OrganizationID, m.RoleID,
		int(m.RequiredCount), m.Notes, m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainAssignment(m models.Assignment) gig.Assignment {
	return gig.HydrateAssignment(
		m.ID, m.TenantID, m.SlotID, m.UserID,
		gig.AssignmentStatus(m.Status),
		repo.MoneyFromDB(m.RateAmount, m.RateCurrency),
		repo.MoneyFromDB(m.FeeAmount, m.FeeCurrency),
		m.Notes, m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainStaffRole(m models.StaffRole) staffrole.StaffRole {
	return staffrole.Hydrate(m.ID, m.Name)
}
