package dtos

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/entities/staffrole"
	"github.com/crewcall-hq/crewcall/modules/scheduling/services"
)

// MoneyDTO is the wire form of a monetary amount in minor units.
type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MoneyToDTO(m *money.Money) *MoneyDTO {
	if m == nil {
		return nil
	}
	return &MoneyDTO{Amount: m.Amount(), Currency: m.Currency().Code}
}

func (d *MoneyDTO) ToMoney() *money.Money {
	if d == nil {
		return nil
	}
	return money.New(d.Amount, d.Currency)
}

// Desired-state request items carry an optional ID: present means "this row",
// absent means "create a new one".
type DesiredParticipantRequest struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	Role           string     `json:"role"`
}

type DesiredStaffSlotRequest struct {
	ID             *uuid.UUID                 `json:"id,omitempty"`
	OrganizationID uuid.UUID                  `json:"organizationId"`
	RoleName       string                     `json:"roleName"`
	RequiredCount  int                        `json:"requiredCount"`
	Notes          string                     `json:"notes"`
	Assignments    []DesiredAssignmentRequest `json:"assignments,omitempty"`
}

type DesiredAssignmentRequest struct {
	ID     *uuid.UUID `json:"id,omitempty"`
	UserID uuid.UUID  `json:"userId"`
	Status string     `json:"status"`
	Rate   *MoneyDTO  `json:"rate,omitempty"`
	Fee    *MoneyDTO  `json:"fee,omitempty"`
	Notes  string     `json:"notes"`
}

type CreateGigRequest struct {
	Title        string                      `json:"title"`
	Start        time.Time                   `json:"start"`
	End          time.Time                   `json:"end"`
	Timezone     string                      `json:"timezone"`
	Status       string                      `json:"status"`
	Tags         []string                    `json:"tags"`
	Notes        string                      `json:"notes"`
	AmountPaid   *MoneyDTO                   `json:"amountPaid,omitempty"`
	ParentGigID  *uuid.UUID                  `json:"parentGigId,omitempty"`
	Participants []DesiredParticipantRequest `json:"participants"`
	StaffSlots   []DesiredStaffSlotRequest   `json:"staffSlots"`
}

type ReconcileRequest struct {
	ExpectedUpdatedAt time.Time                   `json:"expectedUpdatedAt"`
	Participants      []DesiredParticipantRequest `json:"participants"`
	StaffSlots        []DesiredStaffSlotRequest   `json:"staffSlots"`
}

type ParticipantResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Role           string    `json:"role"`
}

type AssignmentResponse struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Status string    `json:"status"`
	Rate   *MoneyDTO `json:"rate,omitempty"`
	Fee    *MoneyDTO `json:"fee,omitempty"`
	Notes  string    `json:"notes"`
}

type StaffSlotResponse struct {
	ID             uuid.UUID            `json:"id"`
	OrganizationID uuid.UUID            `json:"organizationId"`
	RoleID         uuid.UUID            `json:"roleId"`
	RequiredCount  int                  `json:"requiredCount"`
	Notes          string               `json:"notes"`
	Assignments    []AssignmentResponse `json:"assignments"`
}

type GigResponse struct {
	ID             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	Start          time.Time             `json:"start"`
	End            time.Time             `json:"end"`
	Timezone       string                `json:"timezone"`
	Status         string                `json:"status"`
	Tags           []string              `json:"tags"`
	Notes          string                `json:"notes"`
	AmountPaid     *MoneyDTO             `json:"amountPaid,omitempty"`
	ParentGigID    *uuid.UUID            `json:"parentGigId,omitempty"`
	HierarchyDepth int                   `json:"hierarchyDepth"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
	Participants   []ParticipantResponse `json:"participants"`
	StaffSlots     []StaffSlotResponse   `json:"staffSlots"`
}

type StaffRoleResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type GetOrCreateStaffRoleRequest struct {
	Name string `json:"name"`
}

func refOf(id *uuid.UUID) gig.Ref {
	if id != nil {
		return gig.ExistingRef(*id)
	}
	return gig.NewRef()
}

func ToDesiredParticipants(reqs []DesiredParticipantRequest) []gig.DesiredParticipant {
	out := make([]gig.DesiredParticipant, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, gig.DesiredParticipant{
			Ref:            refOf(r.ID),
			OrganizationID: r.OrganizationID,
			Role:           organization.Type(r.Role),
		})
	}
	return out
}

func ToDesiredStaffSlots(reqs []DesiredStaffSlotRequest) []gig.DesiredStaffSlot {
	out := make([]gig.DesiredStaffSlot, 0, len(reqs))
	for _, r := range reqs {
		var assignments []gig.DesiredAssignment
		for _, a := range r.Assignments {
			assignments = append(assignments, gig.DesiredAssignment{
				Ref:    refOf(a.ID),
				UserID: a.UserID,
				Status: gig.AssignmentStatus(a.Status),
				Rate:   a.Rate.ToMoney(),
				Fee:    a.Fee.ToMoney(),
				Notes:  a.Notes,
			})
		}
		out = append(out, gig.DesiredStaffSlot{
			Ref:            refOf(r.ID),
			OrganizationID: r.OrganizationID,
			RoleName:       r.RoleName,
			RequiredCount:  r.RequiredCount,
			Notes:          r.Notes,
			Assignments:    assignments,
		})
	}
	return out
}

func (r *CreateGigRequest) ToCommand() *services.CreateGigCommand {
	return &services.CreateGigCommand{
		Title:        r.Title,
		Start:        r.Start,
		End:          r.End,
		Timezone:     r.Timezone,
		Status:       gig.Status(r.Status),
		Tags:         r.Tags,
		Notes:        r.Notes,
		AmountPaid:   r.AmountPaid.ToMoney(),
		ParentGigID:  r.ParentGigID,
		Participants: ToDesiredParticipants(r.Participants),
		StaffSlots:   ToDesiredStaffSlots(r.StaffSlots),
	}
}

func (r *ReconcileRequest) ToCommand(gigID uuid.UUID) *services.ReconcileCommand {
	return &services.ReconcileCommand{
		GigID:             gigID,
		ExpectedUpdatedAt: r.ExpectedUpdatedAt,
		Participants:      ToDesiredParticipants(r.Participants),
		StaffSlots:        ToDesiredStaffSlots(r.StaffSlots),
	}
}

func GigToResponse(g *gig.Gig) GigResponse {
	participants := make([]ParticipantResponse, 0, len(g.Participants()))
	for _, p := range g.Participants() {
		participants = append(participants, ParticipantResponse{
			ID:             p.ID(),
			OrganizationID: p.OrganizationID(),
			Role:           string(p.Role()),
		})
	}
	slots := make([]StaffSlotResponse, 0, len(g.StaffSlots()))
	for _, s := range g.StaffSlots() {
		assignments := make([]AssignmentResponse, 0, len(s.Assignments()))
		for _, a := range s.Assignments() {
			assignments = append(assignments, AssignmentResponse{
				ID:     a.ID(),
				UserID: a.UserID(),
				Status: string(a.Status()),
				Rate:   MoneyToDTO(a.Rate()),
				Fee:    MoneyToDTO(a.Fee()),
				Notes:  a.Notes(),
			})
		}
		slots = append(slots, StaffSlotResponse{
			ID:             s.ID(),
			OrganizationID: s.OrganizationID(),
			RoleID:         s.RoleID(),
			RequiredCount:  s.RequiredCount(),
			Notes:          s.Notes(),
			Assignments:    assignments,
		})
	}
	return GigResponse{
		ID:             g.ID(),
		Title:          g.Title(),
		Start:          g.Start(),
		End:            g.End(),
		Timezone:       g.Timezone(),
		Status:         string(g.Status()),
		Tags:           g.Tags(),
		Notes:          g.Notes(),
		AmountPaid:     MoneyToDTO(g.AmountPaid()),
		ParentGigID:    g.ParentGigID(),
		HierarchyDepth: g.HierarchyDepth(),
		CreatedAt:      g.CreatedAt(),
		UpdatedAt:      g.UpdatedAt(),
		Participants:   participants,
		StaffSlots:     slots,
	}
}

func StaffRoleToResponse(r staffrole.StaffRole) StaffRoleResponse {
	return StaffRoleResponse{ID: r.ID(), Name: r.Name()}
}
