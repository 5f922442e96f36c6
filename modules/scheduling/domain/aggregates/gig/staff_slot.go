package gig

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// StaffSlot represents "N people of role R needed from organization O for
// this gig". Slots are exclusively owned by their gig; deleting a slot
// cascades to its assignments.
type StaffSlot struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	gigID          uuid.UUID
	organizationID uuid.UUID
	roleID         uuid.UUID
	requiredCount  int
	notes          string
	createdAt      time.Time
	updatedAt      time.Time

	assignments []Assignment
}

func NewStaffSlot(tenantID, gigID, organizationID, roleID uuid.UUID, requiredCount int, notes string) StaffSlot {
	if requiredCount == 0 {
		requiredCount = 1
	}
	return StaffSlot{
		tenantID:       tenantID,
		gigID:          gigID,
		organizationID: organizationID,
		roleID:         roleID,
		requiredCount:  requiredCount,
		notes:          notes,
	}
}

func HydrateStaffSlot(
	id uuid.UUID,
	tenantID uuid.UUID,
	gigID uuid.UUID,
	organizationID uuid.UUID,
	roleID uuid.UUID,
	requiredCount int,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
) StaffSlot {
	return StaffSlot{
		id:             id,
		tenantID:       tenantID,
		gigID:          gigID,
		organizationID: organizationID,
		roleID:         roleID,
		requiredCount:  requiredCount,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (s StaffSlot) ID() uuid.UUID             { return s.id }
func (s StaffSlot) TenantID() uuid.UUID       { return s.tenantID }
func (s StaffSlot) GigID() uuid.UUID          { return s.gigID }
func (s StaffSlot) OrganizationID() uuid.UUID { return s.organizationID }
func (s StaffSlot) RoleID() uuid.UUID         { return s.roleID }
func (s StaffSlot) RequiredCount() int        { return s.requiredCount }
func (s StaffSlot) Notes() string             { return s.notes }
func (s StaffSlot) CreatedAt() time.Time      { return s.createdAt }
func (s StaffSlot) UpdatedAt() time.Time      { return s.updatedAt }
func (s StaffSlot) Assignments() []Assignment { return s.assignments }

func (s *StaffSlot) SetAssignments(as []Assignment) { s.assignments = as }

type AssignmentStatus string

const (
	AssignmentRequested AssignmentStatus = "requested"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentRejected  AssignmentStatus = "rejected"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentRequested, AssignmentConfirmed, AssignmentRejected, AssignmentCancelled:
		return true
	}
	return false
}

// Assignment is one person's (candidate or confirmed) fulfillment of a staff
// slot. A slot may hold more assignments than its required count; over- and
// under-filled slots are not an error.
type Assignment struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	slotID    uuid.UUID
	userID    uuid.UUID
	status    AssignmentStatus
	rate      *money.Money
	fee       *money.Money
	notes     string
	createdAt time.Time
	updatedAt time.Time
}

func NewAssignment(tenantID, slotID, userID uuid.UUID, status AssignmentStatus, rate, fee *money.Money, notes string) Assignment {
	if status == "" {
		status = AssignmentRequested
	}
	return Assignment{
		tenantID: tenantID,
		slotID:   slotID,
		userID:   userID,
		status:   status,
		rate:     rate,
		fee:      fee,
		notes:    notes,
	}
}

func HydrateAssignment(
	id uuid.UUID,
	tenantID uuid.UUID,
	slotID uuid.UUID,
	userID uuid.UUID,
	status AssignmentStatus,
	rate *money.Money,
	fee *money.Money,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
) Assignment {
	return Assignment{
		id:        id,
		tenantID:  tenantID,
		slotID:    slotID,
		userID:    userID,
		status:    status,
		rate:      rate,
		fee:       fee,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a Assignment) ID() uuid.UUID            { return a.id }
func (a Assignment) TenantID() uuid.UUID      { return a.tenantID }
func (a Assignment) SlotID() uuid.UUID        { return a.slotID }
func (a Assignment) UserID() uuid.UUID        { return a.userID }
func (a Assignment) Status() AssignmentStatus { return a.status }
func (a Assignment) Rate() *money.Money       { return a.rate }
func (a Assignment) Fee() *money.Money        { return a.fee }
func (a Assignment) Notes() string            { return a.notes }
func (a Assignment) CreatedAt() time.Time     { return a.createdAt }
func (a Assignment) UpdatedAt() time.Time     { return a.updatedAt }
