package gig

import (
	"github.com/Rhymond/go-money"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
)

// Ref is a tagged reference for desired-state items: it either targets an
// existing persisted row by id, or marks the item as new. Callers construct
// one explicitly instead of the reconciler inferring "new vs. existing" from
// an optional field.
type Ref struct {
	id       uuid.UUID
	existing bool
}

func NewRef() Ref {
	return Ref{}
}

func ExistingRef(id uuid.UUID) Ref {
	return Ref{id: id, existing: true}
}

// Existing returns the targeted row id and whether the reference names an
// existing row at all.
func (r Ref) Existing() (uuid.UUID, bool) {
	return r.id, r.existing
}

// DesiredParticipant describes the wanted state of one participant row.
type DesiredParticipant struct {
	Ref            Ref
	OrganizationID uuid.UUID
	Role           organization.Type
}

// DesiredStaffSlot describes the wanted state of one staff slot. The staff
// role is referenced by name and resolved (get-or-create) during
// reconciliation.
//
// Assignments semantics are asymmetric with the top-level slot collection:
// a nil/empty Assignments slice means "no information provided" and
// leaves the slot's persisted assignments untouched, whereas an empty
// top-level slot collection on ReconcileCommand deletes every slot.
type DesiredStaffSlot struct {
	Ref            Ref
	OrganizationID uuid.UUID
	RoleName       string
	RequiredCount  int
	Notes          string
	Assignments    []DesiredAssignment
}

// DesiredAssignment describes the wanted state of one assignment row within
// a slot.
type DesiredAssignment struct {
	Ref    Ref
	UserID uuid.UUID
	Status AssignmentStatus
	Rate   *money.Money
	Fee    *money.Money
	Notes  string
}
