package gig

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

var ErrNotFound = fmt.Errorf("gig: %w", serrors.ErrNotFound)

type FindParams struct {
	Q      string
	Status Status
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// Repository persists gigs and their exclusively-owned children. The write
// primitives operate on one nesting level each; the reconciliation service
// sequences them inside a single transaction.
type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]*Gig, int64, error)
	// GetByID hydrates the gig with its participants, staff slots and
	// per-slot assignments.
	GetByID(ctx context.Context, id uuid.UUID) (*Gig, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, g *Gig) (*Gig, error)
	// Delete cascades to participants, staff slots, assignments and kit
	// assignment association rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// Claim is the optimistic-concurrency guard: it bumps updated_at iff it
	// still equals expected, returning the new value. It fails with
	// serrors.ErrWriteConflict on a version mismatch and ErrNotFound when the
	// gig is gone.
	Claim(ctx context.Context, id uuid.UUID, expected time.Time, updatedBy uuid.UUID) (time.Time, error)

	// ParentInfo returns the gig's parent reference and hierarchy depth.
	ParentInfo(ctx context.Context, id uuid.UUID) (*uuid.UUID, int, error)

	// ParticipantOrgIDs resolves the set of organizations participating in
	// the gig, the input of the access gate.
	ParticipantOrgIDs(ctx context.Context, gigID uuid.UUID) ([]uuid.UUID, error)

	Participants(ctx context.Context, gigID uuid.UUID) ([]Participant, error)
	InsertParticipant(ctx context.Context, p Participant) (Participant, error)
	UpdateParticipant(ctx context.Context, p Participant) error
	DeleteParticipants(ctx context.Context, gigID uuid.UUID, ids []uuid.UUID) error

	StaffSlots(ctx context.Context, gigID uuid.UUID) ([]StaffSlot, error)
	InsertStaffSlot(ctx context.Context, s StaffSlot) (StaffSlot, error)
	UpdateStaffSlot(ctx context.Context, s StaffSlot) error
	// DeleteStaffSlots cascades to the slots' assignments.
	DeleteStaffSlots(ctx context.Context, gigID uuid.UUID, ids []uuid.UUID) error

	Assignments(ctx context.Context, slotID uuid.UUID) ([]Assignment, error)
	InsertAssignment(ctx context.Context, a Assignment) (Assignment, error)
	UpdateAssignment(ctx context.Context, a Assignment) error
	DeleteAssignments(ctx context.Context, slotID uuid.UUID, ids []uuid.UUID) error
}
