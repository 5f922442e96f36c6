package gig

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

type Status string

const (
	StatusDateHold  Status = "date_hold"
	StatusProposed  Status = "proposed"
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusSettled   Status = "settled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDateHold, StatusProposed, StatusBooked, StatusCompleted, StatusCancelled, StatusSettled:
		return true
	}
	return false
}

// Gig is a scheduled event with a half-open time window [start, end) and
// nested staffing and equipment needs. The timezone is display-only; all
// window arithmetic happens on the absolute instants.
type Gig struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	title          string
	start          time.Time
	end            time.Time
	timezone       string
	status         Status
	tags           []string
	notes          string
	amountPaid     *money.Money
	parentGigID    *uuid.UUID
	hierarchyDepth int
	createdBy      uuid.UUID
	updatedBy      uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time

	participants []Participant
	staffSlots   []StaffSlot
}

type Option func(*Gig)

func WithTags(tags []string) Option {
	return func(g *Gig) {
		g.tags = tags
	}
}

func WithNotes(notes string) Option {
	return func(g *Gig) {
		g.notes = notes
	}
}

func WithAmountPaid(amount *money.Money) Option {
	return func(g *Gig) {
		g.amountPaid = amount
	}
}

func WithTimezone(tz string) Option {
	return func(g *Gig) {
		g.timezone = tz
	}
}

func WithParent(parentID uuid.UUID, depth int) Option {
	return func(g *Gig) {
		g.parentGigID = &parentID
		g.hierarchyDepth = depth
	}
}

func New(tenantID uuid.UUID, title string, start, end time.Time, status Status, createdBy uuid.UUID, opts ...Option) *Gig {
	g := &Gig{
		tenantID:  tenantID,
		title:     strings.TrimSpace(title),
		start:     start,
		end:       end,
		status:    status,
		createdBy: createdBy,
		updatedBy: createdBy,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	title string,
	start time.Time,
	end time.Time,
	timezone string,
	status Status,
	tags []string,
	notes string,
	amountPaid *money.Money,
	parentGigID *uuid.UUID,
	hierarchyDepth int,
	createdBy uuid.UUID,
	updatedBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) *Gig {
	return &Gig{
		id:             id,
		tenantID:       tenantID,
		title:          title,
		start:          start,
		end:            end,
		timezone:       timezone,
		status:         status,
		tags:           tags,
		notes:          notes,
		amountPaid:     amountPaid,
		parentGigID:    parentGigID,
		hierarchyDepth: hierarchyDepth,
		createdBy:      createdBy,
		updatedBy:      updatedBy,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (g *Gig) ID() uuid.UUID               { return g.id }
func (g *Gig) TenantID() uuid.UUID         { return g.tenantID }
func (g *Gig) Title() string               { return g.title }
func (g *Gig) Start() time.Time            { return g.start }
func (g *Gig) End() time.Time              { return g.end }
func (g *Gig) Timezone() string            { return g.timezone }
func (g *Gig) Status() Status              { return g.status }
func (g *Gig) Tags() []string              { return g.tags }
func (g *Gig) Notes() string               { return g.notes }
func (g *Gig) AmountPaid() *money.Money    { return g.amountPaid }
func (g *Gig) ParentGigID() *uuid.UUID     { return g.parentGigID }
func (g *Gig) HierarchyDepth() int         { return g.hierarchyDepth }
func (g *Gig) CreatedBy() uuid.UUID        { return g.createdBy }
func (g *Gig) UpdatedBy() uuid.UUID        { return g.updatedBy }
func (g *Gig) CreatedAt() time.Time        { return g.createdAt }
func (g *Gig) UpdatedAt() time.Time        { return g.updatedAt }
func (g *Gig) Participants() []Participant { return g.participants }
func (g *Gig) StaffSlots() []StaffSlot     { return g.staffSlots }

func (g *Gig) SetParticipants(ps []Participant) { g.participants = ps }
func (g *Gig) SetStaffSlots(slots []StaffSlot)  { g.staffSlots = slots }
