package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Gig struct {
	ID                 uuid.UUID
	TenantID           uuid.UUID
	Title              string
	StartAt            time.Time
	EndAt              time.Time
	Timezone           string
	Status             string
	Tags               []string
	Notes              string
	AmountPaidAmount   pgtype.Int8
	AmountPaidCurrency pgtype.Text
	ParentGigID        pgtype.UUID
	HierarchyDepth     int32
	CreatedBy          uuid.UUID
	UpdatedBy          uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Participant struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	GigID          uuid.UUID
	OrganizationID uuid.UUID
	Role           string
	CreatedAt      time.Time
}

type StaffSlot struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	GigID          uuid.UUID
	OrganizationID uuid.UUID
	RoleID         uuid.UUID
	RequiredCount  int32
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Assignment struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	SlotID       uuid.UUID
	UserID       uuid.UUID
	Status       string
	RateAmount   pgtype.Int8
	RateCurrency pgtype.Text
	FeeAmount    pgtype.Int8
	FeeCurrency  pgtype.Text
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StaffRole struct {
	ID   uuid.UUID
	Name string
}
