package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Kit struct {
	ID                  uuid.UUID
	TenantID            uuid.UUID
	OrganizationID      uuid.UUID
	Name                string
	Category            string
	Tags                []string
	TagNumber           string
	RentalValueAmount   pgtype.Int8
	RentalValueCurrency pgtype.Text
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type KitAsset struct {
	KitID    uuid.UUID
	AssetID  uuid.UUID
	Quantity int32
	Notes    string
}

type Asset struct {
	ID                       uuid.UUID
	TenantID                 uuid.UUID
	OrganizationID           uuid.UUID
	Name                     string
	SerialNumber             string
	ReplacementValueAmount   pgtype.Int8
	ReplacementValueCurrency pgtype.Text
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
