package dtos

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/entities/asset"
	"github.com/crewcall-hq/crewcall/modules/inventory/services"
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

type CreateKitRequest struct {
	OrganizationID uuid.UUID `json:"organizationId"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Tags           []string  `json:"tags"`
	TagNumber      string    `json:"tagNumber"`
	RentalValue    *MoneyDTO `json:"rentalValue,omitempty"`
}

func (r *CreateKitRequest) ToCommand() *services.CreateKitCommand {
	return &services.CreateKitCommand{
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		Category:       r.Category,
		Tags:           r.Tags,
		TagNumber:      r.TagNumber,
		RentalValue:    r.RentalValue.ToMoney(),
	}
}

type PutKitAssetRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type KitAssetResponse struct {
	AssetID  uuid.UUID `json:"assetId"`
	Quantity int       `json:"quantity"`
	Notes    string    `json:"notes"`
}

type KitResponse struct {
	ID             uuid.UUID          `json:"id"`
	OrganizationID uuid.UUID          `json:"organizationId"`
	Name           string             `json:"name"`
	Category       string             `json:"category"`
	Tags           []string           `json:"tags"`
	TagNumber      string             `json:"tagNumber"`
	RentalValue    *MoneyDTO          `json:"rentalValue,omitempty"`
	Assets         []KitAssetResponse `json:"assets"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func KitToResponse(k *kit.Kit) KitResponse {
	assets := make([]KitAssetResponse, 0, len(k.Assets()))
	for _, a := range k.Assets() {
		assets = append(assets, KitAssetResponse{
			AssetID:  a.AssetID(),
			Quantity: a.Quantity(),
			Notes:    a.Notes(),
		})
	}
	return KitResponse{
		ID:             k.ID(),
		OrganizationID: k.OrganizationID(),
		Name:           k.Name(),
		Category:       k.Category(),
		Tags:           k.Tags(),
		TagNumber:      k.TagNumber(),
		RentalValue:    MoneyToDTO(k.RentalValue()),
		Assets:         assets,
		CreatedAt:      k.CreatedAt(),
		UpdatedAt:      k.UpdatedAt(),
	}
}

type ConflictReportResponse struct {
	GigID               uuid.UUID   `json:"gigId"`
	Title               string      `json:"title"`
	Start               time.Time   `json:"start"`
	End                 time.Time   `json:"end"`
	ConflictingAssetIDs []uuid.UUID `json:"conflictingAssetIds"`
}

func ConflictReportToResponse(r kit.ConflictReport) ConflictReportResponse {
	return ConflictReportResponse{
		GigID:               r.GigID,
		Title:               r.Title,
		Start:               r.Start,
		End:                 r.End,
		ConflictingAssetIDs: r.ConflictingAssetIDs,
	}
}

type CreateAssetRequest struct {
	OrganizationID   uuid.UUID `json:"organizationId"`
	Name             string    `json:"name"`
	SerialNumber     string    `json:"serialNumber"`
	ReplacementValue *MoneyDTO `json:"replacementValue,omitempty"`
}

type AssetResponse struct {
	ID               uuid.UUID `json:"id"`
	OrganizationID   uuid.UUID `json:"organizationId"`
	Name             string    `json:"name"`
	SerialNumber     string    `json:"serialNumber"`
	ReplacementValue *MoneyDTO `json:"replacementValue,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func AssetToResponse(a *asset.Asset) AssetResponse {
	return AssetResponse{
		ID:               a.ID(),
		OrganizationID:   a.OrganizationID(),
		Name:             a.Name(),
		SerialNumber:     a.SerialNumber(),
		ReplacementValue: MoneyToDTO(a.ReplacementValue()),
		CreatedAt:        a.CreatedAt(),
		UpdatedAt:        a.UpdatedAt(),
	}
}
