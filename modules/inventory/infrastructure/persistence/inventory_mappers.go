package persistence

import (
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/entities/asset"
	"github.com/crewcall-hq/crewcall/modules/inventory/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/repo"
)

func toDomainKit(m models.Kit) *kit.Kit {
	return kit.Hydrate(
		m.ID,
		m.TenantID,
		m.OrganizationID,
		m.Name,
		m.Category,
		m.Tags,
		m.TagNumber,
		repo.MoneyFromDB(m.RentalValueAmount, m.RentalValueCurrency),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainKitAsset(m models.KitAsset) kit.KitAsset {
	return kit.NewKitAsset(m.KitID, m.AssetID, int(m.Quantity), m.Notes)
}

func toDomainAsset(m models.Asset) *asset.Asset {
	return asset.Hydrate(
		m.ID,
		m.TenantID,
		m.OrganizationID,
		m.Name,
		m.SerialNumber,
		repo.MoneyFromDB(m.ReplacementValueAmount, m.ReplacementValueCurrency),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
