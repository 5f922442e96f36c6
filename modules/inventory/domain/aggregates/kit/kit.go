package kit

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// Kit is a named, reusable bundle of physical assets rented and deployed
// together. A kit belongs to one organization and owns its KitAsset entries;
// assignment to gigs is a many-to-many association that never transfers
// ownership.
type Kit struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	organizationID uuid.UUID
	name           string
	category       string
	tags           []string
	tagNumber      string
	rentalValue    *money.Money
	createdAt      time.Time
	updatedAt      time.Time

	assets []KitAsset
}

type Option func(*Kit)

func WithCategory(category string) Option {
	return func(k *Kit) {
		k.category = category
	}
}

func WithTags(tags []string) Option {
	return func(k *Kit) {
		k.tags = tags
	}
}

func WithTagNumber(tagNumber string) Option {
	return func(k *Kit) {
		k.tagNumber = tagNumber
	}
}

func WithRentalValue(v *money.Money) Option {
	return func(k *Kit) {
		k.rentalValue = v
	}
}

func New(tenantID, organizationID uuid.UUID, name string, opts ...Option) *Kit {
	k := &Kit{
		tenantID:       tenantID,
		organizationID: organizationID,
		name:           strings.TrimSpace(name),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	organizationID uuid.UUID,
	name string,
	category string,
	tags []string,
	tagNumber string,
	rentalValue *money.Money,
	createdAt time.Time,
	updatedAt time.Time,
) *Kit {
	return &Kit{
		id:             id,
		tenantID:       tenantID,
		organizationID: organizationID,
		name:           name,
		category:       category,
		tags:           tags,
		tagNumber:      tagNumber,
		rentalValue:    rentalValue,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (k *Kit) ID() uuid.UUID             { return k.id }
func (k *Kit) TenantID() uuid.UUID       { return k.tenantID }
func (k *Kit) OrganizationID() uuid.UUID { return k.organizationID }
func (k *Kit) Name() string              { return k.name }
func (k *Kit) Category() string          { return k.category }
func (k *Kit) Tags() []string            { return k.tags }
func (k *Kit) TagNumber() string         { return k.tagNumber }
func (k *Kit) RentalValue() *money.Money { return k.rentalValue }
func (k *Kit) CreatedAt() time.Time      { return k.createdAt }
func (k *Kit) UpdatedAt() time.Time      { return k.updatedAt }
func (k *Kit) Assets() []KitAsset        { return k.assets }

func (k *Kit) SetAssets(as []KitAsset) { k.assets = as }

// AssetIDs returns the kit's constituent asset-id set.
func (k *Kit) AssetIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(k.assets))
	for _, a := range k.assets {
		ids = append(ids, a.AssetID())
	}
	return ids
}

// KitAsset is one physical asset's inclusion in a kit. At most one row may
// exist per (kit, asset) pair; the repository upserts on that key.
type KitAsset struct {
	kitID    uuid.UUID
	assetID  uuid.UUID
	quantity int
	notes    string
}

func NewKitAsset(kitID, assetID uuid.UUID, quantity int, notes string) KitAsset {
	if quantity == 0 {
		quantity = 1
	}
	return KitAsset{kitID: kitID, assetID: assetID, quantity: quantity, notes: notes}
}

func (a KitAsset) KitID() uuid.UUID   { return a.kitID }
func (a KitAsset) AssetID() uuid.UUID { return a.assetID }
func (a KitAsset) Quantity() int      { return a.quantity }
func (a KitAsset) Notes() string      { return a.notes }
