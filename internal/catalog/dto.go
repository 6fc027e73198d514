package catalog

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// BrandDTO is the serialized brand returned to clients.
type BrandDTO struct {
	ID                uint                    `json:"brand_id"`
	BrandName         string                  `json:"brand_name"`
	StreetNumber      *string                 `json:"street_number,omitempty"`
	StreetName        *string                 `json:"street_name,omitempty"`
	Barangay          *string                 `json:"barangay,omitempty"`
	City              *string                 `json:"city,omitempty"`
	Region            *string                 `json:"region,omitempty"`
	PostalCode        *string                 `json:"postal_code,omitempty"`
	TIN               *string                 `json:"tin,omitempty"`
	LandlineNumber    *string                 `json:"landline_number,omitempty"`
	ContactPerson     *string                 `json:"contact_person,omitempty"`
	MobileNumber      *string                 `json:"mobile_number,omitempty"`
	Email             *string                 `json:"email,omitempty"`
	VATClassification enums.VATClassification `json:"vat_classification"`
	Status            enums.RecordStatus      `json:"status"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// NewBrandDTO maps a brand row into its transport shape.
func NewBrandDTO(brand *models.Brand) *BrandDTO {
	if brand == nil {
		return nil
	}
	return &BrandDTO{
		ID:                brand.ID,
		BrandName:         brand.BrandName,
		StreetNumber:      brand.StreetNumber,
		StreetName:        brand.StreetName,
		Barangay:          brand.Barangay,
		City:              brand.City,
		Region:            brand.Region,
		PostalCode:        brand.PostalCode,
		TIN:               brand.TIN,
		LandlineNumber:    brand.LandlineNumber,
		ContactPerson:     brand.ContactPerson,
		MobileNumber:      brand.MobileNumber,
		Email:             brand.Email,
		VATClassification: brand.VATClassification,
		Status:            brand.Status,
		CreatedAt:         brand.CreatedAt,
		UpdatedAt:         brand.UpdatedAt,
	}
}

// BatchDTO is the serialized view of one stock lot.
type BatchDTO struct {
	ID                uint      `json:"batch_id"`
	BatchNumber       int       `json:"batch_number"`
	CostPrice         string    `json:"cost_price"`
	InitialQuantity   int       `json:"initial_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	CreatedAt         time.Time `json:"created_at"`
}

// ItemDTO is the serialized item with derived stock fields.
type ItemDTO struct {
	ID             uint                     `json:"item_id"`
	BrandID        uint                     `json:"brand_id"`
	BrandName      string                   `json:"brand_name,omitempty"`
	ItemName       string                   `json:"item_name"`
	SKU            *string                  `json:"sku,omitempty"`
	UOM            enums.UnitOfMeasure      `json:"uom"`
	ThresholdValue int                      `json:"threshold_value"`
	Quantity       int                      `json:"quantity"`
	Availability   enums.AvailabilityStatus `json:"availability"`
	Batches        []BatchDTO               `json:"batches,omitempty"`
	TierPricing    []TierPriceDTO           `json:"tier_pricing,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// TierPriceDTO is one tier's standard price for an item.
type TierPriceDTO struct {
	PricingTier enums.PricingTier `json:"pricing_tier"`
	Price       string            `json:"price"`
}

// NewItemDTO maps an item with preloaded associations into its transport shape.
func NewItemDTO(item *models.Item) *ItemDTO {
	if item == nil {
		return nil
	}

	dto := &ItemDTO{
		ID:             item.ID,
		BrandID:        item.BrandID,
		ItemName:       item.ItemName,
		SKU:            item.SKU,
		UOM:            item.UOM,
		ThresholdValue: item.ThresholdValue,
		Quantity:       item.TotalQuantity(),
		Availability:   item.Availability(),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
	if item.Brand != nil {
		dto.BrandName = item.Brand.BrandName
	}
	for _, batch := range item.Batches {
		dto.Batches = append(dto.Batches, BatchDTO{
			ID:                batch.ID,
			BatchNumber:       batch.BatchNumber,
			CostPrice:         batch.CostPrice.StringFixed(2),
			InitialQuantity:   batch.InitialQuantity,
			RemainingQuantity: batch.RemainingQuantity,
			CreatedAt:         batch.CreatedAt,
		})
	}
	for _, price := range item.TierPricing {
		dto.TierPricing = append(dto.TierPricing, TierPriceDTO{
			PricingTier: price.PricingTier,
			Price:       price.Price.StringFixed(2),
		})
	}
	return dto
}
