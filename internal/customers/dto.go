package customers

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// CustomerDTO is the serialized customer returned to clients.
type CustomerDTO struct {
	ID            uint                  `json:"customer_id"`
	CompanyName   string                `json:"company_name"`
	ContactPerson string                `json:"contact_person"`
	Address       string                `json:"address"`
	ContactNumber string                `json:"contact_number"`
	TinID         *string               `json:"tin_id,omitempty"`
	CustomerType  enums.CustomerType    `json:"customer_type"`
	Platform      enums.ContactPlatform `json:"platform"`
	PricingTier   enums.PricingTier     `json:"pricing_tier"`
	Status        enums.RecordStatus    `json:"status"`
	BrandTiers    []BrandTierDTO        `json:"brand_tiers,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// BrandTierDTO is one per-brand tier assignment for a customer.
type BrandTierDTO struct {
	BrandID     uint              `json:"brand_id"`
	BrandName   string            `json:"brand_name,omitempty"`
	PricingTier enums.PricingTier `json:"pricing_tier"`
	Assigned    bool              `json:"assigned"`
}

// NewCustomerDTO maps a customer row into its transport shape.
func NewCustomerDTO(customer *models.Customer) *CustomerDTO {
	if customer == nil {
		return nil
	}
	dto := &CustomerDTO{
		ID:            customer.ID,
		CompanyName:   customer.CompanyName,
		ContactPerson: customer.ContactPerson,
		Address:       customer.Address,
		ContactNumber: customer.ContactNumber,
		TinID:         customer.TinID,
		CustomerType:  customer.CustomerType,
		Platform:      customer.Platform,
		PricingTier:   customer.PricingTier,
		Status:        customer.Status,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
	}
	for _, assignment := range customer.BrandPricing {
		entry := BrandTierDTO{
			BrandID:     assignment.BrandID,
			PricingTier: assignment.PricingTier,
			Assigned:    assignment.HasTier(),
		}
		if assignment.Brand != nil {
			entry.BrandName = assignment.Brand.BrandName
		}
		dto.BrandTiers = append(dto.BrandTiers, entry)
	}
	return dto
}
