package pricing

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// QuoteDTO is the serialized outcome of a price resolution.
type QuoteDTO struct {
	CustomerID uint              `json:"customer_id"`
	ItemID     uint              `json:"item_id"`
	Tier       enums.PricingTier `json:"tier"`
	TierSource TierSource        `json:"tier_source"`
	TierPrice  string            `json:"tier_price"`
	Discount   string            `json:"discount"`
	FinalPrice string            `json:"final_price"`
	Reason     string            `json:"reason,omitempty"`
}

// NewQuoteDTO maps a resolver quote into its transport shape.
func NewQuoteDTO(customerID, itemID uint, quote Quote) *QuoteDTO {
	return &QuoteDTO{
		CustomerID: customerID,
		ItemID:     itemID,
		Tier:       quote.Tier,
		TierSource: quote.TierSource,
		TierPrice:  quote.TierPrice.StringFixed(2),
		Discount:   quote.Discount.StringFixed(2),
		FinalPrice: quote.FinalPrice.StringFixed(2),
		Reason:     quote.Reason,
	}
}

// TierPriceDTO is one configured tier price on an item.
type TierPriceDTO struct {
	ItemID      uint              `json:"item_id"`
	PricingTier enums.PricingTier `json:"pricing_tier"`
	Price       string            `json:"price"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTierPriceDTO maps a tier pricing row into its transport shape.
func NewTierPriceDTO(row *models.ItemTierPricing) *TierPriceDTO {
	if row == nil {
		return nil
	}
	return &TierPriceDTO{
		ItemID:      row.ItemID,
		PricingTier: row.PricingTier,
		Price:       row.Price.StringFixed(2),
		UpdatedAt:   row.UpdatedAt,
	}
}

// AssignmentDTO is one customer-to-brand tier assignment.
type AssignmentDTO struct {
	CustomerID  uint              `json:"customer_id"`
	BrandID     uint              `json:"brand_id"`
	PricingTier enums.PricingTier `json:"pricing_tier"`
	Assigned    bool              `json:"assigned"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewAssignmentDTO maps an assignment row into its transport shape.
func NewAssignmentDTO(row *models.CustomerBrandPricing) *AssignmentDTO {
	if row == nil {
		return nil
	}
	return &AssignmentDTO{
		CustomerID:  row.CustomerID,
		BrandID:     row.BrandID,
		PricingTier: row.PricingTier,
		Assigned:    row.HasTier(),
		UpdatedAt:   row.UpdatedAt,
	}
}

// SpecialPricingDTO is one special pricing request with its workflow state.
type SpecialPricingDTO struct {
	ID             uint                 `json:"id"`
	CustomerID     uint                 `json:"customer_id"`
	CustomerName   string               `json:"customer_name,omitempty"`
	ItemID         uint                 `json:"item_id"`
	ItemName       string               `json:"item_name,omitempty"`
	Discount       string               `json:"discount"`
	ApprovalStatus enums.ApprovalStatus `json:"approval_status"`
	CreatedByID    *uint                `json:"created_by_id,omitempty"`
	DecidedByID    *uint                `json:"decided_by_id,omitempty"`
	DecidedAt      *time.Time           `json:"decided_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// NewSpecialPricingDTO maps a special pricing row into its transport shape.
func NewSpecialPricingDTO(row *models.CustomerSpecialPricing) *SpecialPricingDTO {
	if row == nil {
		return nil
	}
	dto := &SpecialPricingDTO{
		ID:             row.ID,
		CustomerID:     row.CustomerID,
		ItemID:         row.ItemID,
		Discount:       row.Discount.StringFixed(2),
		ApprovalStatus: row.ApprovalStatus,
		CreatedByID:    row.CreatedByID,
		DecidedByID:    row.DecidedByID,
		DecidedAt:      row.DecidedAt,
		CreatedAt:      row.CreatedAt,
	}
	if row.Customer != nil {
		dto.CustomerName = row.Customer.CompanyName
	}
	if row.Item != nil {
		dto.ItemName = row.Item.ItemName
	}
	return dto
}
