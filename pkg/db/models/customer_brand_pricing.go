package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// CustomerBrandPricing maps a customer to the single tier they buy a brand
// at. The (customer, brand) pair is unique; an empty tier is the placeholder
// written by bulk assignment and never resolves to a price.
type CustomerBrandPricing struct {
	ID          uint              `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID  uint              `gorm:"column:customer_id;not null;uniqueIndex:idx_customer_brand"`
	BrandID     uint              `gorm:"column:brand_id;not null;uniqueIndex:idx_customer_brand"`
	PricingTier enums.PricingTier `gorm:"column:pricing_tier;size:10;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Brand    *Brand    `gorm:"foreignKey:BrandID"`
}

// TableName keeps the legacy table name.
func (CustomerBrandPricing) TableName() string {
	return "customer_brand_pricing"
}

// HasTier reports whether a real tier has been chosen for the assignment.
func (p CustomerBrandPricing) HasTier() bool {
	return p.PricingTier != enums.PricingTierUnassigned
}
