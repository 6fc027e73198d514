package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ItemTierPricing is the standard price of an item at one tier. At most one
// row per (item, tier); tiers without a row are unpriced.
type ItemTierPricing struct {
	ID          uint              `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID      uint              `gorm:"column:item_id;not null;uniqueIndex:idx_item_tier,priority:1"`
	PricingTier enums.PricingTier `gorm:"column:pricing_tier;size:10;not null;uniqueIndex:idx_item_tier,priority:2"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Item *Item `gorm:"foreignKey:ItemID"`
}

// TableName keeps the legacy table name.
func (ItemTierPricing) TableName() string {
	return "item_tier_pricing"
}
