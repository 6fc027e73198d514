package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// Item is a catalog entry. Stock is never stored on the item: the displayed
// quantity is the sum of its batches' remaining quantities, and availability
// is derived from that sum and the threshold.
type Item struct {
	ID             uint                `gorm:"column:item_id;primaryKey;autoIncrement"`
	BrandID        uint                `gorm:"column:brand_id;not null;uniqueIndex:idx_item_name_brand,priority:2"`
	ItemName       string              `gorm:"column:item_name;size:100;not null;uniqueIndex:idx_item_name_brand,priority:1"`
	SKU            *string             `gorm:"column:sku;size:50;uniqueIndex"`
	UOM            enums.UnitOfMeasure `gorm:"column:uom;size:10;not null;default:pc"`
	ThresholdValue int                 `gorm:"column:threshold_value;not null;default:10"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Brand       *Brand            `gorm:"foreignKey:BrandID"`
	TierPricing []ItemTierPricing `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Batches     []ItemBatch       `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the legacy table name.
func (Item) TableName() string {
	return "inventory_item"
}

// TotalQuantity sums remaining stock across the preloaded batches.
func (i Item) TotalQuantity() int {
	total := 0
	for _, batch := range i.Batches {
		total += batch.RemainingQuantity
	}
	return total
}

// ActiveBatchCount counts preloaded batches that still hold stock.
func (i Item) ActiveBatchCount() int {
	count := 0
	for _, batch := range i.Batches {
		if batch.RemainingQuantity > 0 {
			count++
		}
	}
	return count
}

// Availability derives the stock status from the preloaded batches.
func (i Item) Availability() enums.AvailabilityStatus {
	return enums.AvailabilityFor(i.TotalQuantity(), i.ThresholdValue)
}
