package models

import (
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// TransactionItem is one line of a transaction. OUTGOING lines record the
// batch they drew from and the tier the unit price was resolved at.
type TransactionItem struct {
	ID            uint               `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID uint               `gorm:"column:transaction_id;not null;index"`
	ItemID        uint               `gorm:"column:item_id;not null"`
	BatchID       *uint              `gorm:"column:batch_id"`
	Quantity      int                `gorm:"column:quantity;not null"`
	UnitPrice     decimal.Decimal    `gorm:"column:unit_price;type:numeric(10,2);not null"`
	TotalPrice    decimal.Decimal    `gorm:"column:total_price;type:numeric(12,2);not null"`
	PricingTier   *enums.PricingTier `gorm:"column:pricing_tier;size:10"`

	Transaction *Transaction `gorm:"foreignKey:TransactionID"`
	Item        *Item        `gorm:"foreignKey:ItemID"`
	Batch       *ItemBatch   `gorm:"foreignKey:BatchID"`
}

// TableName keeps the legacy table name.
func (TransactionItem) TableName() string {
	return "transaction_item"
}
