package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemBatch is one received lot of an item. Batch numbers count up from 1
// per item. Batches are decremented by transactions and never deleted while
// history references them.
type ItemBatch struct {
	ID                uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID            uint            `gorm:"column:item_id;not null;uniqueIndex:idx_item_batch_number,priority:1"`
	BatchNumber       int             `gorm:"column:batch_number;not null;uniqueIndex:idx_item_batch_number,priority:2"`
	CostPrice         decimal.Decimal `gorm:"column:cost_price;type:numeric(10,2);not null"`
	InitialQuantity   int             `gorm:"column:initial_quantity;not null"`
	RemainingQuantity int             `gorm:"column:remaining_quantity;not null"`
	TransactionID     *uint           `gorm:"column:transaction_id"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`

	Item        *Item        `gorm:"foreignKey:ItemID"`
	Transaction *Transaction `gorm:"foreignKey:TransactionID"`
}

// TableName keeps the legacy table name.
func (ItemBatch) TableName() string {
	return "inventory_item_batch"
}
