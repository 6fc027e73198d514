package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CustomerSpecialPricing is a per-item discount for one customer, stored as
// a negative amount added to the resolved tier price. Only Approved rows
// affect pricing; a rejected request is kept for audit and a re-request is a
// new row.
type CustomerSpecialPricing struct {
	ID             uint                 `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID     uint                 `gorm:"column:customer_id;not null;index:idx_special_customer_item"`
	ItemID         uint                 `gorm:"column:item_id;not null;index:idx_special_customer_item"`
	Discount       decimal.Decimal      `gorm:"column:discount;type:numeric(10,2);not null"`
	ApprovalStatus enums.ApprovalStatus `gorm:"column:approval_status;size:10;not null;default:Pending"`
	CreatedByID    *uint                `gorm:"column:created_by_id"`
	DecidedByID    *uint                `gorm:"column:decided_by_id"`
	DecidedAt      *time.Time           `gorm:"column:decided_at"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Customer  *Customer `gorm:"foreignKey:CustomerID"`
	Item      *Item     `gorm:"foreignKey:ItemID"`
	CreatedBy *Account  `gorm:"foreignKey:CreatedByID"`
	DecidedBy *Account  `gorm:"foreignKey:DecidedByID"`
}

// TableName keeps the legacy table name.
func (CustomerSpecialPricing) TableName() string {
	return "customer_special_pricing"
}
