package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Transaction is one stock movement: goods received from a brand, goods
// dispatched to a customer, or a manual adjustment. Rows are append-only;
// only the OUTGOING progress flags may change after creation.
type Transaction struct {
	ID              uint                  `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	BrandID         uint                  `gorm:"column:brand_id;not null"`
	CustomerID      *uint                 `gorm:"column:customer_id"`
	AccountID       *uint                 `gorm:"column:account_id"`
	TransactionType enums.TransactionType `gorm:"column:transaction_type;size:20;not null"`
	IsReleased      bool                  `gorm:"column:is_released;not null;default:false"`
	IsPaid          bool                  `gorm:"column:is_paid;not null;default:false"`
	IsORSent        bool                  `gorm:"column:is_or_sent;not null;default:false"`
	VATType         *enums.VATType        `gorm:"column:vat_type;size:10"`
	TotalAmount     decimal.Decimal       `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	VATAmount       decimal.Decimal       `gorm:"column:vat_amount;type:numeric(12,2);not null;default:0"`
	TransactedDate  time.Time             `gorm:"column:transacted_date;not null"`
	DueDate         *time.Time            `gorm:"column:due_date"`
	ReferenceNumber string                `gorm:"column:reference_number;size:20;uniqueIndex:idx_transaction_reference_number"`
	Notes           *string               `gorm:"column:notes"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`

	Brand    *Brand            `gorm:"foreignKey:BrandID"`
	Customer *Customer         `gorm:"foreignKey:CustomerID"`
	Account  *Account          `gorm:"foreignKey:AccountID"`
	Items    []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the legacy table name.
func (Transaction) TableName() string {
	return "transaction"
}

// IsCompleted reports whether the transaction needs no further action.
// OUTGOING transactions complete once released, paid, and invoiced;
// everything else completes at creation.
func (t Transaction) IsCompleted() bool {
	if t.TransactionType == enums.TransactionTypeOutgoing {
		return t.IsReleased && t.IsPaid && t.IsORSent
	}
	return true
}
