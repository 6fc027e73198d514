package inventory

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// BatchDTO is the serialized view of one stock lot.
type BatchDTO struct {
	ID                uint      `json:"batch_id"`
	ItemID            uint      `json:"item_id"`
	BatchNumber       int       `json:"batch_number"`
	CostPrice         string    `json:"cost_price"`
	InitialQuantity   int       `json:"initial_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewBatchDTO maps a batch row into its transport shape.
func NewBatchDTO(batch *models.ItemBatch) *BatchDTO {
	if batch == nil {
		return nil
	}
	return &BatchDTO{
		ID:                batch.ID,
		ItemID:            batch.ItemID,
		BatchNumber:       batch.BatchNumber,
		CostPrice:         batch.CostPrice.StringFixed(2),
		InitialQuantity:   batch.InitialQuantity,
		RemainingQuantity: batch.RemainingQuantity,
		CreatedAt:         batch.CreatedAt,
	}
}

// TransactionLineDTO is one line of a serialized transaction.
type TransactionLineDTO struct {
	ID          uint               `json:"id"`
	ItemID      uint               `json:"item_id"`
	ItemName    string             `json:"item_name,omitempty"`
	BatchID     *uint              `json:"batch_id,omitempty"`
	Quantity    int                `json:"quantity"`
	UnitPrice   string             `json:"unit_price"`
	TotalPrice  string             `json:"total_price"`
	PricingTier *enums.PricingTier `json:"pricing_tier,omitempty"`
}

// TransactionDTO is the serialized transaction with its lines.
type TransactionDTO struct {
	ID              uint                  `json:"transaction_id"`
	ReferenceNumber string                `json:"reference_number"`
	TransactionType enums.TransactionType `json:"transaction_type"`
	BrandID         uint                  `json:"brand_id"`
	BrandName       string                `json:"brand_name,omitempty"`
	CustomerID      *uint                 `json:"customer_id,omitempty"`
	CustomerName    string                `json:"customer_name,omitempty"`
	AccountID       *uint                 `json:"account_id,omitempty"`
	IsReleased      bool                  `json:"is_released"`
	IsPaid          bool                  `json:"is_paid"`
	IsORSent        bool                  `json:"is_or_sent"`
	IsCompleted     bool                  `json:"is_completed"`
	VATType         *enums.VATType        `json:"vat_type,omitempty"`
	TotalAmount     string                `json:"total_amount"`
	VATAmount       string                `json:"vat_amount"`
	TransactedDate  time.Time             `json:"transacted_date"`
	DueDate         *time.Time            `json:"due_date,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
	Items           []TransactionLineDTO  `json:"items,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// TransactionPage is one page of a transaction listing. NextCursor is empty
// on the last page and when the listing was not paginated.
type TransactionPage struct {
	Transactions []TransactionDTO `json:"transactions"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

// NewTransactionDTO maps a transaction with preloaded associations into its
// transport shape.
func NewTransactionDTO(txn *models.Transaction) *TransactionDTO {
	if txn == nil {
		return nil
	}
	dto := &TransactionDTO{
		ID:              txn.ID,
		ReferenceNumber: txn.ReferenceNumber,
		TransactionType: txn.TransactionType,
		BrandID:         txn.BrandID,
		CustomerID:      txn.CustomerID,
		AccountID:       txn.AccountID,
		IsReleased:      txn.IsReleased,
		IsPaid:          txn.IsPaid,
		IsORSent:        txn.IsORSent,
		IsCompleted:     txn.IsCompleted(),
		VATType:         txn.VATType,
		TotalAmount:     txn.TotalAmount.StringFixed(2),
		VATAmount:       txn.VATAmount.StringFixed(2),
		TransactedDate:  txn.TransactedDate,
		DueDate:         txn.DueDate,
		Notes:           txn.Notes,
		CreatedAt:       txn.CreatedAt,
	}
	if txn.Brand != nil {
		dto.BrandName = txn.Brand.BrandName
	}
	if txn.Customer != nil {
		dto.CustomerName = txn.Customer.CompanyName
	}
	for _, line := range txn.Items {
		entry := TransactionLineDTO{
			ID:          line.ID,
			ItemID:      line.ItemID,
			BatchID:     line.BatchID,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			TotalPrice:  line.TotalPrice.StringFixed(2),
			PricingTier: line.PricingTier,
		}
		if line.Item != nil {
			entry.ItemName = line.Item.ItemName
		}
		dto.Items = append(dto.Items, entry)
	}
	return dto
}
