package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/beautytrade/inventory-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository handles batch and transaction persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateBatch inserts a new stock lot.
func (r *Repository) CreateBatch(ctx context.Context, batch *models.ItemBatch) (*models.ItemBatch, error) {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

// UpdateBatch saves the full batch row.
func (r *Repository) UpdateBatch(ctx context.Context, batch *models.ItemBatch) (*models.ItemBatch, error) {
	if err := r.db.WithContext(ctx).Save(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

// FindBatch loads one batch by its item and batch number.
func (r *Repository) FindBatch(ctx context.Context, itemID uint, batchNumber int) (*models.ItemBatch, error) {
	var batch models.ItemBatch
	err := r.db.WithContext(ctx).
		First(&batch, "item_id = ? AND batch_number = ?", itemID, batchNumber).
		Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListBatches returns an item's batches in receipt order.
func (r *Repository) ListBatches(ctx context.Context, itemID uint) ([]models.ItemBatch, error) {
	var rows []models.ItemBatch
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("batch_number ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListBatchesNewestFirst returns an item's batches with the latest receipt
// first, as consumed by negative adjustments.
func (r *Repository) ListBatchesNewestFirst(ctx context.Context, itemID uint) ([]models.ItemBatch, error) {
	var rows []models.ItemBatch
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("batch_number DESC").
		Find(&rows).
		Error
	return rows, err
}

// NextBatchNumber returns the next batch number for an item, starting at 1.
func (r *Repository) NextBatchNumber(ctx context.Context, itemID uint) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.ItemBatch{}).
		Where("item_id = ?", itemID).
		Select("MAX(batch_number)").
		Scan(&max).
		Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// CreateTransaction inserts a transaction header.
func (r *Repository) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction saves the full transaction header.
func (r *Repository) UpdateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Save(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateTransactionItems inserts transaction lines in bulk.
func (r *Repository) CreateTransactionItems(ctx context.Context, rows []models.TransactionItem) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindTransactionByID loads the header without associations.
func (r *Repository) FindTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).First(&txn, "transaction_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransactionDetail loads a transaction with brand, customer, and lines.
func (r *Repository) GetTransactionDetail(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Customer").
		Preload("Items").
		Preload("Items.Item").
		First(&txn, "transaction_id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// TransactionFilters narrows transaction listings. A zero Page disables
// pagination and returns every matching row, which exports rely on.
type TransactionFilters struct {
	Type       *enums.TransactionType
	BrandID    *uint
	CustomerID *uint
	ItemID     *uint
	Incomplete bool
	From       *time.Time
	To         *time.Time
	Page       pagination.Params

	cursor *pagination.Cursor
}

// ListTransactions returns transactions matching the filters, newest first.
func (r *Repository) ListTransactions(ctx context.Context, filters TransactionFilters) ([]models.Transaction, error) {
	qb := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Customer").
		Preload("Items").
		Preload("Items.Item").
		Model(&models.Transaction{})
	if filters.Type != nil {
		qb = qb.Where("transaction_type = ?", *filters.Type)
	}
	if filters.BrandID != nil {
		qb = qb.Where("brand_id = ?", *filters.BrandID)
	}
	if filters.CustomerID != nil {
		qb = qb.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.ItemID != nil {
		qb = qb.Where("transaction_id IN (?)",
			r.db.Model(&models.TransactionItem{}).Select("transaction_id").Where("item_id = ?", *filters.ItemID))
	}
	if filters.Incomplete {
		qb = qb.Where("transaction_type = ?", enums.TransactionTypeOutgoing).
			Where("NOT (is_released AND is_paid AND is_or_sent)")
	}
	if filters.From != nil {
		qb = qb.Where("transacted_date >= ?", *filters.From)
	}
	if filters.To != nil {
		qb = qb.Where("transacted_date <= ?", *filters.To)
	}
	if filters.cursor != nil {
		qb = qb.Where("(transacted_date, transaction_id) < (?, ?)", filters.cursor.CreatedAt, filters.cursor.ID)
	}
	qb = qb.Order("transacted_date DESC, transaction_id DESC")
	if filters.Page.Limit > 0 {
		qb = qb.Limit(pagination.LimitWithBuffer(filters.Page.Limit))
	}
	var rows []models.Transaction
	err := qb.Find(&rows).Error
	return rows, err
}

// NextReferenceNumber issues the next sequential reference for the year, in
// the form YYYY-NNNN. Sequences restart each year.
func (r *Repository) NextReferenceNumber(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("%d-", year)
	var latest *string
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("reference_number LIKE ?", prefix+"%").
		Select("MAX(reference_number)").
		Scan(&latest).
		Error
	if err != nil {
		return "", err
	}

	seq := 1
	if latest != nil {
		var prevYear, prevSeq int
		if _, err := fmt.Sscanf(*latest, "%d-%d", &prevYear, &prevSeq); err == nil && prevYear == year {
			seq = prevSeq + 1
		}
	}
	return fmt.Sprintf("%d-%04d", year, seq), nil
}
