package reports

import (
	"context"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository runs the aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountActiveCustomers counts customers that are not archived.
func (r *Repository) CountActiveCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("status = ?", enums.RecordStatusActive).
		Count(&count).
		Error
	return count, err
}

// CountPendingSpecials counts discount requests still waiting on a decision.
func (r *Repository) CountPendingSpecials(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CustomerSpecialPricing{}).
		Where("approval_status = ?", enums.ApprovalStatusPending).
		Count(&count).
		Error
	return count, err
}

// CountIncompleteOutgoing counts OUTGOING transactions with at least one
// progress flag still unset.
func (r *Repository) CountIncompleteOutgoing(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("transaction_type = ?", enums.TransactionTypeOutgoing).
		Where("NOT (is_released AND is_paid AND is_or_sent)").
		Count(&count).
		Error
	return count, err
}

// RecentTransactions returns the latest transactions with their associations.
func (r *Repository) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Customer").
		Preload("Items").
		Preload("Items.Item").
		Order("transacted_date DESC, transaction_id DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}
