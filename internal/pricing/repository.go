package pricing

import (
	"context"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles tier pricing, brand tier assignments, and special
// pricing persistence.
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

// UpsertTierPrice writes the item's price at a tier, replacing any prior row.
func (r *Repository) UpsertTierPrice(ctx context.Context, row *models.ItemTierPricing) (*models.ItemTierPricing, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}, {Name: "pricing_tier"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(row).
		Error
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListTierPrices returns the configured prices for an item.
func (r *Repository) ListTierPrices(ctx context.Context, itemID uint) ([]models.ItemTierPricing, error) {
	var rows []models.ItemTierPricing
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Find(&rows).
		Error
	return rows, err
}

// DeleteTierPrice removes the item's price at one tier.
func (r *Repository) DeleteTierPrice(ctx context.Context, itemID uint, tier enums.PricingTier) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("item_id = ? AND pricing_tier = ?", itemID, tier).
		Delete(&models.ItemTierPricing{})
	return result.RowsAffected, result.Error
}

// UpsertBrandAssignment writes the customer's tier for a brand, replacing any
// prior assignment. The upsert keeps repeated assigns idempotent.
func (r *Repository) UpsertBrandAssignment(ctx context.Context, row *models.CustomerBrandPricing) (*models.CustomerBrandPricing, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "brand_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"pricing_tier", "updated_at"}),
		}).
		Create(row).
		Error
	if err != nil {
		return nil, err
	}
	return row, nil
}

// GetBrandAssignment returns the assignment for a (customer, brand) pair.
func (r *Repository) GetBrandAssignment(ctx context.Context, customerID, brandID uint) (*models.CustomerBrandPricing, error) {
	var row models.CustomerBrandPricing
	err := r.db.WithContext(ctx).
		First(&row, "customer_id = ? AND brand_id = ?", customerID, brandID).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteBrandAssignment removes the assignment for a (customer, brand) pair.
func (r *Repository) DeleteBrandAssignment(ctx context.Context, customerID, brandID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND brand_id = ?", customerID, brandID).
		Delete(&models.CustomerBrandPricing{})
	return result.RowsAffected, result.Error
}

// ListCustomerAssignments returns a customer's brand assignments, placeholder
// rows included.
func (r *Repository) ListCustomerAssignments(ctx context.Context, customerID uint) ([]models.CustomerBrandPricing, error) {
	var rows []models.CustomerBrandPricing
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("brand_id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListActiveBrandIDs returns the IDs of brands still in rotation.
func (r *Repository) ListActiveBrandIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Where("status = ?", enums.RecordStatusActive).
		Pluck("brand_id", &ids).
		Error
	return ids, err
}

// CreateAssignments bulk inserts assignment rows.
func (r *Repository) CreateAssignments(ctx context.Context, rows []models.CustomerBrandPricing) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// CreateSpecial inserts a special pricing request.
func (r *Repository) CreateSpecial(ctx context.Context, row *models.CustomerSpecialPricing) (*models.CustomerSpecialPricing, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateSpecial saves the full special pricing row.
func (r *Repository) UpdateSpecial(ctx context.Context, row *models.CustomerSpecialPricing) (*models.CustomerSpecialPricing, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindSpecialByID loads one special pricing row.
func (r *Repository) FindSpecialByID(ctx context.Context, id uint) (*models.CustomerSpecialPricing, error) {
	var row models.CustomerSpecialPricing
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteSpecial removes a special pricing row.
func (r *Repository) DeleteSpecial(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CustomerSpecialPricing{}).Error
}

// ListSpecials returns special pricing rows filtered by customer, item, and
// approval status.
func (r *Repository) ListSpecials(ctx context.Context, customerID, itemID *uint, status *enums.ApprovalStatus) ([]models.CustomerSpecialPricing, error) {
	qb := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Item").
		Model(&models.CustomerSpecialPricing{})
	if customerID != nil {
		qb = qb.Where("customer_id = ?", *customerID)
	}
	if itemID != nil {
		qb = qb.Where("item_id = ?", *itemID)
	}
	if status != nil {
		qb = qb.Where("approval_status = ?", *status)
	}
	var rows []models.CustomerSpecialPricing
	err := qb.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// ListSpecialsForPair returns all special pricing rows for a customer/item.
func (r *Repository) ListSpecialsForPair(ctx context.Context, customerID, itemID uint) ([]models.CustomerSpecialPricing, error) {
	var rows []models.CustomerSpecialPricing
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND item_id = ?", customerID, itemID).
		Find(&rows).
		Error
	return rows, err
}

// HasPendingSpecial reports whether a pending request already exists for the
// customer/item pair.
func (r *Repository) HasPendingSpecial(ctx context.Context, customerID, itemID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CustomerSpecialPricing{}).
		Where("customer_id = ? AND item_id = ? AND approval_status = ?", customerID, itemID, enums.ApprovalStatusPending).
		Count(&count).
		Error
	return count > 0, err
}
