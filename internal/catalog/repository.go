package catalog

import (
	"context"
	"strings"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository wires together brand and item persistence helpers.
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

// CreateBrand inserts a new brand row.
func (r *Repository) CreateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// UpdateBrand saves the full brand row.
func (r *Repository) UpdateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Save(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

// FindBrandByID loads a brand without associations.
func (r *Repository) FindBrandByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "brand_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListBrands returns brands filtered by status and optional name search.
func (r *Repository) ListBrands(ctx context.Context, status *enums.RecordStatus, search string) ([]models.Brand, error) {
	qb := r.db.WithContext(ctx).Model(&models.Brand{})
	if status != nil {
		qb = qb.Where("status = ?", *status)
	}
	if search = strings.TrimSpace(search); search != "" {
		qb = qb.Where("LOWER(brand_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var rows []models.Brand
	err := qb.Order("brand_name ASC").Find(&rows).Error
	return rows, err
}

// CountItemsForBrand counts catalog entries under the brand.
func (r *Repository) CountItemsForBrand(ctx context.Context, brandID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("brand_id = ?", brandID).
		Count(&count).
		Error
	return count, err
}

// CreateItem inserts a new item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem saves the full item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item; batches and tier prices cascade.
func (r *Repository) DeleteItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("item_id = ?", id).Delete(&models.Item{}).Error
}

// FindItemByID loads an item without associations.
func (r *Repository) FindItemByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "item_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemDetail fetches an item with brand, batches, and tier pricing.
func (r *Repository) GetItemDetail(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("batch_number ASC")
		}).
		Preload("TierPricing").
		First(&item, "item_id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns items with stock associations, optionally scoped to a brand.
func (r *Repository) ListItems(ctx context.Context, brandID *uint, search string) ([]models.Item, error) {
	qb := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("batch_number ASC")
		}).
		Preload("TierPricing")
	if brandID != nil {
		qb = qb.Where("brand_id = ?", *brandID)
	}
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(item_name) LIKE ? OR LOWER(sku) LIKE ?)", pattern, pattern)
	}
	var rows []models.Item
	err := qb.Order("item_name ASC").Find(&rows).Error
	return rows, err
}

// MaxSKUSequence returns the highest numeric suffix already issued for the
// brand's SKU prefix, or 0 when the brand has no coded items yet.
func (r *Repository) MaxSKUSequence(ctx context.Context, prefix string) (int, error) {
	var skus []string
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("sku LIKE ?", prefix+"-%").
		Pluck("sku", &skus).
		Error
	if err != nil {
		return 0, err
	}
	return maxSequence(skus, prefix), nil
}
