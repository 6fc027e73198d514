package customers

import (
	"context"
	"strings"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles customer persistence.
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

// Create inserts a new customer row.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Update saves the full customer row.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// FindByID loads a customer without associations.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "customer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetDetail loads a customer with its brand tier assignments.
func (r *Repository) GetDetail(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("BrandPricing").
		Preload("BrandPricing.Brand").
		First(&customer, "customer_id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns customers filtered by status, type, and company name search.
func (r *Repository) List(ctx context.Context, status *enums.RecordStatus, customerType *enums.CustomerType, search string) ([]models.Customer, error) {
	qb := r.db.WithContext(ctx).Model(&models.Customer{})
	if status != nil {
		qb = qb.Where("status = ?", *status)
	}
	if customerType != nil {
		qb = qb.Where("customer_type = ?", *customerType)
	}
	if search = strings.TrimSpace(search); search != "" {
		qb = qb.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var rows []models.Customer
	err := qb.Order("company_name ASC").Find(&rows).Error
	return rows, err
}
