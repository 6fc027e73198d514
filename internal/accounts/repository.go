package accounts

import (
	"context"
	"strings"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles account persistence.
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

// Create inserts a new account row.
func (r *Repository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// Update saves the full account row.
func (r *Repository) Update(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// FindByID loads an account by its primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "account_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUsername loads an account by its login name.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// List returns accounts filtered by role, active state, and name search.
func (r *Repository) List(ctx context.Context, role *enums.AccountRole, active *bool, search string) ([]models.Account, error) {
	qb := r.db.WithContext(ctx).Model(&models.Account{})
	if role != nil {
		qb = qb.Where("role = ?", *role)
	}
	if active != nil {
		qb = qb.Where("is_active = ?", *active)
	}
	if search = strings.TrimSpace(search); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", needle, needle, needle)
	}
	var rows []models.Account
	err := qb.Order("username ASC").Find(&rows).Error
	return rows, err
}
