package accounts

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// AccountDTO is the serialized account. The password hash never leaves the
// service layer.
type AccountDTO struct {
	ID                  uint                `json:"account_id"`
	Username            string              `json:"username"`
	FirstName           string              `json:"first_name,omitempty"`
	LastName            string              `json:"last_name,omitempty"`
	Role                enums.AccountRole   `json:"role"`
	CostTier            *enums.PricingTier  `json:"cost_tier,omitempty"`
	AllowedSellingTiers []enums.PricingTier `json:"allowed_selling_tiers"`
	IsActive            bool                `json:"is_active"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// NewAccountDTO maps an account row into its transport shape.
func NewAccountDTO(account *models.Account) *AccountDTO {
	if account == nil {
		return nil
	}
	return &AccountDTO{
		ID:                  account.ID,
		Username:            account.Username,
		FirstName:           account.FirstName,
		LastName:            account.LastName,
		Role:                account.Role,
		CostTier:            account.CostTier,
		AllowedSellingTiers: account.AllowedSellingTiers(),
		IsActive:            account.IsActive,
		CreatedAt:           account.CreatedAt,
		UpdatedAt:           account.UpdatedAt,
	}
}
