package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// Account is a back-office user. CostTier caps the tiers the account may
// sell at: only tiers strictly below the cost tier are allowed.
type Account struct {
	ID           uint               `gorm:"column:account_id;primaryKey;autoIncrement"`
	Username     string             `gorm:"column:username;size:30;uniqueIndex;not null"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	FirstName    string             `gorm:"column:first_name;size:50"`
	LastName     string             `gorm:"column:last_name;size:50"`
	Role         enums.AccountRole  `gorm:"column:role;size:20;not null"`
	CostTier     *enums.PricingTier `gorm:"column:cost_tier;size:10"`
	IsActive     bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (Account) TableName() string {
	return "account"
}

// AllowedSellingTiers returns the tiers this account may sell at. Accounts
// without a cost tier may sell at any tier.
func (a Account) AllowedSellingTiers() []enums.PricingTier {
	if a.CostTier == nil {
		return enums.PricingTiers()
	}
	ownRank, ok := a.CostTier.Rank()
	if !ok {
		return nil
	}
	var allowed []enums.PricingTier
	for _, tier := range enums.PricingTiers() {
		if rank, ok := tier.Rank(); ok && rank > ownRank {
			allowed = append(allowed, tier)
		}
	}
	return allowed
}

// CanSellAtTier reports whether the account may sell at the given tier.
func (a Account) CanSellAtTier(tier enums.PricingTier) bool {
	for _, allowed := range a.AllowedSellingTiers() {
		if allowed == tier {
			return true
		}
	}
	return false
}
