package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// Customer is a buying account. PricingTier is the default tier used when no
// brand-specific assignment exists.
type Customer struct {
	ID            uint                  `gorm:"column:customer_id;primaryKey;autoIncrement"`
	CompanyName   string                `gorm:"column:company_name;size:100;uniqueIndex;not null"`
	ContactPerson string                `gorm:"column:contact_person;size:50;not null"`
	Address       string                `gorm:"column:address;not null"`
	ContactNumber string                `gorm:"column:contact_number;size:15;not null"`
	TinID         *string               `gorm:"column:tin_id;size:15"`
	CustomerType  enums.CustomerType    `gorm:"column:customer_type;size:20;not null"`
	Platform      enums.ContactPlatform `gorm:"column:platform;size:20;not null;default:whatsapp"`
	PricingTier   enums.PricingTier     `gorm:"column:pricing_tier;size:10;not null;default:SRP"`
	Status        enums.RecordStatus    `gorm:"column:status;size:10;not null;default:Active"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`

	BrandPricing   []CustomerBrandPricing   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	SpecialPricing []CustomerSpecialPricing `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the legacy table name.
func (Customer) TableName() string {
	return "customer"
}
