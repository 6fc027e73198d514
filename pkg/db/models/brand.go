package models

import (
	"time"

	"github.com/beautytrade/inventory-backend/pkg/enums"
)

// Brand is a supplier whose items we distribute. Many items belong to one
// brand; archiving a brand hides it from dropdowns without touching history.
type Brand struct {
	ID                uint                    `gorm:"column:brand_id;primaryKey;autoIncrement"`
	BrandName         string                  `gorm:"column:brand_name;size:100;uniqueIndex;not null"`
	StreetNumber      *string                 `gorm:"column:street_number;size:20"`
	StreetName        *string                 `gorm:"column:street_name;size:100"`
	Barangay          *string                 `gorm:"column:barangay;size:50"`
	City              *string                 `gorm:"column:city;size:50"`
	Region            *string                 `gorm:"column:region;size:50"`
	PostalCode        *string                 `gorm:"column:postal_code;size:10"`
	TIN               *string                 `gorm:"column:tin;size:20"`
	LandlineNumber    *string                 `gorm:"column:landline_number;size:20"`
	ContactPerson     *string                 `gorm:"column:contact_person;size:100"`
	MobileNumber      *string                 `gorm:"column:mobile_number;size:20"`
	Email             *string                 `gorm:"column:email;size:254"`
	VATClassification enums.VATClassification `gorm:"column:vat_classification;size:20;not null;default:VAT"`
	Status            enums.RecordStatus      `gorm:"column:status;size:20;not null;default:Active"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (Brand) TableName() string {
	return "inventory_brand"
}
