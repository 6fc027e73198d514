package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beautytrade/inventory-backend/pkg/db"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes brand and item catalog management operations.
type Service interface {
	CreateBrand(ctx context.Context, input CreateBrandInput) (*BrandDTO, error)
	UpdateBrand(ctx context.Context, brandID uint, input UpdateBrandInput) (*BrandDTO, error)
	GetBrand(ctx context.Context, brandID uint) (*BrandDTO, error)
	ListBrands(ctx context.Context, status *enums.RecordStatus, search string) ([]BrandDTO, error)
	ArchiveBrand(ctx context.Context, brandID uint) (*BrandDTO, error)

	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	NextSKU(ctx context.Context, brandID uint) (string, error)
	UpdateItem(ctx context.Context, itemID uint, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, itemID uint) error
	GetItem(ctx context.Context, itemID uint) (*ItemDTO, error)
	ListItems(ctx context.Context, brandID *uint, search string) ([]ItemDTO, error)
}

// CreateBrandInput holds the validated payload to create a brand.
type CreateBrandInput struct {
	BrandName         string
	StreetNumber      *string
	StreetName        *string
	Barangay          *string
	City              *string
	Region            *string
	PostalCode        *string
	TIN               *string
	LandlineNumber    *string
	ContactPerson     *string
	MobileNumber      *string
	Email             *string
	VATClassification enums.VATClassification
}

// UpdateBrandInput holds optional mutation values for a brand.
type UpdateBrandInput struct {
	BrandName         *string
	StreetNumber      *string
	StreetName        *string
	Barangay          *string
	City              *string
	Region            *string
	PostalCode        *string
	TIN               *string
	LandlineNumber    *string
	ContactPerson     *string
	MobileNumber      *string
	Email             *string
	VATClassification *enums.VATClassification
	Status            *enums.RecordStatus
}

// CreateItemInput holds the validated payload to create an item.
type CreateItemInput struct {
	BrandID        uint
	ItemName       string
	UOM            enums.UnitOfMeasure
	ThresholdValue *int
}

// UpdateItemInput holds optional mutation values for an item.
type UpdateItemInput struct {
	ItemName       *string
	UOM            *enums.UnitOfMeasure
	ThresholdValue *int
}

// service implements the catalog service.
type service struct {
	repo             *Repository
	dbClient         *db.Client
	defaultThreshold int
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, defaultThreshold int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if defaultThreshold <= 0 {
		defaultThreshold = 10
	}
	return &service{
		repo:             repo,
		dbClient:         dbClient,
		defaultThreshold: defaultThreshold,
	}, nil
}

// CreateBrand inserts a new active brand.
func (s *service) CreateBrand(ctx context.Context, input CreateBrandInput) (*BrandDTO, error) {
	name := strings.TrimSpace(input.BrandName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand_name is required")
	}
	if !input.VATClassification.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vat_classification")
	}

	brand := &models.Brand{
		BrandName:         name,
		StreetNumber:      input.StreetNumber,
		StreetName:        input.StreetName,
		Barangay:          input.Barangay,
		City:              input.City,
		Region:            input.Region,
		PostalCode:        input.PostalCode,
		TIN:               input.TIN,
		LandlineNumber:    input.LandlineNumber,
		ContactPerson:     input.ContactPerson,
		MobileNumber:      input.MobileNumber,
		Email:             input.Email,
		VATClassification: input.VATClassification,
		Status:            enums.RecordStatusActive,
	}

	created, err := s.repo.CreateBrand(ctx, brand)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert brand")
	}
	return NewBrandDTO(created), nil
}

// UpdateBrand applies the provided changes to an existing brand.
func (s *service) UpdateBrand(ctx context.Context, brandID uint, input UpdateBrandInput) (*BrandDTO, error) {
	brand, err := s.loadBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}

	applyUpdateToBrand(brand, input)
	if !brand.VATClassification.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vat_classification")
	}
	if !brand.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	updated, err := s.repo.UpdateBrand(ctx, brand)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update brand")
	}
	return NewBrandDTO(updated), nil
}

// GetBrand returns a single brand.
func (s *service) GetBrand(ctx context.Context, brandID uint) (*BrandDTO, error) {
	brand, err := s.loadBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return NewBrandDTO(brand), nil
}

// ListBrands returns brands filtered by status and name search.
func (s *service) ListBrands(ctx context.Context, status *enums.RecordStatus, search string) ([]BrandDTO, error) {
	rows, err := s.repo.ListBrands(ctx, status, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list brands")
	}
	out := make([]BrandDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewBrandDTO(&rows[i]))
	}
	return out, nil
}

// ArchiveBrand marks the brand archived so it stops appearing in pickers.
func (s *service) ArchiveBrand(ctx context.Context, brandID uint) (*BrandDTO, error) {
	brand, err := s.loadBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if brand.Status == enums.RecordStatusArchived {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "brand is already archived")
	}

	brand.Status = enums.RecordStatusArchived
	updated, err := s.repo.UpdateBrand(ctx, brand)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: archive brand")
	}
	return NewBrandDTO(updated), nil
}

// CreateItem creates an item under a brand, assigning the next SKU in the
// brand's sequence inside one transaction.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.ItemName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_name is required")
	}
	if !input.UOM.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid uom")
	}
	threshold := s.defaultThreshold
	if input.ThresholdValue != nil {
		if *input.ThresholdValue < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "threshold_value must be non-negative")
		}
		threshold = *input.ThresholdValue
	}

	brand, err := s.loadBrand(ctx, input.BrandID)
	if err != nil {
		return nil, err
	}
	if brand.Status != enums.RecordStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot add items to an archived brand")
	}

	var createdID uint
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		prefix := SKUPrefix(brand.ID)
		maxSeq, err := txRepo.MaxSKUSequence(ctx, prefix)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: scan sku sequence")
		}
		sku := FormatSKU(prefix, maxSeq+1)

		item := &models.Item{
			BrandID:        brand.ID,
			ItemName:       name,
			SKU:            &sku,
			UOM:            input.UOM,
			ThresholdValue: threshold,
		}
		created, err := txRepo.CreateItem(ctx, item)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_item_name_brand") {
				return pkgerrors.New(pkgerrors.CodeConflict, "item name already exists for this brand")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
		}
		createdID = created.ID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}

	detail, err := s.repo.GetItemDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item detail")
	}
	return NewItemDTO(detail), nil
}

// NextSKU previews the SKU the brand's next item would be issued. The
// definitive value is still claimed inside the create transaction.
func (s *service) NextSKU(ctx context.Context, brandID uint) (string, error) {
	brand, err := s.loadBrand(ctx, brandID)
	if err != nil {
		return "", err
	}
	prefix := SKUPrefix(brand.ID)
	maxSeq, err := s.repo.MaxSKUSequence(ctx, prefix)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: scan sku sequence")
	}
	return FormatSKU(prefix, maxSeq+1), nil
}

// UpdateItem applies name, unit, and threshold changes. SKU and brand are
// immutable once issued.
func (s *service) UpdateItem(ctx context.Context, itemID uint, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if input.ItemName != nil {
		name := strings.TrimSpace(*input.ItemName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_name cannot be blank")
		}
		item.ItemName = name
	}
	if input.UOM != nil {
		if !input.UOM.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid uom")
		}
		item.UOM = *input.UOM
	}
	if input.ThresholdValue != nil {
		if *input.ThresholdValue < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "threshold_value must be non-negative")
		}
		item.ThresholdValue = *input.ThresholdValue
	}

	if _, err := s.repo.UpdateItem(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "idx_item_name_brand") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item name already exists for this brand")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}

	detail, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item detail")
	}
	return NewItemDTO(detail), nil
}

// DeleteItem removes an item along with its batches and tier prices.
func (s *service) DeleteItem(ctx context.Context, itemID uint) error {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
	}
	return nil
}

// GetItem returns an item with derived stock fields.
func (s *service) GetItem(ctx context.Context, itemID uint) (*ItemDTO, error) {
	detail, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item detail")
	}
	return NewItemDTO(detail), nil
}

// ListItems returns items with stock summaries, optionally scoped to a brand.
func (s *service) ListItems(ctx context.Context, brandID *uint, search string) ([]ItemDTO, error) {
	if brandID != nil {
		if _, err := s.loadBrand(ctx, *brandID); err != nil {
			return nil, err
		}
	}
	rows, err := s.repo.ListItems(ctx, brandID, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewItemDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) loadBrand(ctx context.Context, brandID uint) (*models.Brand, error) {
	brand, err := s.repo.FindBrandByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return brand, nil
}

func (s *service) loadItem(ctx context.Context, itemID uint) (*models.Item, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func applyUpdateToBrand(brand *models.Brand, input UpdateBrandInput) {
	if input.BrandName != nil {
		brand.BrandName = strings.TrimSpace(*input.BrandName)
	}
	if input.StreetNumber != nil {
		brand.StreetNumber = input.StreetNumber
	}
	if input.StreetName != nil {
		brand.StreetName = input.StreetName
	}
	if input.Barangay != nil {
		brand.Barangay = input.Barangay
	}
	if input.City != nil {
		brand.City = input.City
	}
	if input.Region != nil {
		brand.Region = input.Region
	}
	if input.PostalCode != nil {
		brand.PostalCode = input.PostalCode
	}
	if input.TIN != nil {
		brand.TIN = input.TIN
	}
	if input.LandlineNumber != nil {
		brand.LandlineNumber = input.LandlineNumber
	}
	if input.ContactPerson != nil {
		brand.ContactPerson = input.ContactPerson
	}
	if input.MobileNumber != nil {
		brand.MobileNumber = input.MobileNumber
	}
	if input.Email != nil {
		brand.Email = input.Email
	}
	if input.VATClassification != nil {
		brand.VATClassification = *input.VATClassification
	}
	if input.Status != nil {
		brand.Status = *input.Status
	}
}
