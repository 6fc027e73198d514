package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/beautytrade/inventory-backend/pkg/db"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes pricing management and resolution operations.
type Service interface {
	SetTierPrice(ctx context.Context, itemID uint, tier enums.PricingTier, price decimal.Decimal) (*TierPriceDTO, error)
	RemoveTierPrice(ctx context.Context, itemID uint, tier enums.PricingTier) error
	ListTierPrices(ctx context.Context, itemID uint) ([]TierPriceDTO, error)

	AssignBrandTier(ctx context.Context, customerID, brandID uint, tier enums.PricingTier) (*AssignmentDTO, error)
	UnassignBrandTier(ctx context.Context, customerID, brandID uint) error
	ListAssignments(ctx context.Context, customerID uint) ([]AssignmentDTO, error)
	AssignAllUnassigned(ctx context.Context, customerID uint) (int, error)

	CreateSpecial(ctx context.Context, input CreateSpecialInput) (*SpecialPricingDTO, error)
	ApproveSpecial(ctx context.Context, id uint, deciderID uint) (*SpecialPricingDTO, error)
	RejectSpecial(ctx context.Context, id uint, deciderID uint) (*SpecialPricingDTO, error)
	DeleteSpecial(ctx context.Context, id uint) error
	ListSpecials(ctx context.Context, customerID, itemID *uint, status *enums.ApprovalStatus) ([]SpecialPricingDTO, error)

	Quote(ctx context.Context, customerID, itemID uint, requestedTier *enums.PricingTier) (*QuoteDTO, error)
	ResolveQuote(ctx context.Context, customerID, itemID uint) (Quote, error)
}

// CreateSpecialInput holds the validated payload for a discount request.
type CreateSpecialInput struct {
	CustomerID  uint
	ItemID      uint
	Discount    decimal.Decimal
	CreatedByID *uint
}

type customerLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
}

type itemLoader interface {
	FindItemByID(ctx context.Context, id uint) (*models.Item, error)
}

type brandLoader interface {
	FindBrandByID(ctx context.Context, id uint) (*models.Brand, error)
}

// service implements the pricing service.
type service struct {
	repo      *Repository
	dbClient  *db.Client
	customers customerLoader
	items     itemLoader
	brands    brandLoader
}

// NewService constructs a pricing service instance.
func NewService(repo *Repository, dbClient *db.Client, customers customerLoader, items itemLoader, brands brandLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	if brands == nil {
		return nil, fmt.Errorf("brand loader required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		customers: customers,
		items:     items,
		brands:    brands,
	}, nil
}

// SetTierPrice writes the item's standard price at one tier. Repeated calls
// overwrite the previous value.
func (s *service) SetTierPrice(ctx context.Context, itemID uint, tier enums.PricingTier, price decimal.Decimal) (*TierPriceDTO, error) {
	if !tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing tier")
	}
	if price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}

	row := &models.ItemTierPricing{
		ItemID:      itemID,
		PricingTier: tier,
		Price:       price,
	}
	saved, err := s.repo.UpsertTierPrice(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert tier price")
	}
	return NewTierPriceDTO(saved), nil
}

// RemoveTierPrice deletes the item's price at one tier.
func (s *service) RemoveTierPrice(ctx context.Context, itemID uint, tier enums.PricingTier) error {
	if !tier.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing tier")
	}
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return err
	}

	affected, err := s.repo.DeleteTierPrice(ctx, itemID, tier)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete tier price")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tier price not found")
	}
	return nil
}

// ListTierPrices returns the configured prices for an item.
func (s *service) ListTierPrices(ctx context.Context, itemID uint) ([]TierPriceDTO, error) {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListTierPrices(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list tier prices")
	}
	out := make([]TierPriceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewTierPriceDTO(&rows[i]))
	}
	return out, nil
}

// Quote resolves the unit price for a customer buying an item. A requested
// tier overrides the resolved one; the caller is responsible for checking the
// seller may quote at it.
func (s *service) Quote(ctx context.Context, customerID, itemID uint, requestedTier *enums.PricingTier) (*QuoteDTO, error) {
	if requestedTier != nil && !requestedTier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing tier")
	}
	quote, err := s.resolve(ctx, customerID, itemID, requestedTier)
	if err != nil {
		return nil, err
	}
	return NewQuoteDTO(customerID, itemID, quote), nil
}

// ResolveQuote resolves a price and returns the raw quote. Callers that need
// the amounts for arithmetic, like transaction posting, use this instead of
// the serialized form.
func (s *service) ResolveQuote(ctx context.Context, customerID, itemID uint) (Quote, error) {
	return s.resolve(ctx, customerID, itemID, nil)
}

func (s *service) resolve(ctx context.Context, customerID, itemID uint, requestedTier *enums.PricingTier) (Quote, error) {
	customer, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return Quote{}, err
	}
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return Quote{}, err
	}

	tierPrices, err := s.repo.ListTierPrices(ctx, itemID)
	if err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list tier prices")
	}
	specials, err := s.repo.ListSpecialsForPair(ctx, customerID, itemID)
	if err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list special pricing")
	}

	input := ResolveInput{
		CustomerTier:   customer.PricingTier,
		RequestedTier:  requestedTier,
		TierPrices:     tierPrices,
		SpecialPricing: specials,
	}
	assignment, err := s.repo.GetBrandAssignment(ctx, customerID, item.BrandID)
	if err == nil {
		input.BrandAssignment = assignment
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load brand assignment")
	}

	return Resolve(input), nil
}

func (s *service) loadCustomer(ctx context.Context, customerID uint) (*models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func (s *service) loadItem(ctx context.Context, itemID uint) (*models.Item, error) {
	item, err := s.items.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func (s *service) loadBrand(ctx context.Context, brandID uint) (*models.Brand, error) {
	brand, err := s.brands.FindBrandByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return brand, nil
}
