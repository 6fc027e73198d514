package customers

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

// Service exposes customer management operations.
type Service interface {
	Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error)
	Update(ctx context.Context, customerID uint, input UpdateCustomerInput) (*CustomerDTO, error)
	Get(ctx context.Context, customerID uint) (*CustomerDTO, error)
	List(ctx context.Context, status *enums.RecordStatus, customerType *enums.CustomerType, search string) ([]CustomerDTO, error)
	Archive(ctx context.Context, customerID uint) (*CustomerDTO, error)
}

// CreateCustomerInput holds the validated payload to create a customer.
type CreateCustomerInput struct {
	CompanyName   string
	ContactPerson string
	Address       string
	ContactNumber string
	TinID         *string
	CustomerType  enums.CustomerType
	Platform      enums.ContactPlatform
	PricingTier   enums.PricingTier
}

// UpdateCustomerInput holds optional mutation values for a customer.
type UpdateCustomerInput struct {
	CompanyName   *string
	ContactPerson *string
	Address       *string
	ContactNumber *string
	TinID         *string
	CustomerType  *enums.CustomerType
	Platform      *enums.ContactPlatform
	PricingTier   *enums.PricingTier
	Status        *enums.RecordStatus
}

type service struct {
	repo *Repository
}

// NewService constructs a customer service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

// Create inserts a new active customer. The default tier falls back to SRP
// when none is supplied.
func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}
	if !input.CustomerType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer_type")
	}
	platform := input.Platform
	if platform == "" {
		platform = enums.ContactPlatformWhatsApp
	}
	if !platform.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid platform")
	}
	tier := input.PricingTier
	if tier == enums.PricingTierUnassigned {
		tier = enums.PricingTierSRP
	}
	if !tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing_tier")
	}

	customer := &models.Customer{
		CompanyName:   name,
		ContactPerson: strings.TrimSpace(input.ContactPerson),
		Address:       strings.TrimSpace(input.Address),
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		TinID:         input.TinID,
		CustomerType:  input.CustomerType,
		Platform:      platform,
		PricingTier:   tier,
		Status:        enums.RecordStatusActive,
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "company name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert customer")
	}
	return NewCustomerDTO(created), nil
}

// Update applies the provided changes to an existing customer.
func (s *service) Update(ctx context.Context, customerID uint, input UpdateCustomerInput) (*CustomerDTO, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		name := strings.TrimSpace(*input.CompanyName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name cannot be blank")
		}
		customer.CompanyName = name
	}
	if input.ContactPerson != nil {
		customer.ContactPerson = strings.TrimSpace(*input.ContactPerson)
	}
	if input.Address != nil {
		customer.Address = strings.TrimSpace(*input.Address)
	}
	if input.ContactNumber != nil {
		customer.ContactNumber = strings.TrimSpace(*input.ContactNumber)
	}
	if input.TinID != nil {
		customer.TinID = input.TinID
	}
	if input.CustomerType != nil {
		if !input.CustomerType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer_type")
		}
		customer.CustomerType = *input.CustomerType
	}
	if input.Platform != nil {
		if !input.Platform.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid platform")
		}
		customer.Platform = *input.Platform
	}
	if input.PricingTier != nil {
		if !input.PricingTier.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing_tier")
		}
		customer.PricingTier = *input.PricingTier
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		customer.Status = *input.Status
	}

	if _, err := s.repo.Update(ctx, customer); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "company name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update customer")
	}

	detail, err := s.repo.GetDetail(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer detail")
	}
	return NewCustomerDTO(detail), nil
}

// Get returns a customer with its brand tier assignments.
func (s *service) Get(ctx context.Context, customerID uint) (*CustomerDTO, error) {
	detail, err := s.repo.GetDetail(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer detail")
	}
	return NewCustomerDTO(detail), nil
}

// List returns customers filtered by status, type, and name search.
func (s *service) List(ctx context.Context, status *enums.RecordStatus, customerType *enums.CustomerType, search string) ([]CustomerDTO, error) {
	rows, err := s.repo.List(ctx, status, customerType, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list customers")
	}
	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewCustomerDTO(&rows[i]))
	}
	return out, nil
}

// Archive marks the customer archived, keeping history intact.
func (s *service) Archive(ctx context.Context, customerID uint) (*CustomerDTO, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Status == enums.RecordStatusArchived {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "customer is already archived")
	}

	customer.Status = enums.RecordStatusArchived
	updated, err := s.repo.Update(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: archive customer")
	}
	return NewCustomerDTO(updated), nil
}

func (s *service) load(ctx context.Context, customerID uint) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}
