package pricing

import (
	"context"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"gorm.io/gorm"
)

// AssignBrandTier sets the tier a customer buys a brand at. Repeating the
// same assignment is a no-op rather than an error.
func (s *service) AssignBrandTier(ctx context.Context, customerID, brandID uint, tier enums.PricingTier) (*AssignmentDTO, error) {
	if !tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing tier")
	}
	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if _, err := s.loadBrand(ctx, brandID); err != nil {
		return nil, err
	}

	row := &models.CustomerBrandPricing{
		CustomerID:  customerID,
		BrandID:     brandID,
		PricingTier: tier,
	}
	saved, err := s.repo.UpsertBrandAssignment(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert brand assignment")
	}
	return NewAssignmentDTO(saved), nil
}

// UnassignBrandTier removes the customer's assignment for a brand, dropping
// them back to their default tier for that brand's items.
func (s *service) UnassignBrandTier(ctx context.Context, customerID, brandID uint) error {
	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return err
	}
	if _, err := s.loadBrand(ctx, brandID); err != nil {
		return err
	}

	affected, err := s.repo.DeleteBrandAssignment(ctx, customerID, brandID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete brand assignment")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "brand assignment not found")
	}
	return nil
}

// ListAssignments returns the customer's brand assignments, placeholder rows
// included so staff can see which brands still need a real tier.
func (s *service) ListAssignments(ctx context.Context, customerID uint) ([]AssignmentDTO, error) {
	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListCustomerAssignments(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list brand assignments")
	}
	out := make([]AssignmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewAssignmentDTO(&rows[i]))
	}
	return out, nil
}

// AssignAllUnassigned writes a placeholder assignment for every active brand
// the customer has no row for yet, so staff can see which brands still need a
// real tier. Placeholder rows never resolve to a price. Returns the number of
// rows created.
func (s *service) AssignAllUnassigned(ctx context.Context, customerID uint) (int, error) {
	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return 0, err
	}

	created := 0
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		brandIDs, err := txRepo.ListActiveBrandIDs(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list brands")
		}
		existing, err := txRepo.ListCustomerAssignments(ctx, customerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list assignments")
		}

		seen := make(map[uint]struct{}, len(existing))
		for _, row := range existing {
			seen[row.BrandID] = struct{}{}
		}

		var missing []models.CustomerBrandPricing
		for _, brandID := range brandIDs {
			if _, ok := seen[brandID]; ok {
				continue
			}
			missing = append(missing, models.CustomerBrandPricing{
				CustomerID:  customerID,
				BrandID:     brandID,
				PricingTier: enums.PricingTierUnassigned,
			})
		}

		if err := txRepo.CreateAssignments(ctx, missing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create placeholder assignments")
		}
		created = len(missing)
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return 0, err
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign all unassigned")
	}
	return created, nil
}
