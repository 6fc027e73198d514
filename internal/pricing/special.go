package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"gorm.io/gorm"
)

// CreateSpecial files a discount request for a customer/item pair. Requests
// start Pending and carry a negative amount added to the tier price once
// approved.
func (s *service) CreateSpecial(ctx context.Context, input CreateSpecialInput) (*SpecialPricingDTO, error) {
	if !input.Discount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be a negative amount")
	}
	if _, err := s.loadCustomer(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.loadItem(ctx, input.ItemID); err != nil {
		return nil, err
	}

	pending, err := s.repo.HasPendingSpecial(ctx, input.CustomerID, input.ItemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check pending special pricing")
	}
	if pending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a pending request already exists for this customer and item")
	}

	row := &models.CustomerSpecialPricing{
		CustomerID:     input.CustomerID,
		ItemID:         input.ItemID,
		Discount:       input.Discount,
		ApprovalStatus: enums.ApprovalStatusPending,
		CreatedByID:    input.CreatedByID,
	}
	created, err := s.repo.CreateSpecial(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert special pricing")
	}
	return NewSpecialPricingDTO(created), nil
}

// ApproveSpecial moves a pending request to Approved. Terminal rows cannot be
// decided again; a fresh request must be filed instead.
func (s *service) ApproveSpecial(ctx context.Context, id uint, deciderID uint) (*SpecialPricingDTO, error) {
	return s.decideSpecial(ctx, id, deciderID, enums.ApprovalStatusApproved)
}

// RejectSpecial moves a pending request to Rejected. The row is kept for
// audit.
func (s *service) RejectSpecial(ctx context.Context, id uint, deciderID uint) (*SpecialPricingDTO, error) {
	return s.decideSpecial(ctx, id, deciderID, enums.ApprovalStatusRejected)
}

func (s *service) decideSpecial(ctx context.Context, id uint, deciderID uint, decision enums.ApprovalStatus) (*SpecialPricingDTO, error) {
	row, err := s.loadSpecial(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.ApprovalStatus.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "request has already been decided").
			WithDetails(map[string]string{"approval_status": row.ApprovalStatus.String()})
	}

	now := time.Now().UTC()
	row.ApprovalStatus = decision
	row.DecidedAt = &now
	if deciderID != 0 {
		row.DecidedByID = &deciderID
	}

	updated, err := s.repo.UpdateSpecial(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update special pricing")
	}
	return NewSpecialPricingDTO(updated), nil
}

// DeleteSpecial removes a request. Approved discounts are withdrawn by
// deleting the row; pending and rejected rows can be cleaned up the same way.
func (s *service) DeleteSpecial(ctx context.Context, id uint) error {
	if _, err := s.loadSpecial(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteSpecial(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete special pricing")
	}
	return nil
}

// ListSpecials returns requests filtered by customer, item, and status.
func (s *service) ListSpecials(ctx context.Context, customerID, itemID *uint, status *enums.ApprovalStatus) ([]SpecialPricingDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid approval status")
	}
	rows, err := s.repo.ListSpecials(ctx, customerID, itemID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list special pricing")
	}
	out := make([]SpecialPricingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewSpecialPricingDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) loadSpecial(ctx context.Context, id uint) (*models.CustomerSpecialPricing, error) {
	row, err := s.repo.FindSpecialByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "special pricing request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load special pricing")
	}
	return row, nil
}
