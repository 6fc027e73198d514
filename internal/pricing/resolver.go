package pricing

import (
	"fmt"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Quote is the outcome of resolving a price for one customer and item.
type Quote struct {
	Tier       enums.PricingTier
	TierSource TierSource
	TierPrice  decimal.Decimal
	Discount   decimal.Decimal
	FinalPrice decimal.Decimal
	Reason     string
}

// TierSource records where the effective tier came from.
type TierSource string

const (
	TierSourceBrand     TierSource = "brand_assignment"
	TierSourceCustomer  TierSource = "customer_default"
	TierSourceRequested TierSource = "requested"
)

// ResolveInput carries everything the resolver needs. All rows are plain
// values so the resolver stays free of database access.
type ResolveInput struct {
	CustomerTier    enums.PricingTier
	RequestedTier   *enums.PricingTier
	BrandAssignment *models.CustomerBrandPricing
	TierPrices      []models.ItemTierPricing
	SpecialPricing  []models.CustomerSpecialPricing
}

// Resolve computes the unit price for a customer buying an item.
//
// A requested tier, when present, overrides everything else; otherwise the
// effective tier is the brand assignment when one names a real tier, falling
// back to the customer's default tier. A tier without a configured price
// resolves to zero with a reason rather than failing, so quoting never blocks
// a sale that staff can price manually. Only Approved special pricing rows
// apply; the discount is a negative amount added to the tier price and the
// final price never drops below zero.
func Resolve(input ResolveInput) Quote {
	quote := Quote{
		Tier:       input.CustomerTier,
		TierSource: TierSourceCustomer,
	}
	if input.BrandAssignment != nil && input.BrandAssignment.HasTier() {
		quote.Tier = input.BrandAssignment.PricingTier
		quote.TierSource = TierSourceBrand
	}
	if input.RequestedTier != nil {
		quote.Tier = *input.RequestedTier
		quote.TierSource = TierSourceRequested
	}

	priced := false
	for _, row := range input.TierPrices {
		if row.PricingTier == quote.Tier {
			quote.TierPrice = row.Price
			priced = true
			break
		}
	}
	if !priced {
		quote.Reason = fmt.Sprintf("no price configured for tier %s", quote.Tier)
		return quote
	}

	if special := latestApproved(input.SpecialPricing); special != nil {
		quote.Discount = special.Discount
	}

	quote.FinalPrice = quote.TierPrice.Add(quote.Discount)
	if quote.FinalPrice.IsNegative() {
		quote.FinalPrice = decimal.Zero
	}
	return quote
}

// latestApproved returns the approved row that was decided last. Pending and
// rejected rows never influence pricing.
func latestApproved(rows []models.CustomerSpecialPricing) *models.CustomerSpecialPricing {
	var latest *models.CustomerSpecialPricing
	for i := range rows {
		row := &rows[i]
		if row.ApprovalStatus != enums.ApprovalStatusApproved {
			continue
		}
		if latest == nil || decidedAfter(row, latest) {
			latest = row
		}
	}
	return latest
}

func decidedAfter(a, b *models.CustomerSpecialPricing) bool {
	switch {
	case a.DecidedAt != nil && b.DecidedAt != nil:
		return a.DecidedAt.After(*b.DecidedAt)
	case a.DecidedAt != nil:
		return true
	case b.DecidedAt != nil:
		return false
	default:
		return a.CreatedAt.After(b.CreatedAt)
	}
}
