package pricing

import (
	"testing"
	"time"

	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func tierPrice(tier enums.PricingTier, price int64) models.ItemTierPricing {
	return models.ItemTierPricing{PricingTier: tier, Price: decimal.NewFromInt(price)}
}

func TestResolveUsesCustomerDefaultTier(t *testing.T) {
	quote := Resolve(ResolveInput{
		CustomerTier: enums.PricingTierRS,
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierRS, 250),
			tierPrice(enums.PricingTierSRP, 300),
		},
	})

	if quote.Tier != enums.PricingTierRS {
		t.Fatalf("expected RS tier, got %s", quote.Tier)
	}
	if quote.TierSource != TierSourceCustomer {
		t.Fatalf("expected customer default source, got %s", quote.TierSource)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected final 250, got %s", quote.FinalPrice)
	}
	if quote.Reason != "" {
		t.Fatalf("expected no reason, got %q", quote.Reason)
	}
}

func TestResolveBrandAssignmentWins(t *testing.T) {
	quote := Resolve(ResolveInput{
		CustomerTier: enums.PricingTierSRP,
		BrandAssignment: &models.CustomerBrandPricing{
			PricingTier: enums.PricingTierDD,
		},
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierDD, 180),
			tierPrice(enums.PricingTierSRP, 300),
		},
	})

	if quote.Tier != enums.PricingTierDD {
		t.Fatalf("expected DD tier, got %s", quote.Tier)
	}
	if quote.TierSource != TierSourceBrand {
		t.Fatalf("expected brand assignment source, got %s", quote.TierSource)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("expected final 180, got %s", quote.FinalPrice)
	}
}

func TestResolvePlaceholderAssignmentFallsBack(t *testing.T) {
	quote := Resolve(ResolveInput{
		CustomerTier: enums.PricingTierSRP,
		BrandAssignment: &models.CustomerBrandPricing{
			PricingTier: enums.PricingTierUnassigned,
		},
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierSRP, 300),
		},
	})

	if quote.Tier != enums.PricingTierSRP {
		t.Fatalf("expected fallback to customer tier, got %s", quote.Tier)
	}
	if quote.TierSource != TierSourceCustomer {
		t.Fatalf("expected customer default source, got %s", quote.TierSource)
	}
}

func TestResolveUnpricedTierReturnsZeroWithReason(t *testing.T) {
	quote := Resolve(ResolveInput{
		CustomerTier: enums.PricingTierRD,
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierSRP, 300),
		},
	})

	if !quote.FinalPrice.IsZero() || !quote.TierPrice.IsZero() {
		t.Fatalf("expected zero price for unpriced tier, got %s", quote.FinalPrice)
	}
	if quote.Reason == "" {
		t.Fatal("expected a reason for the unpriced tier")
	}
}

func TestResolveOnlyApprovedSpecialApplies(t *testing.T) {
	base := ResolveInput{
		CustomerTier: enums.PricingTierSRP,
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierSRP, 300),
		},
	}

	t.Run("pending ignored", func(t *testing.T) {
		input := base
		input.SpecialPricing = []models.CustomerSpecialPricing{
			{Discount: decimal.NewFromInt(-50), ApprovalStatus: enums.ApprovalStatusPending},
		}
		quote := Resolve(input)
		if !quote.FinalPrice.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("pending discount must not apply, got %s", quote.FinalPrice)
		}
	})

	t.Run("rejected ignored", func(t *testing.T) {
		input := base
		input.SpecialPricing = []models.CustomerSpecialPricing{
			{Discount: decimal.NewFromInt(-50), ApprovalStatus: enums.ApprovalStatusRejected},
		}
		quote := Resolve(input)
		if !quote.FinalPrice.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("rejected discount must not apply, got %s", quote.FinalPrice)
		}
	})

	t.Run("approved applies", func(t *testing.T) {
		input := base
		input.SpecialPricing = []models.CustomerSpecialPricing{
			{Discount: decimal.NewFromInt(-50), ApprovalStatus: enums.ApprovalStatusApproved},
		}
		quote := Resolve(input)
		if !quote.FinalPrice.Equal(decimal.NewFromInt(250)) {
			t.Fatalf("expected 250 after discount, got %s", quote.FinalPrice)
		}
		if !quote.Discount.Equal(decimal.NewFromInt(-50)) {
			t.Fatalf("expected discount -50, got %s", quote.Discount)
		}
	})
}

func TestResolveLatestApprovedWins(t *testing.T) {
	earlier := time.Now().Add(-time.Hour)
	later := time.Now()

	quote := Resolve(ResolveInput{
		CustomerTier: enums.PricingTierSRP,
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierSRP, 300),
		},
		SpecialPricing: []models.CustomerSpecialPricing{
			{Discount: decimal.NewFromInt(-20), ApprovalStatus: enums.ApprovalStatusApproved, DecidedAt: &earlier},
			{Discount: decimal.NewFromInt(-60), ApprovalStatus: enums.ApprovalStatusApproved, DecidedAt: &later},
		},
	})

	if !quote.Discount.Equal(decimal.NewFromInt(-60)) {
		t.Fatalf("expected latest approved discount -60, got %s", quote.Discount)
	}
}

func TestResolveFinalPriceFloorsAtZero(t *testing.T) {
	quote := Resolve(ResolveInput{
		CustomerTier: enums.PricingTierSRP,
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierSRP, 100),
		},
		SpecialPricing: []models.CustomerSpecialPricing{
			{Discount: decimal.NewFromInt(-150), ApprovalStatus: enums.ApprovalStatusApproved},
		},
	})

	if !quote.FinalPrice.IsZero() {
		t.Fatalf("expected final price clamped to zero, got %s", quote.FinalPrice)
	}
}

func TestResolveRequestedTierOverrides(t *testing.T) {
	requested := enums.PricingTierSRP
	quote := Resolve(ResolveInput{
		CustomerTier:  enums.PricingTierRS,
		RequestedTier: &requested,
		BrandAssignment: &models.CustomerBrandPricing{
			PricingTier: enums.PricingTierDD,
		},
		TierPrices: []models.ItemTierPricing{
			tierPrice(enums.PricingTierDD, 180),
			tierPrice(enums.PricingTierRS, 250),
			tierPrice(enums.PricingTierSRP, 300),
		},
	})

	if quote.Tier != enums.PricingTierSRP {
		t.Fatalf("expected requested SRP tier, got %s", quote.Tier)
	}
	if quote.TierSource != TierSourceRequested {
		t.Fatalf("expected requested source, got %s", quote.TierSource)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected final 300, got %s", quote.FinalPrice)
	}
}
