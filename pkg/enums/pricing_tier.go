package enums

import "fmt"

// PricingTier represents a distribution pricing tier. Tiers are ordered from
// Regional Distributor (cheapest) down to Suggested Retail Price.
type PricingTier string

const (
	PricingTierRD    PricingTier = "RD"
	PricingTierPD    PricingTier = "PD"
	PricingTierDD    PricingTier = "DD"
	PricingTierCD    PricingTier = "CD"
	PricingTierRS    PricingTier = "RS"
	PricingTierSubRS PricingTier = "SUB-RS"
	PricingTierSRP   PricingTier = "SRP"

	// PricingTierUnassigned is the placeholder written by bulk brand
	// assignment. It never resolves to a price.
	PricingTierUnassigned PricingTier = ""
)

var validPricingTiers = []PricingTier{
	PricingTierRD,
	PricingTierPD,
	PricingTierDD,
	PricingTierCD,
	PricingTierRS,
	PricingTierSubRS,
	PricingTierSRP,
}

// pricingTierRank orders tiers for selling restrictions: an account may only
// sell at tiers ranked strictly below its own cost tier.
var pricingTierRank = map[PricingTier]int{
	PricingTierRD:    0,
	PricingTierPD:    1,
	PricingTierDD:    2,
	PricingTierCD:    3,
	PricingTierRS:    4,
	PricingTierSubRS: 5,
	PricingTierSRP:   6,
}

var pricingTierLabels = map[PricingTier]string{
	PricingTierRD:    "Regional Distributor",
	PricingTierPD:    "Provincial Distributor",
	PricingTierDD:    "District Distributor",
	PricingTierCD:    "City Distributor",
	PricingTierRS:    "Reseller",
	PricingTierSubRS: "Sub-Reseller",
	PricingTierSRP:   "Suggested Retail Price",
}

// String implements fmt.Stringer.
func (t PricingTier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PricingTier.
func (t PricingTier) IsValid() bool {
	for _, candidate := range validPricingTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// Label returns the human-readable name for the tier.
func (t PricingTier) Label() string {
	if label, ok := pricingTierLabels[t]; ok {
		return label
	}
	return string(t)
}

// Rank returns the tier's position in the distribution hierarchy and whether
// the tier participates in it at all.
func (t PricingTier) Rank() (int, bool) {
	rank, ok := pricingTierRank[t]
	return rank, ok
}

// PricingTiers returns all assignable tiers in hierarchy order.
func PricingTiers() []PricingTier {
	out := make([]PricingTier, len(validPricingTiers))
	copy(out, validPricingTiers)
	return out
}

// ParsePricingTier converts raw input into a PricingTier.
func ParsePricingTier(value string) (PricingTier, error) {
	for _, candidate := range validPricingTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing tier %q", value)
}
