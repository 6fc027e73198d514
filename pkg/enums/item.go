package enums

import "fmt"

// UnitOfMeasure is the unit items are counted in.
type UnitOfMeasure string

const (
	UnitOfMeasurePiece UnitOfMeasure = "pc"
	UnitOfMeasurePack  UnitOfMeasure = "pack"
)

var validUnitsOfMeasure = []UnitOfMeasure{
	UnitOfMeasurePiece,
	UnitOfMeasurePack,
}

func (u UnitOfMeasure) String() string {
	return string(u)
}

func (u UnitOfMeasure) IsValid() bool {
	for _, candidate := range validUnitsOfMeasure {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnitOfMeasure converts raw input into a UnitOfMeasure.
func ParseUnitOfMeasure(value string) (UnitOfMeasure, error) {
	for _, candidate := range validUnitsOfMeasure {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit of measure %q", value)
}

// AvailabilityStatus is derived from an item's aggregate quantity and its low
// stock threshold; it is never stored.
type AvailabilityStatus string

const (
	AvailabilityOutOfStock AvailabilityStatus = "Out of Stock"
	AvailabilityLowStock   AvailabilityStatus = "Low Stock"
	AvailabilityInStock    AvailabilityStatus = "In Stock"
)

func (s AvailabilityStatus) String() string {
	return string(s)
}

// AvailabilityFor derives the three-way stock status from the aggregate
// quantity and the item's threshold.
func AvailabilityFor(quantity, threshold int) AvailabilityStatus {
	switch {
	case quantity == 0:
		return AvailabilityOutOfStock
	case quantity < threshold:
		return AvailabilityLowStock
	default:
		return AvailabilityInStock
	}
}
