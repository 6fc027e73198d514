package enums

import "fmt"

// TransactionType identifies the stock movement a transaction records.
type TransactionType string

const (
	TransactionTypeIncoming   TransactionType = "INCOMING"
	TransactionTypeOutgoing   TransactionType = "OUTGOING"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeIncoming,
	TransactionTypeOutgoing,
	TransactionTypeAdjustment,
}

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType. Legacy
// label spellings used by older clients map onto the canonical values.
func ParseTransactionType(value string) (TransactionType, error) {
	switch value {
	case "Receive goods", "Receive Products", "Receive Products (from Brands)":
		return TransactionTypeIncoming, nil
	case "Dispatch goods", "Sell Products (to Customers)", "Sale":
		return TransactionTypeOutgoing, nil
	case "Manual correction", "Manual Adjustment", "Adjust Inventory":
		return TransactionTypeAdjustment, nil
	}
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}

// VATType records the tax treatment applied to a transaction.
type VATType string

const (
	VATTypeVAT    VATType = "VAT"
	VATTypeNonVAT VATType = "NON_VAT"
	VATTypeMixed  VATType = "MIXED"
)

var validVATTypes = []VATType{
	VATTypeVAT,
	VATTypeNonVAT,
	VATTypeMixed,
}

func (v VATType) String() string {
	return string(v)
}

func (v VATType) IsValid() bool {
	for _, candidate := range validVATTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVATType converts raw input into a VATType.
func ParseVATType(value string) (VATType, error) {
	for _, candidate := range validVATTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vat type %q", value)
}
