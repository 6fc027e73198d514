package enums

import "fmt"

// AccountRole controls what an account may do in the back office.
type AccountRole string

const (
	AccountRoleAdmin    AccountRole = "Admin"
	AccountRoleLeader   AccountRole = "Leader"
	AccountRoleSalesRep AccountRole = "Sales Rep"
)

var validAccountRoles = []AccountRole{
	AccountRoleAdmin,
	AccountRoleLeader,
	AccountRoleSalesRep,
}

func (r AccountRole) String() string {
	return string(r)
}

func (r AccountRole) IsValid() bool {
	for _, candidate := range validAccountRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseAccountRole converts raw input into an AccountRole.
func ParseAccountRole(value string) (AccountRole, error) {
	for _, candidate := range validAccountRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account role %q", value)
}

// VATClassification is the brand-level tax classification.
type VATClassification string

const (
	VATClassificationVAT    VATClassification = "VAT"
	VATClassificationNonVAT VATClassification = "NON_VAT"
	VATClassificationBoth   VATClassification = "BOTH"
)

var validVATClassifications = []VATClassification{
	VATClassificationVAT,
	VATClassificationNonVAT,
	VATClassificationBoth,
}

func (c VATClassification) String() string {
	return string(c)
}

func (c VATClassification) IsValid() bool {
	for _, candidate := range validVATClassifications {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseVATClassification converts raw input into a VATClassification.
func ParseVATClassification(value string) (VATClassification, error) {
	for _, candidate := range validVATClassifications {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vat classification %q", value)
}
