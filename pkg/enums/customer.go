package enums

import "fmt"

// CustomerType classifies how a customer buys from the distributor.
type CustomerType string

const (
	CustomerTypeInternational  CustomerType = "International"
	CustomerTypeDistributor    CustomerType = "Distributor"
	CustomerTypePhysicalStore  CustomerType = "Physical Store"
	CustomerTypeReseller       CustomerType = "Reseller"
	CustomerTypeDirectCustomer CustomerType = "Direct Customer"
)

var validCustomerTypes = []CustomerType{
	CustomerTypeInternational,
	CustomerTypeDistributor,
	CustomerTypePhysicalStore,
	CustomerTypeReseller,
	CustomerTypeDirectCustomer,
}

func (t CustomerType) String() string {
	return string(t)
}

func (t CustomerType) IsValid() bool {
	for _, candidate := range validCustomerTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCustomerType converts raw input into a CustomerType.
func ParseCustomerType(value string) (CustomerType, error) {
	for _, candidate := range validCustomerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer type %q", value)
}

// ContactPlatform is the customer's preferred messaging channel.
type ContactPlatform string

const (
	ContactPlatformWhatsApp      ContactPlatform = "whatsapp"
	ContactPlatformMessenger     ContactPlatform = "messenger"
	ContactPlatformViber         ContactPlatform = "viber"
	ContactPlatformBusinessSuite ContactPlatform = "business_suite"
)

var validContactPlatforms = []ContactPlatform{
	ContactPlatformWhatsApp,
	ContactPlatformMessenger,
	ContactPlatformViber,
	ContactPlatformBusinessSuite,
}

func (p ContactPlatform) String() string {
	return string(p)
}

func (p ContactPlatform) IsValid() bool {
	for _, candidate := range validContactPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseContactPlatform converts raw input into a ContactPlatform.
func ParseContactPlatform(value string) (ContactPlatform, error) {
	for _, candidate := range validContactPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact platform %q", value)
}
