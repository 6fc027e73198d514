package enums

import "fmt"

// RecordStatus marks whether a brand or customer record is live or archived.
// Archived records stay referenceable from history but are hidden from
// default listings and dropdowns.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "Active"
	RecordStatusArchived RecordStatus = "Archived"
)

var validRecordStatuses = []RecordStatus{
	RecordStatusActive,
	RecordStatusArchived,
}

func (s RecordStatus) String() string {
	return string(s)
}

func (s RecordStatus) IsValid() bool {
	for _, candidate := range validRecordStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRecordStatus converts raw input into a RecordStatus.
func ParseRecordStatus(value string) (RecordStatus, error) {
	for _, candidate := range validRecordStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record status %q", value)
}
