package migrate_test

import (
	"strings"
	"testing"
)

func TestPricingMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_pricing_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS item_tier_pricing",
		"CREATE TABLE IF NOT EXISTS customer_brand_pricing",
		"CREATE TABLE IF NOT EXISTS customer_special_pricing",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_item_tier ON item_tier_pricing (item_id, pricing_tier)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_customer_brand ON customer_brand_pricing (customer_id, brand_id)",
		"CHECK (discount <= 0)",
		"CHECK (approval_status IN ('Pending', 'Approved', 'Rejected'))",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAccountMigrationContainsRoleCheck(t *testing.T) {
	content := readMigration(t, "*_create_account.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS account",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_account_username",
		"CHECK (role IN ('Admin', 'Leader', 'Sales Rep'))",
		"DROP TABLE IF EXISTS account",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
