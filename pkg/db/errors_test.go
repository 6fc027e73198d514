package db

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name: "postgres duplicate key",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "idx_account_username" (SQLSTATE 23505)`),
			want: true,
		},
		{
			name:       "postgres named constraint",
			err:        errors.New(`ERROR: duplicate key value violates unique constraint "idx_item_name_brand" (SQLSTATE 23505)`),
			constraint: "idx_item_name_brand",
			want:       true,
		},
		{
			name:       "postgres different constraint",
			err:        errors.New(`ERROR: duplicate key value violates unique constraint "idx_inventory_item_sku" (SQLSTATE 23505)`),
			constraint: "idx_item_name_brand",
			want:       false,
		},
		{
			name: "sqlite single column",
			err:  errors.New("UNIQUE constraint failed: account.username"),
			want: true,
		},
		{
			name:       "sqlite ignores constraint name",
			err:        fmt.Errorf("db: insert item: %w", errors.New("UNIQUE constraint failed: inventory_item.item_name, inventory_item.brand_id")),
			constraint: "idx_item_name_brand",
			want:       true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Fatalf("IsUniqueViolation(%v, %q) = %v, want %v", tt.err, tt.constraint, got, tt.want)
			}
		})
	}
}
