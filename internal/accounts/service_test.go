package accounts

import (
	"context"
	"testing"

	"github.com/beautytrade/inventory-backend/pkg/config"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/security"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testPasswordConfig() config.PasswordConfig {
	// Low-cost parameters keep the argon2 work factor out of test runtime.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Account{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	repo := NewRepository(conn)
	svc, err := NewService(repo, testPasswordConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestCreateAccount(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	tier := enums.PricingTierDD
	created, err := svc.Create(ctx, CreateInput{
		Username:  "maria",
		Password:  "correct-horse",
		FirstName: "Maria",
		Role:      enums.AccountRoleSalesRep,
		CostTier:  &tier,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if !created.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if len(created.AllowedSellingTiers) == 0 {
		t.Fatalf("expected selling tiers above DD, got none")
	}
	for _, allowed := range created.AllowedSellingTiers {
		if allowed == enums.PricingTierDD || allowed == enums.PricingTierRD {
			t.Fatalf("tier %s must not be sellable for a DD-cost account", allowed)
		}
	}

	stored, err := repo.FindByUsername(ctx, "maria")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if stored.PasswordHash == "correct-horse" {
		t.Fatalf("password stored in plain text")
	}
	ok, err := security.VerifyPassword("correct-horse", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Username: "", Password: "longenough", Role: enums.AccountRoleAdmin})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank username, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{Username: "short", Password: "tiny", Role: enums.AccountRoleAdmin})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{Username: "bob", Password: "longenough", Role: "Owner"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for role, got %v", err)
	}
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := CreateInput{Username: "maria", Password: "correct-horse", Role: enums.AccountRoleAdmin}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("create account: %v", err)
	}
	_, err := svc.Create(ctx, input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
}

func TestUpdateAccountCostTier(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Username: "maria", Password: "correct-horse", Role: enums.AccountRoleSalesRep})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if created.CostTier != nil {
		t.Fatalf("expected no cost tier by default")
	}

	tier := enums.PricingTierCD
	updated, err := svc.Update(ctx, created.ID, UpdateInput{CostTier: &tier})
	if err != nil {
		t.Fatalf("update account: %v", err)
	}
	if updated.CostTier == nil || *updated.CostTier != enums.PricingTierCD {
		t.Fatalf("expected CD cost tier, got %v", updated.CostTier)
	}

	cleared, err := svc.Update(ctx, created.ID, UpdateInput{ClearCostTier: true})
	if err != nil {
		t.Fatalf("clear cost tier: %v", err)
	}
	if cleared.CostTier != nil {
		t.Fatalf("expected cost tier to be cleared")
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Username: "maria", Password: "correct-horse", Role: enums.AccountRoleAdmin})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if err := svc.ChangePassword(ctx, created.ID, "tiny"); err == nil {
		t.Fatalf("expected short password to be rejected")
	}
	if err := svc.ChangePassword(ctx, created.ID, "battery-staple"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	stored, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	if ok, _ := security.VerifyPassword("battery-staple", stored.PasswordHash); !ok {
		t.Fatalf("expected new password to verify")
	}
	if ok, _ := security.VerifyPassword("correct-horse", stored.PasswordHash); ok {
		t.Fatalf("old password must no longer verify")
	}
}

func TestDeactivateAccount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Username: "maria", Password: "correct-horse", Role: enums.AccountRoleAdmin})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	deactivated, err := svc.Deactivate(ctx, created.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Fatalf("expected account to be inactive")
	}

	_, err = svc.Deactivate(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for double deactivate, got %v", err)
	}
}
