package auth

import (
	"context"
	"testing"

	"github.com/beautytrade/inventory-backend/internal/accounts"
	pkgauth "github.com/beautytrade/inventory-backend/pkg/auth"
	"github.com/beautytrade/inventory-backend/pkg/config"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "beautytrade-test",
		ExpirationMinutes: 30,
	}
}

func newTestService(t *testing.T) (Service, accounts.Service) {
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

	repo := accounts.NewRepository(conn)
	accountSvc, err := accounts.NewService(repo, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	})
	if err != nil {
		t.Fatalf("new account service: %v", err)
	}
	svc, err := NewService(repo, testJWTConfig())
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc, accountSvc
}

func TestLogin(t *testing.T) {
	svc, accountSvc := newTestService(t)
	ctx := context.Background()

	tier := enums.PricingTierDD
	if _, err := accountSvc.Create(ctx, accounts.CreateInput{
		Username: "maria",
		Password: "correct-horse",
		Role:     enums.AccountRoleSalesRep,
		CostTier: &tier,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	resp, err := svc.Login(ctx, LoginRequest{Username: "maria", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("expected Bearer token type, got %s", resp.TokenType)
	}
	if resp.ExpiresIn != 30*60 {
		t.Fatalf("expected 1800s expiry, got %d", resp.ExpiresIn)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Username != "maria" || claims.Role != enums.AccountRoleSalesRep {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.CostTier == nil || *claims.CostTier != enums.PricingTierDD {
		t.Fatalf("expected DD cost tier in claims, got %v", claims.CostTier)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, accountSvc := newTestService(t)
	ctx := context.Background()

	created, err := accountSvc.Create(ctx, accounts.CreateInput{
		Username: "maria",
		Password: "correct-horse",
		Role:     enums.AccountRoleAdmin,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	cases := []LoginRequest{
		{Username: "maria", Password: "wrong"},
		{Username: "nobody", Password: "correct-horse"},
		{Username: "", Password: "correct-horse"},
		{Username: "maria", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %q/%q, got %v", req.Username, req.Password, err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("credential failures must not leak detail, got %q", typed.Message())
		}
	}

	if _, err := accountSvc.Deactivate(ctx, created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = svc.Login(ctx, LoginRequest{Username: "maria", Password: "correct-horse"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive account, got %v", err)
	}
}
