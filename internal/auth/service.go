package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beautytrade/inventory-backend/internal/accounts"
	pkgauth "github.com/beautytrade/inventory-backend/pkg/auth"
	"github.com/beautytrade/inventory-backend/pkg/config"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/security"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type accountRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

type service struct {
	accounts accountRepository
	jwtCfg   config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(accountRepo accountRepository, jwtCfg config.JWTConfig) (Service, error) {
	if accountRepo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &service{accounts: accountRepo, jwtCfg: jwtCfg}, nil
}

// Login verifies the credentials and mints an access token. Lookup failures
// and bad passwords produce the same message so usernames cannot be probed.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	account, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		CostTier:  account.CostTier,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtCfg.Expiration().Seconds()),
		Account:     *accounts.NewAccountDTO(account),
	}, nil
}

func (s *service) authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	input := strings.TrimSpace(username)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	account, err := s.accounts.FindByUsername(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}

	valid, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !account.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return account, nil
}
