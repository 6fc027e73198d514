package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beautytrade/inventory-backend/pkg/config"
	"github.com/beautytrade/inventory-backend/pkg/db"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/security"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// Service exposes back-office account management.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*AccountDTO, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*AccountDTO, error)
	ChangePassword(ctx context.Context, id uint, newPassword string) error
	Get(ctx context.Context, id uint) (*AccountDTO, error)
	List(ctx context.Context, role *enums.AccountRole, active *bool, search string) ([]AccountDTO, error)
	Deactivate(ctx context.Context, id uint) (*AccountDTO, error)
}

// CreateInput holds the validated payload for a new account.
type CreateInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      enums.AccountRole
	CostTier  *enums.PricingTier
}

// UpdateInput carries optional account changes. Nil fields are left alone;
// ClearCostTier removes the tier cap when set.
type UpdateInput struct {
	FirstName     *string
	LastName      *string
	Role          *enums.AccountRole
	CostTier      *enums.PricingTier
	ClearCostTier bool
	IsActive      *bool
}

// service implements the account service.
type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService constructs an account service instance.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("account repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// Create registers a new back-office account with a hashed password.
func (s *service) Create(ctx context.Context, input CreateInput) (*AccountDTO, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if input.CostTier != nil && !input.CostTier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cost tier")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hash password")
	}
	account := &models.Account{
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         input.Role,
		CostTier:     input.CostTier,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_account_username") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert account")
	}
	return NewAccountDTO(created), nil
}

// Update applies the provided field changes.
func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*AccountDTO, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil {
		account.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		account.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		account.Role = *input.Role
	}
	switch {
	case input.ClearCostTier:
		account.CostTier = nil
	case input.CostTier != nil:
		if !input.CostTier.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cost tier")
		}
		account.CostTier = input.CostTier
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, account)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update account")
	}
	return NewAccountDTO(updated), nil
}

// ChangePassword replaces the account's password hash.
func (s *service) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	account, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hash password")
	}
	account.PasswordHash = hash
	if _, err := s.repo.Update(ctx, account); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update account")
	}
	return nil
}

// Get returns one account.
func (s *service) Get(ctx context.Context, id uint) (*AccountDTO, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewAccountDTO(account), nil
}

// List returns accounts matching the filters.
func (s *service) List(ctx context.Context, role *enums.AccountRole, active *bool, search string) ([]AccountDTO, error) {
	if role != nil && !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	rows, err := s.repo.List(ctx, role, active, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list accounts")
	}
	out := make([]AccountDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewAccountDTO(&rows[i]))
	}
	return out, nil
}

// Deactivate disables the account. Already inactive accounts cannot be
// deactivated twice.
func (s *service) Deactivate(ctx context.Context, id uint) (*AccountDTO, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "account is already inactive")
	}
	account.IsActive = false
	updated, err := s.repo.Update(ctx, account)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update account")
	}
	return NewAccountDTO(updated), nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	return account, nil
}
