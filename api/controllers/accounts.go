package controllers

import (
	"net/http"
	"strings"

	"github.com/beautytrade/inventory-backend/api/middleware"
	"github.com/beautytrade/inventory-backend/api/responses"
	"github.com/beautytrade/inventory-backend/api/validators"
	accountsvc "github.com/beautytrade/inventory-backend/internal/accounts"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/logger"
)

// AccountCreate registers a staff account.
func AccountCreate(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createAccountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

// AccountUpdate applies partial changes to an account.
func AccountUpdate(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAccountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

// AccountChangePassword replaces the account's password.
func AccountChangePassword(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload changePasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ChangePassword(r.Context(), id, payload.NewPassword); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "password changed"})
	}
}

// AccountGet returns one account.
func AccountGet(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

// AccountMe returns the caller's own account.
func AccountMe(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := middleware.AccountIDFromContext(r.Context())
		if accountID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account context missing"))
			return
		}

		account, err := svc.Get(r.Context(), accountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

// AccountList returns accounts filtered by role, active state, and search.
func AccountList(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role *enums.AccountRole
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			parsed, err := enums.ParseAccountRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
				return
			}
			role = &parsed
		}

		active, err := parseQueryBool(r, "active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		search := validators.SanitizeString(r.URL.Query().Get("search"), 120)
		accounts, err := svc.List(r.Context(), role, active, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, accounts)
	}
}

// AccountDeactivate disables an account without deleting its history.
func AccountDeactivate(svc accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Deactivate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

type createAccountRequest struct {
	Username  string  `json:"username" validate:"required"`
	Password  string  `json:"password" validate:"required"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Role      string  `json:"role" validate:"required"`
	CostTier  *string `json:"cost_tier,omitempty"`
}

func (r createAccountRequest) toInput() (accountsvc.CreateInput, error) {
	role, err := enums.ParseAccountRole(strings.TrimSpace(r.Role))
	if err != nil {
		return accountsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}

	costTier, err := parseOptionalTier(r.CostTier, "cost_tier")
	if err != nil {
		return accountsvc.CreateInput{}, err
	}

	return accountsvc.CreateInput{
		Username:  strings.TrimSpace(r.Username),
		Password:  r.Password,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Role:      role,
		CostTier:  costTier,
	}, nil
}

type updateAccountRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Role          *string `json:"role,omitempty"`
	CostTier      *string `json:"cost_tier,omitempty"`
	ClearCostTier bool    `json:"clear_cost_tier,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (r updateAccountRequest) toInput() (accountsvc.UpdateInput, error) {
	input := accountsvc.UpdateInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		ClearCostTier: r.ClearCostTier,
		IsActive:      r.IsActive,
	}

	if r.Role != nil {
		role, err := enums.ParseAccountRole(strings.TrimSpace(*r.Role))
		if err != nil {
			return accountsvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
		}
		input.Role = &role
	}

	costTier, err := parseOptionalTier(r.CostTier, "cost_tier")
	if err != nil {
		return accountsvc.UpdateInput{}, err
	}
	input.CostTier = costTier

	return input, nil
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}

func parseOptionalTier(raw *string, field string) (*enums.PricingTier, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	tier, err := enums.ParsePricingTier(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return &tier, nil
}
