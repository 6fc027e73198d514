package middleware

import (
	"context"

	"github.com/beautytrade/inventory-backend/pkg/enums"
)

type contextKey string

const (
	ctxAccountID contextKey = "account_id"
	ctxUsername  contextKey = "username"
	ctxRole      contextKey = "actor_role"
	ctxCostTier  contextKey = "cost_tier"
)

// AccountIDFromContext returns the authenticated account id, or zero when the
// request is unauthenticated.
func AccountIDFromContext(ctx context.Context) uint {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxAccountID).(uint); ok {
		return v
	}
	return 0
}

func UsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) enums.AccountRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.AccountRole); ok {
		return v
	}
	return ""
}

// CostTierFromContext returns the account's cost tier cap, or nil when the
// account is not tier-restricted.
func CostTierFromContext(ctx context.Context) *enums.PricingTier {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxCostTier).(*enums.PricingTier); ok {
		return v
	}
	return nil
}

// WithAccount seeds the context with the authenticated account's identity.
// Used by the auth middleware and by controller tests.
func WithAccount(ctx context.Context, accountID uint, username string, role enums.AccountRole, costTier *enums.PricingTier) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxAccountID, accountID)
	ctx = context.WithValue(ctx, ctxUsername, username)
	ctx = context.WithValue(ctx, ctxRole, role)
	if costTier != nil {
		ctx = context.WithValue(ctx, ctxCostTier, costTier)
	}
	return ctx
}
