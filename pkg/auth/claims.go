package auth

import (
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	AccountID uint
	Username  string
	Role      enums.AccountRole
	CostTier  *enums.PricingTier
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	AccountID uint               `json:"account_id"`
	Username  string             `json:"username"`
	Role      enums.AccountRole  `json:"role"`
	CostTier  *enums.PricingTier `json:"cost_tier,omitempty"`
	jwt.RegisteredClaims
}
