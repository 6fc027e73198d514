package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/beautytrade/inventory-backend/api/middleware"
	"github.com/beautytrade/inventory-backend/api/responses"
	"github.com/beautytrade/inventory-backend/api/validators"
	pricingsvc "github.com/beautytrade/inventory-backend/internal/pricing"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/logger"
)

// TierPriceSet writes an item's standard price at one tier.
func TierPriceSet(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tierPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := enums.ParsePricingTier(strings.TrimSpace(payload.Tier))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tier"))
			return
		}
		price, err := parseAmount(payload.Price, "price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.SetTierPrice(r.Context(), itemID, tier, price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

// TierPriceRemove deletes an item's price at one tier.
func TierPriceRemove(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := enums.ParsePricingTier(chiURLParamTrimmed(r, "tier"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tier"))
			return
		}

		if err := svc.RemoveTierPrice(r.Context(), itemID, tier); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// TierPriceList returns the configured prices for an item.
func TierPriceList(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prices, err := svc.ListTierPrices(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prices)
	}
}

// AssignmentPut pins a customer's tier for one brand.
func AssignmentPut(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brandID, err := parseIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignTierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := enums.ParsePricingTier(strings.TrimSpace(payload.Tier))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tier"))
			return
		}

		assignment, err := svc.AssignBrandTier(r.Context(), customerID, brandID, tier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

// AssignmentDelete removes a customer's brand tier pin.
func AssignmentDelete(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brandID, err := parseIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UnassignBrandTier(r.Context(), customerID, brandID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AssignmentBackfill creates placeholder assignments for every active brand
// the customer has no row for yet.
func AssignmentBackfill(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.AssignAllUnassigned(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"assignments_created": created})
	}
}

// SpecialCreate files a discount request for one customer and item.
func SpecialCreate(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSpecialRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discount, err := parseAmount(payload.Discount, "discount")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := pricingsvc.CreateSpecialInput{
			CustomerID: payload.CustomerID,
			ItemID:     payload.ItemID,
			Discount:   discount,
		}
		if accountID := middleware.AccountIDFromContext(r.Context()); accountID != 0 {
			input.CreatedByID = &accountID
		}

		special, err := svc.CreateSpecial(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, special)
	}
}

// SpecialApprove marks a pending discount request approved.
func SpecialApprove(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return specialDecision(svc, logg, svc.ApproveSpecial)
}

// SpecialReject marks a pending discount request rejected.
func SpecialReject(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return specialDecision(svc, logg, svc.RejectSpecial)
}

// SpecialDelete removes a discount request.
func SpecialDelete(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSpecial(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SpecialList returns discount requests filtered by customer, item, and
// status.
func SpecialList(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseQueryID(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseQueryID(r, "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.ApprovalStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseApprovalStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = &parsed
		}

		specials, err := svc.ListSpecials(r.Context(), customerID, itemID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, specials)
	}
}

// PriceQuote resolves the unit price a customer pays for an item.
func PriceQuote(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseQueryID(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseQueryID(r, "item_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if customerID == nil || itemID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "customer_id and item_id are required"))
			return
		}

		var requested *enums.PricingTier
		if raw := strings.TrimSpace(r.URL.Query().Get("tier")); raw != "" {
			tier, err := enums.ParsePricingTier(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid tier"))
				return
			}
			seller := models.Account{CostTier: middleware.CostTierFromContext(r.Context())}
			if !seller.CanSellAtTier(tier) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account may not quote at this tier").
					WithDetails(map[string]string{"tier": tier.String()}))
				return
			}
			requested = &tier
		}

		quote, err := svc.Quote(r.Context(), *customerID, *itemID, requested)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func specialDecision(svc pricingsvc.Service, logg *logger.Logger, decide func(ctx context.Context, id, deciderID uint) (*pricingsvc.SpecialPricingDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deciderID := middleware.AccountIDFromContext(r.Context())
		if deciderID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account context missing"))
			return
		}

		special, err := decide(r.Context(), id, deciderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, special)
	}
}

type tierPriceRequest struct {
	Tier  string `json:"tier" validate:"required"`
	Price string `json:"price" validate:"required"`
}

type assignTierRequest struct {
	Tier string `json:"tier" validate:"required"`
}

type createSpecialRequest struct {
	CustomerID uint   `json:"customer_id" validate:"required"`
	ItemID     uint   `json:"item_id" validate:"required"`
	Discount   string `json:"discount" validate:"required"`
}

func chiURLParamTrimmed(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// PricingTierCatalog lists the tier codes in ladder order, cheapest first.
func PricingTierCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]any{"tiers": enums.PricingTiers()})
	}
}

// AssignmentList returns a customer's brand-tier assignments, placeholder
// rows included.
func AssignmentList(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignments, err := svc.ListAssignments(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignments)
	}
}
