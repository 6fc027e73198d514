package controllers

import (
	"net/http"
	"strings"

	"github.com/beautytrade/inventory-backend/api/responses"
	"github.com/beautytrade/inventory-backend/api/validators"
	customersvc "github.com/beautytrade/inventory-backend/internal/customers"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/logger"
)

// CustomerCreate registers a buying customer.
func CustomerCreate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// CustomerUpdate applies partial changes to a customer.
func CustomerUpdate(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// CustomerGet returns a customer with its brand tier assignments.
func CustomerGet(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// CustomerList returns customers filtered by status, type, and name search.
func CustomerList(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := parseQueryStatus(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var customerType *enums.CustomerType
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			parsed, err := enums.ParseCustomerType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type"))
				return
			}
			customerType = &parsed
		}

		search := validators.SanitizeString(r.URL.Query().Get("search"), 120)
		customers, err := svc.List(r.Context(), status, customerType, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customers)
	}
}

// CustomerArchive retires a customer while keeping transaction history.
func CustomerArchive(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Archive(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

type createCustomerRequest struct {
	CompanyName   string  `json:"company_name" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	ContactNumber string  `json:"contact_number" validate:"required"`
	TinID         *string `json:"tin_id,omitempty"`
	CustomerType  string  `json:"customer_type" validate:"required"`
	Platform      *string `json:"platform,omitempty"`
	PricingTier   *string `json:"pricing_tier,omitempty"`
}

func (r createCustomerRequest) toInput() (customersvc.CreateCustomerInput, error) {
	customerType, err := enums.ParseCustomerType(strings.TrimSpace(r.CustomerType))
	if err != nil {
		return customersvc.CreateCustomerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer_type")
	}

	input := customersvc.CreateCustomerInput{
		CompanyName:   strings.TrimSpace(r.CompanyName),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Address:       strings.TrimSpace(r.Address),
		ContactNumber: strings.TrimSpace(r.ContactNumber),
		TinID:         r.TinID,
		CustomerType:  customerType,
	}

	if r.Platform != nil {
		platform, err := enums.ParseContactPlatform(strings.TrimSpace(*r.Platform))
		if err != nil {
			return customersvc.CreateCustomerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid platform")
		}
		input.Platform = platform
	}
	if r.PricingTier != nil {
		tier, err := enums.ParsePricingTier(strings.TrimSpace(*r.PricingTier))
		if err != nil {
			return customersvc.CreateCustomerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricing_tier")
		}
		input.PricingTier = tier
	}

	return input, nil
}

type updateCustomerRequest struct {
	CompanyName   *string `json:"company_name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	TinID         *string `json:"tin_id,omitempty"`
	CustomerType  *string `json:"customer_type,omitempty"`
	Platform      *string `json:"platform,omitempty"`
	PricingTier   *string `json:"pricing_tier,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (r updateCustomerRequest) toInput() (customersvc.UpdateCustomerInput, error) {
	input := customersvc.UpdateCustomerInput{
		CompanyName:   r.CompanyName,
		ContactPerson: r.ContactPerson,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
		TinID:         r.TinID,
	}

	if r.CustomerType != nil {
		customerType, err := enums.ParseCustomerType(strings.TrimSpace(*r.CustomerType))
		if err != nil {
			return customersvc.UpdateCustomerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer_type")
		}
		input.CustomerType = &customerType
	}
	if r.Platform != nil {
		platform, err := enums.ParseContactPlatform(strings.TrimSpace(*r.Platform))
		if err != nil {
			return customersvc.UpdateCustomerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid platform")
		}
		input.Platform = &platform
	}
	if r.PricingTier != nil {
		tier, err := enums.ParsePricingTier(strings.TrimSpace(*r.PricingTier))
		if err != nil {
			return customersvc.UpdateCustomerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricing_tier")
		}
		input.PricingTier = &tier
	}
	if r.Status != nil {
		status, err := enums.ParseRecordStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return customersvc.UpdateCustomerInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}

	return input, nil
}
