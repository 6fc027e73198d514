package controllers

import (
	"net/http"
	"strings"

	"github.com/beautytrade/inventory-backend/api/responses"
	"github.com/beautytrade/inventory-backend/api/validators"
	catalogsvc "github.com/beautytrade/inventory-backend/internal/catalog"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/logger"
)

// BrandCreate registers a supplier brand.
func BrandCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBrandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.CreateBrand(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

// BrandUpdate applies partial changes to a brand.
func BrandUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBrandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.UpdateBrand(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

// BrandGet returns one brand.
func BrandGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.GetBrand(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

// BrandList returns brands filtered by status and name search.
func BrandList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := parseQueryStatus(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		search := validators.SanitizeString(r.URL.Query().Get("search"), 120)
		brands, err := svc.ListBrands(r.Context(), status, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

// BrandArchive retires a brand from the catalog pickers.
func BrandArchive(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.ArchiveBrand(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

type createBrandRequest struct {
	BrandName         string  `json:"brand_name" validate:"required"`
	StreetNumber      *string `json:"street_number,omitempty"`
	StreetName        *string `json:"street_name,omitempty"`
	Barangay          *string `json:"barangay,omitempty"`
	City              *string `json:"city,omitempty"`
	Region            *string `json:"region,omitempty"`
	PostalCode        *string `json:"postal_code,omitempty"`
	TIN               *string `json:"tin,omitempty"`
	LandlineNumber    *string `json:"landline_number,omitempty"`
	ContactPerson     *string `json:"contact_person,omitempty"`
	MobileNumber      *string `json:"mobile_number,omitempty"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	VATClassification string  `json:"vat_classification" validate:"required"`
}

func (r createBrandRequest) toInput() (catalogsvc.CreateBrandInput, error) {
	vat, err := enums.ParseVATClassification(strings.TrimSpace(r.VATClassification))
	if err != nil {
		return catalogsvc.CreateBrandInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vat_classification")
	}

	return catalogsvc.CreateBrandInput{
		BrandName:         strings.TrimSpace(r.BrandName),
		StreetNumber:      r.StreetNumber,
		StreetName:        r.StreetName,
		Barangay:          r.Barangay,
		City:              r.City,
		Region:            r.Region,
		PostalCode:        r.PostalCode,
		TIN:               r.TIN,
		LandlineNumber:    r.LandlineNumber,
		ContactPerson:     r.ContactPerson,
		MobileNumber:      r.MobileNumber,
		Email:             r.Email,
		VATClassification: vat,
	}, nil
}

type updateBrandRequest struct {
	BrandName         *string `json:"brand_name,omitempty"`
	StreetNumber      *string `json:"street_number,omitempty"`
	StreetName        *string `json:"street_name,omitempty"`
	Barangay          *string `json:"barangay,omitempty"`
	City              *string `json:"city,omitempty"`
	Region            *string `json:"region,omitempty"`
	PostalCode        *string `json:"postal_code,omitempty"`
	TIN               *string `json:"tin,omitempty"`
	LandlineNumber    *string `json:"landline_number,omitempty"`
	ContactPerson     *string `json:"contact_person,omitempty"`
	MobileNumber      *string `json:"mobile_number,omitempty"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	VATClassification *string `json:"vat_classification,omitempty"`
	Status            *string `json:"status,omitempty"`
}

func (r updateBrandRequest) toInput() (catalogsvc.UpdateBrandInput, error) {
	input := catalogsvc.UpdateBrandInput{
		BrandName:      r.BrandName,
		StreetNumber:   r.StreetNumber,
		StreetName:     r.StreetName,
		Barangay:       r.Barangay,
		City:           r.City,
		Region:         r.Region,
		PostalCode:     r.PostalCode,
		TIN:            r.TIN,
		LandlineNumber: r.LandlineNumber,
		ContactPerson:  r.ContactPerson,
		MobileNumber:   r.MobileNumber,
		Email:          r.Email,
	}

	if r.VATClassification != nil {
		vat, err := enums.ParseVATClassification(strings.TrimSpace(*r.VATClassification))
		if err != nil {
			return catalogsvc.UpdateBrandInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vat_classification")
		}
		input.VATClassification = &vat
	}
	if r.Status != nil {
		status, err := enums.ParseRecordStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return catalogsvc.UpdateBrandInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}

	return input, nil
}

func parseQueryStatus(r *http.Request) (*enums.RecordStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseRecordStatus(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}
	return &status, nil
}
