package controllers

import (
	"net/http"
	"strings"

	"github.com/beautytrade/inventory-backend/api/responses"
	"github.com/beautytrade/inventory-backend/api/validators"
	catalogsvc "github.com/beautytrade/inventory-backend/internal/catalog"
	inventorysvc "github.com/beautytrade/inventory-backend/internal/inventory"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/logger"
)

// ItemCreate registers an item under a brand. The SKU is issued server side.
func ItemCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ItemUpdate applies name, unit, and threshold changes.
func ItemUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ItemDelete removes an item along with its batches and tier prices.
func ItemDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ItemGet returns one item with derived stock fields.
func ItemGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ItemList returns items with stock summaries, optionally scoped to a brand.
func ItemList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID, err := parseQueryID(r, "brand_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		search := validators.SanitizeString(r.URL.Query().Get("search"), 120)
		items, err := svc.ListItems(r.Context(), brandID, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ItemBatches returns the item's stock lots with remaining quantities.
func ItemBatches(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		batches, err := svc.ListBatches(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, batches)
	}
}

type createItemRequest struct {
	BrandID        uint   `json:"brand_id" validate:"required"`
	ItemName       string `json:"item_name" validate:"required"`
	UOM            string `json:"uom" validate:"required"`
	ThresholdValue *int   `json:"threshold_value,omitempty" validate:"omitempty,min=0"`
}

func (r createItemRequest) toInput() (catalogsvc.CreateItemInput, error) {
	uom, err := enums.ParseUnitOfMeasure(strings.TrimSpace(r.UOM))
	if err != nil {
		return catalogsvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid uom")
	}

	return catalogsvc.CreateItemInput{
		BrandID:        r.BrandID,
		ItemName:       strings.TrimSpace(r.ItemName),
		UOM:            uom,
		ThresholdValue: r.ThresholdValue,
	}, nil
}

type updateItemRequest struct {
	ItemName       *string `json:"item_name,omitempty"`
	UOM            *string `json:"uom,omitempty"`
	ThresholdValue *int    `json:"threshold_value,omitempty" validate:"omitempty,min=0"`
}

func (r updateItemRequest) toInput() (catalogsvc.UpdateItemInput, error) {
	input := catalogsvc.UpdateItemInput{
		ItemName:       r.ItemName,
		ThresholdValue: r.ThresholdValue,
	}

	if r.UOM != nil {
		uom, err := enums.ParseUnitOfMeasure(strings.TrimSpace(*r.UOM))
		if err != nil {
			return catalogsvc.UpdateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid uom")
		}
		input.UOM = &uom
	}

	return input, nil
}

// ItemNextSKU previews the SKU the next item under a brand would receive.
func ItemNextSKU(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID, err := parseQueryID(r, "brand_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if brandID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "brand_id is required"))
			return
		}

		sku, err := svc.NextSKU(r.Context(), *brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"next_sku": sku})
	}
}

// ItemNextBatchNumber previews the number the item's next lot would take.
func ItemNextBatchNumber(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		number, err := svc.NextBatchNumber(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"next_batch_number": number})
	}
}
