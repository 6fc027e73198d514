package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/beautytrade/inventory-backend/api/middleware"
	"github.com/beautytrade/inventory-backend/api/responses"
	"github.com/beautytrade/inventory-backend/api/validators"
	inventorysvc "github.com/beautytrade/inventory-backend/internal/inventory"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/logger"
	"github.com/beautytrade/inventory-backend/pkg/pagination"
)

// TransactionIncoming posts goods received from a brand and opens one batch
// per line.
func TransactionIncoming(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload incomingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(accountIDPtr(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.CreateIncoming(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// TransactionOutgoing posts goods dispatched to a customer, pricing each line
// through the tier resolver and consuming the chosen batches.
func TransactionOutgoing(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload outgoingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(accountIDPtr(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.CreateOutgoing(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// ItemAdjust corrects an item's stock level. Positive changes open a new
// batch; negative changes consume the newest batches first.
func ItemAdjust(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventorysvc.AdjustmentInput{
			ItemID:         itemID,
			QuantityChange: payload.QuantityChange,
			AccountID:      accountIDPtr(r),
			Notes:          payload.Notes,
		}
		if payload.CostPrice != nil {
			cost, err := parseAmount(*payload.CostPrice, "cost_price")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.CostPrice = cost
		}

		txn, err := svc.CreateAdjustment(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// BatchAdjust corrects the remaining quantity of one batch.
func BatchAdjust(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		batchNumber, err := parseIntParam(r, "batchNumber")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload batchAdjustRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.AdjustBatch(r.Context(), inventorysvc.AdjustBatchInput{
			ItemID:         itemID,
			BatchNumber:    batchNumber,
			QuantityChange: payload.QuantityChange,
			AccountID:      accountIDPtr(r),
			Notes:          payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// TransactionFlags updates the released, paid, and OR-sent progress flags on
// an OUTGOING transaction.
func TransactionFlags(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload flagsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.UpdateFlags(r.Context(), id, inventorysvc.UpdateFlagsInput{
			IsReleased: payload.IsReleased,
			IsPaid:     payload.IsPaid,
			IsORSent:   payload.IsORSent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txn)
	}
}

// TransactionGet returns one transaction with its lines.
func TransactionGet(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txn)
	}
}

// TransactionList returns transactions newest first, filtered by type, brand,
// customer, completion, and date range.
func TransactionList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := transactionFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func transactionFiltersFromQuery(r *http.Request) (inventorysvc.TransactionFilters, error) {
	var filters inventorysvc.TransactionFilters

	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		parsed, err := enums.ParseTransactionType(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type")
		}
		filters.Type = &parsed
	}

	brandID, err := parseQueryID(r, "brand_id")
	if err != nil {
		return filters, err
	}
	filters.BrandID = brandID

	customerID, err := parseQueryID(r, "customer_id")
	if err != nil {
		return filters, err
	}
	filters.CustomerID = customerID

	itemID, err := parseQueryID(r, "item_id")
	if err != nil {
		return filters, err
	}
	filters.ItemID = itemID

	incomplete, err := parseQueryBool(r, "incomplete")
	if err != nil {
		return filters, err
	}
	filters.Incomplete = incomplete != nil && *incomplete

	from, err := parseQueryDate(r, "from")
	if err != nil {
		return filters, err
	}
	filters.From = from

	to, err := parseQueryDate(r, "to")
	if err != nil {
		return filters, err
	}
	filters.To = to

	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return filters, err
	}
	filters.Page.Limit = limit
	filters.Page.Cursor = strings.TrimSpace(r.URL.Query().Get("cursor"))

	return filters, nil
}

type incomingLineRequest struct {
	ItemID    uint   `json:"item_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	CostPrice string `json:"cost_price" validate:"required"`
}

type incomingRequest struct {
	BrandID        uint                  `json:"brand_id" validate:"required"`
	TransactedDate string                `json:"transacted_date,omitempty"`
	DueDate        *string               `json:"due_date,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
	Lines          []incomingLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r incomingRequest) toInput(accountID *uint) (inventorysvc.IncomingInput, error) {
	transacted, err := parseDateField(r.TransactedDate, "transacted_date")
	if err != nil {
		return inventorysvc.IncomingInput{}, err
	}
	due, err := parseOptionalDateField(r.DueDate, "due_date")
	if err != nil {
		return inventorysvc.IncomingInput{}, err
	}

	lines := make([]inventorysvc.IncomingLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		cost, err := parseAmount(line.CostPrice, "cost_price")
		if err != nil {
			return inventorysvc.IncomingInput{}, err
		}
		lines = append(lines, inventorysvc.IncomingLine{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			CostPrice: cost,
		})
	}

	return inventorysvc.IncomingInput{
		BrandID:        r.BrandID,
		AccountID:      accountID,
		TransactedDate: transacted,
		DueDate:        due,
		Notes:          r.Notes,
		Lines:          lines,
	}, nil
}

type outgoingLineRequest struct {
	ItemID      uint `json:"item_id" validate:"required"`
	BatchNumber int  `json:"batch_number" validate:"required,min=1"`
	Quantity    int  `json:"quantity" validate:"required,min=1"`
}

type outgoingRequest struct {
	BrandID        uint                  `json:"brand_id" validate:"required"`
	CustomerID     uint                  `json:"customer_id" validate:"required"`
	VATType        *string               `json:"vat_type,omitempty"`
	TransactedDate string                `json:"transacted_date,omitempty"`
	DueDate        *string               `json:"due_date,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
	Lines          []outgoingLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r outgoingRequest) toInput(accountID *uint) (inventorysvc.OutgoingInput, error) {
	transacted, err := parseDateField(r.TransactedDate, "transacted_date")
	if err != nil {
		return inventorysvc.OutgoingInput{}, err
	}
	due, err := parseOptionalDateField(r.DueDate, "due_date")
	if err != nil {
		return inventorysvc.OutgoingInput{}, err
	}

	var vatType *enums.VATType
	if r.VATType != nil {
		parsed, err := enums.ParseVATType(strings.TrimSpace(*r.VATType))
		if err != nil {
			return inventorysvc.OutgoingInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vat_type")
		}
		vatType = &parsed
	}

	lines := make([]inventorysvc.OutgoingLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, inventorysvc.OutgoingLine{
			ItemID:      line.ItemID,
			BatchNumber: line.BatchNumber,
			Quantity:    line.Quantity,
		})
	}

	return inventorysvc.OutgoingInput{
		BrandID:        r.BrandID,
		CustomerID:     r.CustomerID,
		AccountID:      accountID,
		VATType:        vatType,
		TransactedDate: transacted,
		DueDate:        due,
		Notes:          r.Notes,
		Lines:          lines,
	}, nil
}

type adjustmentRequest struct {
	QuantityChange int     `json:"quantity_change" validate:"required"`
	CostPrice      *string `json:"cost_price,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type batchAdjustRequest struct {
	QuantityChange int     `json:"quantity_change" validate:"required"`
	Notes          *string `json:"notes,omitempty"`
}

type flagsRequest struct {
	IsReleased *bool `json:"is_released,omitempty"`
	IsPaid     *bool `json:"is_paid,omitempty"`
	IsORSent   *bool `json:"is_or_sent,omitempty"`
}

func accountIDPtr(r *http.Request) *uint {
	if accountID := middleware.AccountIDFromContext(r.Context()); accountID != 0 {
		return &accountID
	}
	return nil
}

// TransactionNextReference previews the reference number a transaction dated
// on the given day (default today) would receive.
func TransactionNextReference(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := time.Now()
		if parsed, err := parseQueryDate(r, "date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if parsed != nil {
			date = *parsed
		}

		reference, err := svc.NextReference(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"next_reference_number": reference})
	}
}
