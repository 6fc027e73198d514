package controllers

import (
	"fmt"
	"net/http"

	"github.com/beautytrade/inventory-backend/api/responses"
	reportsvc "github.com/beautytrade/inventory-backend/internal/reports"
	"github.com/beautytrade/inventory-backend/pkg/logger"
	"github.com/beautytrade/inventory-backend/pkg/pagination"
)

// Dashboard returns the back-office landing summary.
func Dashboard(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ExportItems streams the item master list as CSV or XLSX.
func ExportItems(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := reportsvc.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		export, err := svc.ExportItems(r.Context(), format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeExport(w, export)
	}
}

// ExportCustomers streams the customer list as CSV or XLSX.
func ExportCustomers(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := reportsvc.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		export, err := svc.ExportCustomers(r.Context(), format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeExport(w, export)
	}
}

// ExportTransactions streams the transaction ledger as CSV or XLSX, honoring
// the same filters as the transaction list.
func ExportTransactions(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := reportsvc.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := transactionFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// exports always cover the full filtered range
		filters.Page = pagination.Params{}

		export, err := svc.ExportTransactions(r.Context(), format, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeExport(w, export)
	}
}

func writeExport(w http.ResponseWriter, export *reportsvc.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}
