package reports

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beautytrade/inventory-backend/internal/inventory"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
)

const recentTransactionLimit = 10

// Service exposes exports and the dashboard summary.
type Service interface {
	ExportItems(ctx context.Context, format Format) (*Export, error)
	ExportCustomers(ctx context.Context, format Format) (*Export, error)
	ExportTransactions(ctx context.Context, format Format, filters inventory.TransactionFilters) (*Export, error)
	Dashboard(ctx context.Context) (*DashboardDTO, error)
}

// DashboardDTO is the back-office landing summary.
type DashboardDTO struct {
	TotalItems             int                        `json:"total_items"`
	ItemsLowStock          int                        `json:"items_low_stock"`
	ItemsOutOfStock        int                        `json:"items_out_of_stock"`
	ActiveCustomers        int64                      `json:"active_customers"`
	PendingSpecialRequests int64                      `json:"pending_special_requests"`
	IncompleteOutgoing     int64                      `json:"incomplete_outgoing"`
	RecentTransactions     []inventory.TransactionDTO `json:"recent_transactions"`
}

type itemLister interface {
	ListItems(ctx context.Context, brandID *uint, search string) ([]models.Item, error)
}

type customerLister interface {
	List(ctx context.Context, status *enums.RecordStatus, customerType *enums.CustomerType, search string) ([]models.Customer, error)
}

type transactionLister interface {
	ListTransactions(ctx context.Context, filters inventory.TransactionFilters) ([]models.Transaction, error)
}

// service implements the reports service.
type service struct {
	repo         *Repository
	items        itemLister
	customers    customerLister
	transactions transactionLister
}

// NewService constructs a reports service instance.
func NewService(repo *Repository, items itemLister, customers customerLister, transactions transactionLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item lister required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer lister required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction lister required")
	}
	return &service{repo: repo, items: items, customers: customers, transactions: transactions}, nil
}

// ExportItems renders the catalog with stock levels.
func (s *service) ExportItems(ctx context.Context, format Format) (*Export, error) {
	items, err := s.items.ListItems(ctx, nil, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}

	table := &Table{
		Name:   "items",
		Header: []string{"SKU", "Item Name", "Brand", "UOM", "Quantity", "Availability", "Active Batches", "Threshold"},
	}
	for i := range items {
		item := &items[i]
		sku := ""
		if item.SKU != nil {
			sku = *item.SKU
		}
		brand := ""
		if item.Brand != nil {
			brand = item.Brand.BrandName
		}
		table.Rows = append(table.Rows, []string{
			sku,
			item.ItemName,
			brand,
			item.UOM.String(),
			strconv.Itoa(item.TotalQuantity()),
			item.Availability().String(),
			strconv.Itoa(item.ActiveBatchCount()),
			strconv.Itoa(item.ThresholdValue),
		})
	}
	return table.Render(format)
}

// ExportCustomers renders the customer list.
func (s *service) ExportCustomers(ctx context.Context, format Format) (*Export, error) {
	rows, err := s.customers.List(ctx, nil, nil, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list customers")
	}

	table := &Table{
		Name:   "customers",
		Header: []string{"Company", "Contact Person", "Contact Number", "Platform", "Type", "Default Tier", "Status"},
	}
	for i := range rows {
		customer := &rows[i]
		table.Rows = append(table.Rows, []string{
			customer.CompanyName,
			customer.ContactPerson,
			customer.ContactNumber,
			customer.Platform.String(),
			customer.CustomerType.String(),
			customer.PricingTier.String(),
			customer.Status.String(),
		})
	}
	return table.Render(format)
}

// ExportTransactions renders the movement history matching the filters.
func (s *service) ExportTransactions(ctx context.Context, format Format, filters inventory.TransactionFilters) (*Export, error) {
	rows, err := s.transactions.ListTransactions(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions")
	}

	table := &Table{
		Name:   "transactions",
		Header: []string{"Reference", "Type", "Date", "Brand", "Customer", "Total", "VAT", "Completed", "Notes"},
	}
	for i := range rows {
		txn := &rows[i]
		brand := ""
		if txn.Brand != nil {
			brand = txn.Brand.BrandName
		}
		customer := ""
		if txn.Customer != nil {
			customer = txn.Customer.CompanyName
		}
		notes := ""
		if txn.Notes != nil {
			notes = *txn.Notes
		}
		table.Rows = append(table.Rows, []string{
			txn.ReferenceNumber,
			txn.TransactionType.String(),
			txn.TransactedDate.Format("2006-01-02"),
			brand,
			customer,
			txn.TotalAmount.StringFixed(2),
			txn.VATAmount.StringFixed(2),
			strconv.FormatBool(txn.IsCompleted()),
			notes,
		})
	}
	return table.Render(format)
}

// Dashboard aggregates the landing-page counters.
func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	items, err := s.items.ListItems(ctx, nil, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	summary := &DashboardDTO{TotalItems: len(items)}
	for i := range items {
		switch items[i].Availability() {
		case enums.AvailabilityLowStock:
			summary.ItemsLowStock++
		case enums.AvailabilityOutOfStock:
			summary.ItemsOutOfStock++
		}
	}

	if summary.ActiveCustomers, err = s.repo.CountActiveCustomers(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count customers")
	}
	if summary.PendingSpecialRequests, err = s.repo.CountPendingSpecials(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count special pricing")
	}
	if summary.IncompleteOutgoing, err = s.repo.CountIncompleteOutgoing(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count transactions")
	}

	recent, err := s.repo.RecentTransactions(ctx, recentTransactionLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recent transactions")
	}
	summary.RecentTransactions = make([]inventory.TransactionDTO, 0, len(recent))
	for i := range recent {
		summary.RecentTransactions = append(summary.RecentTransactions, *inventory.NewTransactionDTO(&recent[i]))
	}
	return summary, nil
}
