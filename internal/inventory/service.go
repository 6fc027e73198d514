package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beautytrade/inventory-backend/internal/pricing"
	"github.com/beautytrade/inventory-backend/pkg/db"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes stock movement operations. All writes run inside a single
// database transaction so batches and transaction rows never drift apart.
type Service interface {
	CreateIncoming(ctx context.Context, input IncomingInput) (*TransactionDTO, error)
	CreateOutgoing(ctx context.Context, input OutgoingInput) (*TransactionDTO, error)
	CreateAdjustment(ctx context.Context, input AdjustmentInput) (*TransactionDTO, error)
	AdjustBatch(ctx context.Context, input AdjustBatchInput) (*TransactionDTO, error)
	UpdateFlags(ctx context.Context, id uint, input UpdateFlagsInput) (*TransactionDTO, error)
	Get(ctx context.Context, id uint) (*TransactionDTO, error)
	List(ctx context.Context, filters TransactionFilters) (*TransactionPage, error)
	ListBatches(ctx context.Context, itemID uint) ([]BatchDTO, error)
	NextBatchNumber(ctx context.Context, itemID uint) (int, error)
	NextReference(ctx context.Context, date time.Time) (string, error)
}

// IncomingLine is one received lot on an INCOMING transaction.
type IncomingLine struct {
	ItemID    uint
	Quantity  int
	CostPrice decimal.Decimal
}

// IncomingInput holds the validated payload for goods received from a brand.
type IncomingInput struct {
	BrandID        uint
	AccountID      *uint
	TransactedDate time.Time
	DueDate        *time.Time
	Notes          *string
	Lines          []IncomingLine
}

// OutgoingLine is one dispatched lot on an OUTGOING transaction. The batch is
// chosen by the caller; prices come from the customer's resolved quote.
type OutgoingLine struct {
	ItemID      uint
	BatchNumber int
	Quantity    int
}

// OutgoingInput holds the validated payload for goods dispatched to a
// customer.
type OutgoingInput struct {
	BrandID        uint
	CustomerID     uint
	AccountID      *uint
	VATType        *enums.VATType
	TransactedDate time.Time
	DueDate        *time.Time
	Notes          *string
	Lines          []OutgoingLine
}

// AdjustmentInput holds the payload for an item-level correction. A positive
// change receives stock into a new batch at the given cost; a negative change
// consumes stock from the newest batches first.
type AdjustmentInput struct {
	ItemID         uint
	QuantityChange int
	CostPrice      decimal.Decimal
	AccountID      *uint
	Notes          *string
}

// AdjustBatchInput holds the payload for a correction scoped to one batch.
type AdjustBatchInput struct {
	ItemID         uint
	BatchNumber    int
	QuantityChange int
	AccountID      *uint
	Notes          *string
}

// UpdateFlagsInput carries the OUTGOING progress flags to change. Nil fields
// are left as they are.
type UpdateFlagsInput struct {
	IsReleased *bool
	IsPaid     *bool
	IsORSent   *bool
}

type itemLoader interface {
	FindItemByID(ctx context.Context, id uint) (*models.Item, error)
}

type brandLoader interface {
	FindBrandByID(ctx context.Context, id uint) (*models.Brand, error)
}

type customerLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
}

type accountLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Account, error)
}

type priceQuoter interface {
	ResolveQuote(ctx context.Context, customerID, itemID uint) (pricing.Quote, error)
}

// service implements the inventory service.
type service struct {
	repo      *Repository
	dbClient  *db.Client
	items     itemLoader
	brands    brandLoader
	customers customerLoader
	accounts  accountLoader
	pricer    priceQuoter
}

// NewService constructs an inventory service instance. The account loader is
// optional; without one the seller tier restriction is not enforced.
func NewService(repo *Repository, dbClient *db.Client, items itemLoader, brands brandLoader, customers customerLoader, accounts accountLoader, pricer priceQuoter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	if brands == nil {
		return nil, fmt.Errorf("brand loader required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("price quoter required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		items:     items,
		brands:    brands,
		customers: customers,
		accounts:  accounts,
		pricer:    pricer,
	}, nil
}

// vatRate and vatDivisor back out the 12% VAT from a VAT-inclusive total.
var (
	vatRate    = decimal.NewFromInt(12)
	vatDivisor = decimal.NewFromInt(112)
)

// CreateIncoming records goods received from a brand. Each line opens a new
// batch numbered sequentially per item, valued at the line's cost price.
func (s *service) CreateIncoming(ctx context.Context, input IncomingInput) (*TransactionDTO, error) {
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	brand, err := s.loadBrand(ctx, input.BrandID)
	if err != nil {
		return nil, err
	}
	items := make(map[uint]*models.Item, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		if line.CostPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price must be non-negative")
		}
		item, err := s.loadBrandItem(ctx, items, line.ItemID, brand.ID)
		if err != nil {
			return nil, err
		}
		items[item.ID] = item
	}

	transactedDate := defaultedDate(input.TransactedDate)
	var created *models.Transaction
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reference, err := repo.NextReferenceNumber(ctx, transactedDate.Year())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: issue reference number")
		}

		total := decimal.Zero
		for _, line := range input.Lines {
			total = total.Add(line.CostPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		txn := &models.Transaction{
			BrandID:         brand.ID,
			AccountID:       input.AccountID,
			TransactionType: enums.TransactionTypeIncoming,
			TotalAmount:     total,
			TransactedDate:  transactedDate,
			DueDate:         input.DueDate,
			ReferenceNumber: reference,
			Notes:           input.Notes,
		}
		if _, err := repo.CreateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction")
		}

		lines := make([]models.TransactionItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			number, err := repo.NextBatchNumber(ctx, line.ItemID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: next batch number")
			}
			batch := &models.ItemBatch{
				ItemID:            line.ItemID,
				BatchNumber:       number,
				CostPrice:         line.CostPrice,
				InitialQuantity:   line.Quantity,
				RemainingQuantity: line.Quantity,
				TransactionID:     &txn.ID,
			}
			if _, err := repo.CreateBatch(ctx, batch); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert batch")
			}
			lines = append(lines, models.TransactionItem{
				TransactionID: txn.ID,
				ItemID:        line.ItemID,
				BatchID:       &batch.ID,
				Quantity:      line.Quantity,
				UnitPrice:     line.CostPrice,
				TotalPrice:    line.CostPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			})
		}
		if err := repo.CreateTransactionItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction lines")
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, created.ID)
}

// CreateOutgoing records goods dispatched to a customer. Unit prices come
// from the customer's resolved quote per item; stock is consumed from the
// batches named on each line.
func (s *service) CreateOutgoing(ctx context.Context, input OutgoingInput) (*TransactionDTO, error) {
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	if input.VATType != nil && !input.VATType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vat type")
	}
	brand, err := s.loadBrand(ctx, input.BrandID)
	if err != nil {
		return nil, err
	}
	customer, err := s.loadCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	account, err := s.loadAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	type pricedLine struct {
		line  OutgoingLine
		quote pricing.Quote
	}
	priced := make([]pricedLine, 0, len(input.Lines))
	items := make(map[uint]*models.Item, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		item, err := s.loadBrandItem(ctx, items, line.ItemID, brand.ID)
		if err != nil {
			return nil, err
		}
		items[item.ID] = item

		quote, err := s.pricer.ResolveQuote(ctx, customer.ID, item.ID)
		if err != nil {
			return nil, err
		}
		if quote.Reason != "" {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, quote.Reason).
				WithDetails(map[string]string{"item_id": strconv.FormatUint(uint64(item.ID), 10)})
		}
		if account != nil && !account.CanSellAtTier(quote.Tier) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account may not sell at this tier").
				WithDetails(map[string]string{"tier": quote.Tier.String()})
		}
		priced = append(priced, pricedLine{line: line, quote: quote})
	}

	transactedDate := defaultedDate(input.TransactedDate)
	var created *models.Transaction
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reference, err := repo.NextReferenceNumber(ctx, transactedDate.Year())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: issue reference number")
		}

		txn := &models.Transaction{
			BrandID:         brand.ID,
			CustomerID:      &customer.ID,
			AccountID:       input.AccountID,
			TransactionType: enums.TransactionTypeOutgoing,
			VATType:         input.VATType,
			TransactedDate:  transactedDate,
			DueDate:         input.DueDate,
			ReferenceNumber: reference,
			Notes:           input.Notes,
		}
		if _, err := repo.CreateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction")
		}

		total := decimal.Zero
		lines := make([]models.TransactionItem, 0, len(priced))
		for _, entry := range priced {
			batch, err := repo.FindBatch(ctx, entry.line.ItemID, entry.line.BatchNumber)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "batch not found").
						WithDetails(map[string]string{
							"item_id":      strconv.FormatUint(uint64(entry.line.ItemID), 10),
							"batch_number": strconv.Itoa(entry.line.BatchNumber),
						})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load batch")
			}
			if batch.RemainingQuantity < entry.line.Quantity {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock in batch").
					WithDetails(map[string]string{
						"batch_number": strconv.Itoa(batch.BatchNumber),
						"remaining":    strconv.Itoa(batch.RemainingQuantity),
						"requested":    strconv.Itoa(entry.line.Quantity),
					})
			}
			batch.RemainingQuantity -= entry.line.Quantity
			if _, err := repo.UpdateBatch(ctx, batch); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update batch")
			}

			tier := entry.quote.Tier
			lineTotal := entry.quote.FinalPrice.Mul(decimal.NewFromInt(int64(entry.line.Quantity)))
			total = total.Add(lineTotal)
			lines = append(lines, models.TransactionItem{
				TransactionID: txn.ID,
				ItemID:        entry.line.ItemID,
				BatchID:       &batch.ID,
				Quantity:      entry.line.Quantity,
				UnitPrice:     entry.quote.FinalPrice,
				TotalPrice:    lineTotal,
				PricingTier:   &tier,
			})
		}
		if err := repo.CreateTransactionItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction lines")
		}

		txn.TotalAmount = total
		txn.VATAmount = vatAmount(input.VATType, total)
		if _, err := repo.UpdateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update transaction totals")
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, created.ID)
}

// CreateAdjustment corrects an item's stock without a counterpart document.
// A positive change opens a new batch; a negative change drains the newest
// batches first so older receipts stay intact for costing.
func (s *service) CreateAdjustment(ctx context.Context, input AdjustmentInput) (*TransactionDTO, error) {
	if input.QuantityChange == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity change must not be zero")
	}
	item, err := s.loadItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if input.QuantityChange > 0 && input.CostPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price must be non-negative")
	}

	transactedDate := time.Now().UTC()
	var created *models.Transaction
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reference, err := repo.NextReferenceNumber(ctx, transactedDate.Year())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: issue reference number")
		}
		txn := &models.Transaction{
			BrandID:         item.BrandID,
			AccountID:       input.AccountID,
			TransactionType: enums.TransactionTypeAdjustment,
			TransactedDate:  transactedDate,
			ReferenceNumber: reference,
			Notes:           input.Notes,
		}
		if _, err := repo.CreateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction")
		}

		var lines []models.TransactionItem
		if input.QuantityChange > 0 {
			number, err := repo.NextBatchNumber(ctx, item.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: next batch number")
			}
			batch := &models.ItemBatch{
				ItemID:            item.ID,
				BatchNumber:       number,
				CostPrice:         input.CostPrice,
				InitialQuantity:   input.QuantityChange,
				RemainingQuantity: input.QuantityChange,
				TransactionID:     &txn.ID,
			}
			if _, err := repo.CreateBatch(ctx, batch); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert batch")
			}
			lines = append(lines, adjustmentLine(txn.ID, item.ID, batch, input.QuantityChange))
		} else {
			batches, err := repo.ListBatchesNewestFirst(ctx, item.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list batches")
			}
			remaining := -input.QuantityChange
			for i := range batches {
				if remaining == 0 {
					break
				}
				batch := &batches[i]
				if batch.RemainingQuantity == 0 {
					continue
				}
				take := batch.RemainingQuantity
				if take > remaining {
					take = remaining
				}
				batch.RemainingQuantity -= take
				if _, err := repo.UpdateBatch(ctx, batch); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update batch")
				}
				lines = append(lines, adjustmentLine(txn.ID, item.ID, batch, -take))
				remaining -= take
			}
			if remaining > 0 {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock for adjustment").
					WithDetails(map[string]string{"short_by": strconv.Itoa(remaining)})
			}
		}
		if err := repo.CreateTransactionItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction lines")
		}

		total := decimal.Zero
		for _, line := range lines {
			total = total.Add(line.TotalPrice)
		}
		txn.TotalAmount = total
		if _, err := repo.UpdateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update transaction totals")
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, created.ID)
}

// AdjustBatch corrects the remaining quantity of one batch by a signed
// change. The correction is recorded as an ADJUSTMENT transaction so stock
// history stays auditable.
func (s *service) AdjustBatch(ctx context.Context, input AdjustBatchInput) (*TransactionDTO, error) {
	if input.QuantityChange == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity change must not be zero")
	}
	item, err := s.loadItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	transactedDate := time.Now().UTC()
	var created *models.Transaction
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		batch, err := repo.FindBatch(ctx, item.ID, input.BatchNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "batch not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load batch")
		}
		next := batch.RemainingQuantity + input.QuantityChange
		if next < 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "adjustment would drive batch below zero").
				WithDetails(map[string]string{
					"remaining": strconv.Itoa(batch.RemainingQuantity),
					"change":    strconv.Itoa(input.QuantityChange),
				})
		}
		batch.RemainingQuantity = next
		if _, err := repo.UpdateBatch(ctx, batch); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update batch")
		}

		reference, err := repo.NextReferenceNumber(ctx, transactedDate.Year())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: issue reference number")
		}
		txn := &models.Transaction{
			BrandID:         item.BrandID,
			AccountID:       input.AccountID,
			TransactionType: enums.TransactionTypeAdjustment,
			TransactedDate:  transactedDate,
			ReferenceNumber: reference,
			Notes:           input.Notes,
		}
		if _, err := repo.CreateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction")
		}
		line := adjustmentLine(txn.ID, item.ID, batch, input.QuantityChange)
		if err := repo.CreateTransactionItems(ctx, []models.TransactionItem{line}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction lines")
		}
		txn.TotalAmount = line.TotalPrice
		if _, err := repo.UpdateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update transaction totals")
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, created.ID)
}

// UpdateFlags changes the progress flags on an OUTGOING transaction.
func (s *service) UpdateFlags(ctx context.Context, id uint, input UpdateFlagsInput) (*TransactionDTO, error) {
	txn, err := s.loadTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn.TransactionType != enums.TransactionTypeOutgoing {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "progress flags apply to outgoing transactions only").
			WithDetails(map[string]string{"transaction_type": txn.TransactionType.String()})
	}
	if input.IsReleased != nil {
		txn.IsReleased = *input.IsReleased
	}
	if input.IsPaid != nil {
		txn.IsPaid = *input.IsPaid
	}
	if input.IsORSent != nil {
		txn.IsORSent = *input.IsORSent
	}
	if _, err := s.repo.UpdateTransaction(ctx, txn); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update transaction flags")
	}
	return s.detail(ctx, id)
}

// Get returns one transaction with its lines.
func (s *service) Get(ctx context.Context, id uint) (*TransactionDTO, error) {
	return s.detail(ctx, id)
}

// List returns transactions matching the filters, newest first. When a limit
// or cursor is supplied the result is one page keyed on transacted date.
func (s *service) List(ctx context.Context, filters TransactionFilters) (*TransactionPage, error) {
	if filters.Type != nil && !filters.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type")
	}

	cursor, err := pagination.ParseCursor(filters.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	filters.cursor = cursor

	limit := 0
	if filters.Page.Limit > 0 || cursor != nil {
		limit = pagination.NormalizeLimit(filters.Page.Limit)
		filters.Page.Limit = limit
	}

	rows, err := s.repo.ListTransactions(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions")
	}

	page := &TransactionPage{}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.TransactedDate,
			ID:        last.ID,
		})
	}
	page.Transactions = make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		page.Transactions = append(page.Transactions, *NewTransactionDTO(&rows[i]))
	}
	return page, nil
}

// ListBatches returns an item's batches in receipt order.
func (s *service) ListBatches(ctx context.Context, itemID uint) ([]BatchDTO, error) {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListBatches(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list batches")
	}
	out := make([]BatchDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewBatchDTO(&rows[i]))
	}
	return out, nil
}

// NextBatchNumber previews the number the item's next received lot would take.
func (s *service) NextBatchNumber(ctx context.Context, itemID uint) (int, error) {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return 0, err
	}
	number, err := s.repo.NextBatchNumber(ctx, itemID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: scan batch numbers")
	}
	return number, nil
}

// NextReference previews the reference a transaction dated on the given day
// would receive. The definitive value is still issued inside the insert
// transaction, so a concurrent write may claim this one first.
func (s *service) NextReference(ctx context.Context, date time.Time) (string, error) {
	reference, err := s.repo.NextReferenceNumber(ctx, date.Year())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: scan reference numbers")
	}
	return reference, nil
}

func (s *service) detail(ctx context.Context, id uint) (*TransactionDTO, error) {
	txn, err := s.repo.GetTransactionDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load transaction")
	}
	return NewTransactionDTO(txn), nil
}

func (s *service) loadTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load transaction")
	}
	return txn, nil
}

func (s *service) loadItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.items.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

// loadBrandItem loads an item through the per-call cache and checks it
// belongs to the transaction's brand.
func (s *service) loadBrandItem(ctx context.Context, cache map[uint]*models.Item, itemID, brandID uint) (*models.Item, error) {
	if item, ok := cache[itemID]; ok {
		return item, nil
	}
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.BrandID != brandID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item does not belong to the transaction's brand").
			WithDetails(map[string]string{"item_id": strconv.FormatUint(uint64(itemID), 10)})
	}
	return item, nil
}

func (s *service) loadBrand(ctx context.Context, id uint) (*models.Brand, error) {
	brand, err := s.brands.FindBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return brand, nil
}

func (s *service) loadCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func (s *service) loadAccount(ctx context.Context, id *uint) (*models.Account, error) {
	if id == nil || s.accounts == nil {
		return nil, nil
	}
	account, err := s.accounts.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	return account, nil
}

func adjustmentLine(txnID, itemID uint, batch *models.ItemBatch, quantity int) models.TransactionItem {
	return models.TransactionItem{
		TransactionID: txnID,
		ItemID:        itemID,
		BatchID:       &batch.ID,
		Quantity:      quantity,
		UnitPrice:     batch.CostPrice,
		TotalPrice:    batch.CostPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func vatAmount(vatType *enums.VATType, total decimal.Decimal) decimal.Decimal {
	if vatType == nil || *vatType != enums.VATTypeVAT {
		return decimal.Zero
	}
	return total.Mul(vatRate).Div(vatDivisor).Round(2)
}

func defaultedDate(value time.Time) time.Time {
	if value.IsZero() {
		return time.Now().UTC()
	}
	return value
}
