package pricing

import (
	"context"
	"testing"

	"github.com/beautytrade/inventory-backend/internal/catalog"
	"github.com/beautytrade/inventory-backend/internal/customers"
	"github.com/beautytrade/inventory-backend/pkg/db"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	svc      Service
	conn     *gorm.DB
	brand    *models.Brand
	item     *models.Item
	customer *models.Customer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Brand{},
		&models.Item{},
		&models.ItemTierPricing{},
		&models.Customer{},
		&models.CustomerBrandPricing{},
		&models.CustomerSpecialPricing{},
		&models.Account{},
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	client := db.NewFromGorm(conn)
	svc, err := NewService(
		NewRepository(conn),
		client,
		customers.NewRepository(conn),
		catalog.NewRepository(conn),
		catalog.NewRepository(conn),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	brand := &models.Brand{BrandName: "Glow Labs", VATClassification: enums.VATClassificationVAT, Status: enums.RecordStatusActive}
	if err := conn.Create(brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	sku := "101-001"
	item := &models.Item{BrandID: brand.ID, ItemName: "Day Cream", SKU: &sku, UOM: enums.UnitOfMeasurePiece, ThresholdValue: 10}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	customer := &models.Customer{
		CompanyName:   "Bloom Beauty Hub",
		ContactPerson: "Ana",
		Address:       "Quezon City",
		ContactNumber: "09170000000",
		CustomerType:  enums.CustomerTypeReseller,
		Platform:      enums.ContactPlatformWhatsApp,
		PricingTier:   enums.PricingTierSRP,
		Status:        enums.RecordStatusActive,
	}
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	return &testEnv{svc: svc, conn: conn, brand: brand, item: item, customer: customer}
}

func TestSetTierPriceUpserts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.SetTierPrice(ctx, env.item.ID, enums.PricingTierSRP, decimal.NewFromInt(300))
	if err != nil {
		t.Fatalf("set tier price: %v", err)
	}
	if first.Price != "300.00" {
		t.Fatalf("expected 300.00, got %s", first.Price)
	}

	second, err := env.svc.SetTierPrice(ctx, env.item.ID, enums.PricingTierSRP, decimal.NewFromInt(280))
	if err != nil {
		t.Fatalf("overwrite tier price: %v", err)
	}
	if second.Price != "280.00" {
		t.Fatalf("expected 280.00 after overwrite, got %s", second.Price)
	}

	rows, err := env.svc.ListTierPrices(ctx, env.item.ID)
	if err != nil {
		t.Fatalf("list tier prices: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row after upsert, got %d", len(rows))
	}

	_, err = env.svc.SetTierPrice(ctx, env.item.ID, enums.PricingTierSRP, decimal.NewFromInt(-10))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
}

func TestAssignBrandTierIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.AssignBrandTier(ctx, env.customer.ID, env.brand.ID, enums.PricingTierDD)
	if err != nil {
		t.Fatalf("assign tier: %v", err)
	}
	if first.PricingTier != enums.PricingTierDD || !first.Assigned {
		t.Fatalf("unexpected assignment %+v", first)
	}

	second, err := env.svc.AssignBrandTier(ctx, env.customer.ID, env.brand.ID, enums.PricingTierDD)
	if err != nil {
		t.Fatalf("repeat assign: %v", err)
	}
	if second.PricingTier != enums.PricingTierDD {
		t.Fatalf("expected same tier on repeat, got %s", second.PricingTier)
	}

	var count int64
	if err := env.conn.Model(&models.CustomerBrandPricing{}).Count(&count).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one assignment row, got %d", count)
	}

	changed, err := env.svc.AssignBrandTier(ctx, env.customer.ID, env.brand.ID, enums.PricingTierRS)
	if err != nil {
		t.Fatalf("reassign tier: %v", err)
	}
	if changed.PricingTier != enums.PricingTierRS {
		t.Fatalf("expected RS after reassign, got %s", changed.PricingTier)
	}
}

func TestUnassignBrandTier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.AssignBrandTier(ctx, env.customer.ID, env.brand.ID, enums.PricingTierCD); err != nil {
		t.Fatalf("assign tier: %v", err)
	}
	if err := env.svc.UnassignBrandTier(ctx, env.customer.ID, env.brand.ID); err != nil {
		t.Fatalf("unassign tier: %v", err)
	}

	err := env.svc.UnassignBrandTier(ctx, env.customer.ID, env.brand.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after unassign, got %v", err)
	}
}

func TestAssignAllUnassigned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	secondBrand := &models.Brand{BrandName: "Velvet Rose", VATClassification: enums.VATClassificationVAT, Status: enums.RecordStatusActive}
	if err := env.conn.Create(secondBrand).Error; err != nil {
		t.Fatalf("seed second brand: %v", err)
	}
	archived := &models.Brand{BrandName: "Old House", VATClassification: enums.VATClassificationVAT, Status: enums.RecordStatusArchived}
	if err := env.conn.Create(archived).Error; err != nil {
		t.Fatalf("seed archived brand: %v", err)
	}

	other := &models.Customer{
		CompanyName:   "Pearl Essence Trading",
		ContactPerson: "Liza",
		Address:       "Makati",
		ContactNumber: "09180000000",
		CustomerType:  enums.CustomerTypeReseller,
		Platform:      enums.ContactPlatformWhatsApp,
		PricingTier:   enums.PricingTierSRP,
		Status:        enums.RecordStatusActive,
	}
	if err := env.conn.Create(other).Error; err != nil {
		t.Fatalf("seed second customer: %v", err)
	}

	if _, err := env.svc.AssignBrandTier(ctx, env.customer.ID, env.brand.ID, enums.PricingTierDD); err != nil {
		t.Fatalf("assign tier: %v", err)
	}

	created, err := env.svc.AssignAllUnassigned(ctx, env.customer.ID)
	if err != nil {
		t.Fatalf("assign all unassigned: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected one placeholder row, got %d", created)
	}

	placeholder, err := NewRepository(env.conn).GetBrandAssignment(ctx, env.customer.ID, secondBrand.ID)
	if err != nil {
		t.Fatalf("load placeholder: %v", err)
	}
	if placeholder.HasTier() {
		t.Fatalf("placeholder should not carry a real tier, got %s", placeholder.PricingTier)
	}

	again, err := env.svc.AssignAllUnassigned(ctx, env.customer.ID)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected idempotent second run, created %d", again)
	}

	var otherRows int64
	if err := env.conn.Model(&models.CustomerBrandPricing{}).Where("customer_id = ?", other.ID).Count(&otherRows).Error; err != nil {
		t.Fatalf("count other customer rows: %v", err)
	}
	if otherRows != 0 {
		t.Fatalf("backfill should only touch the requested customer, found %d rows", otherRows)
	}

	if _, err := env.svc.AssignAllUnassigned(ctx, 9999); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown customer, got %v", err)
	}
}

func TestCreateSpecialValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateSpecial(ctx, CreateSpecialInput{
		CustomerID: env.customer.ID,
		ItemID:     env.item.ID,
		Discount:   decimal.NewFromInt(50),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for positive discount, got %v", err)
	}

	_, err = env.svc.CreateSpecial(ctx, CreateSpecialInput{
		CustomerID: env.customer.ID,
		ItemID:     9999,
		Discount:   decimal.NewFromInt(-50),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing item, got %v", err)
	}
}

func TestSpecialPricingWorkflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateSpecial(ctx, CreateSpecialInput{
		CustomerID: env.customer.ID,
		ItemID:     env.item.ID,
		Discount:   decimal.NewFromInt(-50),
	})
	if err != nil {
		t.Fatalf("create special: %v", err)
	}
	if created.ApprovalStatus != enums.ApprovalStatusPending {
		t.Fatalf("expected pending, got %s", created.ApprovalStatus)
	}

	_, err = env.svc.CreateSpecial(ctx, CreateSpecialInput{
		CustomerID: env.customer.ID,
		ItemID:     env.item.ID,
		Discount:   decimal.NewFromInt(-30),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate pending request, got %v", err)
	}

	approved, err := env.svc.ApproveSpecial(ctx, created.ID, 7)
	if err != nil {
		t.Fatalf("approve special: %v", err)
	}
	if approved.ApprovalStatus != enums.ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", approved.ApprovalStatus)
	}
	if approved.DecidedAt == nil {
		t.Fatal("expected decided_at to be set")
	}
	if approved.DecidedByID == nil || *approved.DecidedByID != 7 {
		t.Fatalf("expected decider 7, got %v", approved.DecidedByID)
	}

	_, err = env.svc.ApproveSpecial(ctx, created.ID, 7)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on double approve, got %v", err)
	}
	_, err = env.svc.RejectSpecial(ctx, created.ID, 7)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on reject after approve, got %v", err)
	}
}

func TestQuoteEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.SetTierPrice(ctx, env.item.ID, enums.PricingTierSRP, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("set SRP price: %v", err)
	}
	if _, err := env.svc.SetTierPrice(ctx, env.item.ID, enums.PricingTierDD, decimal.NewFromInt(180)); err != nil {
		t.Fatalf("set DD price: %v", err)
	}

	quote, err := env.svc.Quote(ctx, env.customer.ID, env.item.ID, nil)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Tier != enums.PricingTierSRP || quote.FinalPrice != "300.00" {
		t.Fatalf("expected SRP 300.00, got %s %s", quote.Tier, quote.FinalPrice)
	}

	if _, err := env.svc.AssignBrandTier(ctx, env.customer.ID, env.brand.ID, enums.PricingTierDD); err != nil {
		t.Fatalf("assign tier: %v", err)
	}
	quote, err = env.svc.Quote(ctx, env.customer.ID, env.item.ID, nil)
	if err != nil {
		t.Fatalf("quote after assignment: %v", err)
	}
	if quote.Tier != enums.PricingTierDD || quote.FinalPrice != "180.00" {
		t.Fatalf("expected DD 180.00, got %s %s", quote.Tier, quote.FinalPrice)
	}

	special, err := env.svc.CreateSpecial(ctx, CreateSpecialInput{
		CustomerID: env.customer.ID,
		ItemID:     env.item.ID,
		Discount:   decimal.NewFromInt(-30),
	})
	if err != nil {
		t.Fatalf("create special: %v", err)
	}

	quote, err = env.svc.Quote(ctx, env.customer.ID, env.item.ID, nil)
	if err != nil {
		t.Fatalf("quote with pending special: %v", err)
	}
	if quote.FinalPrice != "180.00" {
		t.Fatalf("pending special must not apply, got %s", quote.FinalPrice)
	}

	if _, err := env.svc.ApproveSpecial(ctx, special.ID, 1); err != nil {
		t.Fatalf("approve special: %v", err)
	}
	quote, err = env.svc.Quote(ctx, env.customer.ID, env.item.ID, nil)
	if err != nil {
		t.Fatalf("quote with approved special: %v", err)
	}
	if quote.FinalPrice != "150.00" || quote.Discount != "-30.00" {
		t.Fatalf("expected 150.00 with -30.00 discount, got %s %s", quote.FinalPrice, quote.Discount)
	}

	srp := enums.PricingTierSRP
	quote, err = env.svc.Quote(ctx, env.customer.ID, env.item.ID, &srp)
	if err != nil {
		t.Fatalf("quote at requested tier: %v", err)
	}
	if quote.Tier != enums.PricingTierSRP || quote.TierSource != TierSourceRequested {
		t.Fatalf("expected requested SRP tier, got %s from %s", quote.Tier, quote.TierSource)
	}
	if quote.FinalPrice != "270.00" {
		t.Fatalf("expected 270.00 at requested SRP, got %s", quote.FinalPrice)
	}
}
