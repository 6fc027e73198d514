package catalog

import (
	"context"
	"testing"

	"github.com/beautytrade/inventory-backend/pkg/db"
	"github.com/beautytrade/inventory-backend/pkg/db/models"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func newTestService(t *testing.T) (Service, *models.Brand, *db.Client) {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromGorm(conn)
	svc, err := NewService(NewRepository(conn), client, 10)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	brand := &models.Brand{
		BrandName:         "Glow Labs",
		VATClassification: enums.VATClassificationVAT,
		Status:            enums.RecordStatusActive,
	}
	if err := conn.Create(brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	return svc, brand, client
}

func TestCreateBrandValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, CreateBrandInput{BrandName: "   ", VATClassification: enums.VATClassificationVAT})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.CreateBrand(ctx, CreateBrandInput{BrandName: "Shine Co", VATClassification: "bogus"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for vat classification, got %v", err)
	}
}

func TestCreateBrandDuplicateName(t *testing.T) {
	svc, brand, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, CreateBrandInput{
		BrandName:         brand.BrandName,
		VATClassification: enums.VATClassificationVAT,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestArchiveBrand(t *testing.T) {
	svc, brand, _ := newTestService(t)
	ctx := context.Background()

	archived, err := svc.ArchiveBrand(ctx, brand.ID)
	if err != nil {
		t.Fatalf("archive brand: %v", err)
	}
	if archived.Status != enums.RecordStatusArchived {
		t.Fatalf("expected archived status, got %s", archived.Status)
	}

	_, err = svc.ArchiveBrand(ctx, brand.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on double archive, got %v", err)
	}

	_, err = svc.CreateItem(ctx, CreateItemInput{
		BrandID:  brand.ID,
		ItemName: "Serum",
		UOM:      enums.UnitOfMeasurePiece,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for archived brand, got %v", err)
	}
}

func TestCreateItemAssignsSequentialSKUs(t *testing.T) {
	svc, brand, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateItem(ctx, CreateItemInput{
		BrandID:  brand.ID,
		ItemName: "Day Cream",
		UOM:      enums.UnitOfMeasurePiece,
	})
	if err != nil {
		t.Fatalf("create first item: %v", err)
	}
	second, err := svc.CreateItem(ctx, CreateItemInput{
		BrandID:  brand.ID,
		ItemName: "Night Cream",
		UOM:      enums.UnitOfMeasurePiece,
	})
	if err != nil {
		t.Fatalf("create second item: %v", err)
	}

	prefix := SKUPrefix(brand.ID)
	if first.SKU == nil || *first.SKU != FormatSKU(prefix, 1) {
		t.Fatalf("expected first sku %s, got %v", FormatSKU(prefix, 1), first.SKU)
	}
	if second.SKU == nil || *second.SKU != FormatSKU(prefix, 2) {
		t.Fatalf("expected second sku %s, got %v", FormatSKU(prefix, 2), second.SKU)
	}
	if first.ThresholdValue != 10 {
		t.Fatalf("expected default threshold 10, got %d", first.ThresholdValue)
	}
}

func TestCreateItemDuplicateNameWithinBrand(t *testing.T) {
	svc, brand, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, CreateItemInput{
		BrandID:  brand.ID,
		ItemName: "Toner",
		UOM:      enums.UnitOfMeasurePiece,
	}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	_, err := svc.CreateItem(ctx, CreateItemInput{
		BrandID:  brand.ID,
		ItemName: "Toner",
		UOM:      enums.UnitOfMeasurePiece,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetItemDerivesAvailability(t *testing.T) {
	svc, brand, client := newTestService(t)
	ctx := context.Background()

	threshold := 5
	created, err := svc.CreateItem(ctx, CreateItemInput{
		BrandID:        brand.ID,
		ItemName:       "Lip Balm",
		UOM:            enums.UnitOfMeasurePiece,
		ThresholdValue: &threshold,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	got, err := svc.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Availability != enums.AvailabilityOutOfStock {
		t.Fatalf("expected out of stock with no batches, got %s", got.Availability)
	}

	batch := &models.ItemBatch{
		ItemID:            created.ID,
		BatchNumber:       1,
		CostPrice:         decimal.NewFromInt(50),
		InitialQuantity:   3,
		RemainingQuantity: 3,
	}
	if err := client.DB().Create(batch).Error; err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	got, err = svc.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("get item after batch: %v", err)
	}
	if got.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", got.Quantity)
	}
	if got.Availability != enums.AvailabilityLowStock {
		t.Fatalf("expected low stock below threshold, got %s", got.Availability)
	}
}

func TestUpdateItemThreshold(t *testing.T) {
	svc, brand, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, CreateItemInput{
		BrandID:  brand.ID,
		ItemName: "Face Mask",
		UOM:      enums.UnitOfMeasurePack,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	newThreshold := 25
	updated, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{ThresholdValue: &newThreshold})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.ThresholdValue != 25 {
		t.Fatalf("expected threshold 25, got %d", updated.ThresholdValue)
	}

	negative := -1
	_, err = svc.UpdateItem(ctx, created.ID, UpdateItemInput{ThresholdValue: &negative})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative threshold, got %v", err)
	}
}
