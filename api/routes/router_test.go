package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	accountsvc "github.com/beautytrade/inventory-backend/internal/accounts"
	authsvc "github.com/beautytrade/inventory-backend/internal/auth"
	catalogsvc "github.com/beautytrade/inventory-backend/internal/catalog"
	customersvc "github.com/beautytrade/inventory-backend/internal/customers"
	inventorysvc "github.com/beautytrade/inventory-backend/internal/inventory"
	pricingsvc "github.com/beautytrade/inventory-backend/internal/pricing"
	reportsvc "github.com/beautytrade/inventory-backend/internal/reports"
	pkgauth "github.com/beautytrade/inventory-backend/pkg/auth"
	"github.com/beautytrade/inventory-backend/pkg/config"
	"github.com/beautytrade/inventory-backend/pkg/enums"
	"github.com/beautytrade/inventory-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{}, nil
}

type stubAccountService struct{}

func (stubAccountService) Create(context.Context, accountsvc.CreateInput) (*accountsvc.AccountDTO, error) {
	return &accountsvc.AccountDTO{}, nil
}

func (stubAccountService) Update(context.Context, uint, accountsvc.UpdateInput) (*accountsvc.AccountDTO, error) {
	return &accountsvc.AccountDTO{}, nil
}

func (stubAccountService) ChangePassword(context.Context, uint, string) error { return nil }

func (stubAccountService) Get(context.Context, uint) (*accountsvc.AccountDTO, error) {
	return &accountsvc.AccountDTO{}, nil
}

func (stubAccountService) List(context.Context, *enums.AccountRole, *bool, string) ([]accountsvc.AccountDTO, error) {
	return nil, nil
}

func (stubAccountService) Deactivate(context.Context, uint) (*accountsvc.AccountDTO, error) {
	return &accountsvc.AccountDTO{}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) CreateBrand(context.Context, catalogsvc.CreateBrandInput) (*catalogsvc.BrandDTO, error) {
	return &catalogsvc.BrandDTO{}, nil
}

func (stubCatalogService) UpdateBrand(context.Context, uint, catalogsvc.UpdateBrandInput) (*catalogsvc.BrandDTO, error) {
	return &catalogsvc.BrandDTO{}, nil
}

func (stubCatalogService) GetBrand(context.Context, uint) (*catalogsvc.BrandDTO, error) {
	return &catalogsvc.BrandDTO{}, nil
}

func (stubCatalogService) ListBrands(context.Context, *enums.RecordStatus, string) ([]catalogsvc.BrandDTO, error) {
	return nil, nil
}

func (stubCatalogService) ArchiveBrand(context.Context, uint) (*catalogsvc.BrandDTO, error) {
	return &catalogsvc.BrandDTO{}, nil
}

func (stubCatalogService) CreateItem(context.Context, catalogsvc.CreateItemInput) (*catalogsvc.ItemDTO, error) {
	return &catalogsvc.ItemDTO{}, nil
}

func (stubCatalogService) UpdateItem(context.Context, uint, catalogsvc.UpdateItemInput) (*catalogsvc.ItemDTO, error) {
	return &catalogsvc.ItemDTO{}, nil
}

func (stubCatalogService) DeleteItem(context.Context, uint) error { return nil }

func (stubCatalogService) NextSKU(context.Context, uint) (string, error) { return "101-001", nil }

func (stubCatalogService) GetItem(context.Context, uint) (*catalogsvc.ItemDTO, error) {
	return &catalogsvc.ItemDTO{}, nil
}

func (stubCatalogService) ListItems(context.Context, *uint, string) ([]catalogsvc.ItemDTO, error) {
	return nil, nil
}

type stubCustomerService struct{}

func (stubCustomerService) Create(context.Context, customersvc.CreateCustomerInput) (*customersvc.CustomerDTO, error) {
	return &customersvc.CustomerDTO{}, nil
}

func (stubCustomerService) Update(context.Context, uint, customersvc.UpdateCustomerInput) (*customersvc.CustomerDTO, error) {
	return &customersvc.CustomerDTO{}, nil
}

func (stubCustomerService) Get(context.Context, uint) (*customersvc.CustomerDTO, error) {
	return &customersvc.CustomerDTO{}, nil
}

func (stubCustomerService) List(context.Context, *enums.RecordStatus, *enums.CustomerType, string) ([]customersvc.CustomerDTO, error) {
	return nil, nil
}

func (stubCustomerService) Archive(context.Context, uint) (*customersvc.CustomerDTO, error) {
	return &customersvc.CustomerDTO{}, nil
}

type stubPricingService struct{}

func (stubPricingService) SetTierPrice(context.Context, uint, enums.PricingTier, decimal.Decimal) (*pricingsvc.TierPriceDTO, error) {
	return &pricingsvc.TierPriceDTO{}, nil
}

func (stubPricingService) RemoveTierPrice(context.Context, uint, enums.PricingTier) error {
	return nil
}

func (stubPricingService) ListTierPrices(context.Context, uint) ([]pricingsvc.TierPriceDTO, error) {
	return nil, nil
}

func (stubPricingService) AssignBrandTier(context.Context, uint, uint, enums.PricingTier) (*pricingsvc.AssignmentDTO, error) {
	return &pricingsvc.AssignmentDTO{}, nil
}

func (stubPricingService) UnassignBrandTier(context.Context, uint, uint) error { return nil }

func (stubPricingService) ListAssignments(context.Context, uint) ([]pricingsvc.AssignmentDTO, error) {
	return nil, nil
}

func (stubPricingService) AssignAllUnassigned(context.Context, uint) (int, error) { return 0, nil }

func (stubPricingService) CreateSpecial(context.Context, pricingsvc.CreateSpecialInput) (*pricingsvc.SpecialPricingDTO, error) {
	return &pricingsvc.SpecialPricingDTO{}, nil
}

func (stubPricingService) ApproveSpecial(context.Context, uint, uint) (*pricingsvc.SpecialPricingDTO, error) {
	return &pricingsvc.SpecialPricingDTO{}, nil
}

func (stubPricingService) RejectSpecial(context.Context, uint, uint) (*pricingsvc.SpecialPricingDTO, error) {
	return &pricingsvc.SpecialPricingDTO{}, nil
}

func (stubPricingService) DeleteSpecial(context.Context, uint) error { return nil }

func (stubPricingService) ListSpecials(context.Context, *uint, *uint, *enums.ApprovalStatus) ([]pricingsvc.SpecialPricingDTO, error) {
	return nil, nil
}

func (stubPricingService) Quote(context.Context, uint, uint, *enums.PricingTier) (*pricingsvc.QuoteDTO, error) {
	return &pricingsvc.QuoteDTO{}, nil
}

func (stubPricingService) ResolveQuote(context.Context, uint, uint) (pricingsvc.Quote, error) {
	return pricingsvc.Quote{}, nil
}

type stubInventoryService struct{}

func (stubInventoryService) CreateIncoming(context.Context, inventorysvc.IncomingInput) (*inventorysvc.TransactionDTO, error) {
	return &inventorysvc.TransactionDTO{}, nil
}

func (stubInventoryService) CreateOutgoing(context.Context, inventorysvc.OutgoingInput) (*inventorysvc.TransactionDTO, error) {
	return &inventorysvc.TransactionDTO{}, nil
}

func (stubInventoryService) CreateAdjustment(context.Context, inventorysvc.AdjustmentInput) (*inventorysvc.TransactionDTO, error) {
	return &inventorysvc.TransactionDTO{}, nil
}

func (stubInventoryService) AdjustBatch(context.Context, inventorysvc.AdjustBatchInput) (*inventorysvc.TransactionDTO, error) {
	return &inventorysvc.TransactionDTO{}, nil
}

func (stubInventoryService) UpdateFlags(context.Context, uint, inventorysvc.UpdateFlagsInput) (*inventorysvc.TransactionDTO, error) {
	return &inventorysvc.TransactionDTO{}, nil
}

func (stubInventoryService) Get(context.Context, uint) (*inventorysvc.TransactionDTO, error) {
	return &inventorysvc.TransactionDTO{}, nil
}

func (stubInventoryService) List(context.Context, inventorysvc.TransactionFilters) (*inventorysvc.TransactionPage, error) {
	return &inventorysvc.TransactionPage{}, nil
}

func (stubInventoryService) NextBatchNumber(context.Context, uint) (int, error) { return 1, nil }

func (stubInventoryService) NextReference(context.Context, time.Time) (string, error) {
	return "2025-0001", nil
}

func (stubInventoryService) ListBatches(context.Context, uint) ([]inventorysvc.BatchDTO, error) {
	return nil, nil
}

type stubReportService struct{}

func (stubReportService) ExportItems(context.Context, reportsvc.Format) (*reportsvc.Export, error) {
	return &reportsvc.Export{ContentType: "text/csv", Filename: "items.csv"}, nil
}

func (stubReportService) ExportCustomers(context.Context, reportsvc.Format) (*reportsvc.Export, error) {
	return &reportsvc.Export{ContentType: "text/csv", Filename: "customers.csv"}, nil
}

func (stubReportService) ExportTransactions(context.Context, reportsvc.Format, inventorysvc.TransactionFilters) (*reportsvc.Export, error) {
	return &reportsvc.Export{ContentType: "text/csv", Filename: "transactions.csv"}, nil
}

func (stubReportService) Dashboard(context.Context) (*reportsvc.DashboardDTO, error) {
	return &reportsvc.DashboardDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "router-secret", Issuer: "test", ExpirationMinutes: 30},
	}
}

func testRouter(cfg *config.Config) http.Handler {
	return NewRouter(
		cfg,
		nil,
		stubPinger{},
		(*redis.Client)(nil),
		stubAuthService{},
		stubAccountService{},
		stubCatalogService{},
		stubCustomerService{},
		stubPricingService{},
		stubInventoryService{},
		stubReportService{},
	)
}

func mintToken(t *testing.T, cfg *config.Config, accountID uint, role enums.AccountRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		AccountID: accountID,
		Username:  "router-test",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthAndPublicRoutes(t *testing.T) {
	router := testRouter(testConfig())

	for _, path := range []string{"/health/live", "/health/ready", "/api/public/ping"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestPrivateRoutesRequireAuth(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	authed.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, 7, enums.AccountRoleSalesRep))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestAccountRoutesRequireAdmin(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	rep := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rep.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, 7, enums.AccountRoleSalesRep))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, rep)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for sales rep got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	admin.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, 1, enums.AccountRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestSpecialDecisionRoles(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	rep := httptest.NewRequest(http.MethodPost, "/api/v1/special-pricing/12/approve", nil)
	rep.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, 7, enums.AccountRoleSalesRep))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, rep)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for sales rep got %d", resp.Code)
	}

	leader := httptest.NewRequest(http.MethodPost, "/api/v1/special-pricing/12/approve", nil)
	leader.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, 3, enums.AccountRoleLeader))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, leader)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for leader got %d", resp.Code)
	}
}

func TestDashboardAndExportsReachable(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)
	token := mintToken(t, cfg, 2, enums.AccountRoleAdmin)

	for _, path := range []string{
		"/api/v1/dashboard",
		"/api/v1/reports/exports/items",
		"/api/v1/reports/exports/customers",
		"/api/v1/reports/exports/transactions",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}
