package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/internal/auth"
	"github.com/mvillegas/cabstock-backend/internal/customers"
	"github.com/mvillegas/cabstock-backend/internal/dashboard"
	"github.com/mvillegas/cabstock-backend/internal/inventory"
	"github.com/mvillegas/cabstock-backend/internal/sales"
	"github.com/mvillegas/cabstock-backend/internal/users"
	pkgauth "github.com/mvillegas/cabstock-backend/pkg/auth"
	"github.com/mvillegas/cabstock-backend/pkg/auth/session"
	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) { return true, nil }

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, auth.LoginInput) (*auth.LoginResult, error) {
	return &auth.LoginResult{AccessToken: "token"}, nil
}
func (stubAuthService) Logout(context.Context, activitylog.Actor, string) error { return nil }

type stubCabService struct{}

func (stubCabService) List(context.Context, inventory.Filter) ([]models.Cab, error) {
	return []models.Cab{}, nil
}
func (stubCabService) Get(context.Context, uint) (*models.Cab, error) { return &models.Cab{}, nil }
func (stubCabService) Create(context.Context, inventory.CreateCabInput) (*models.Cab, error) {
	return &models.Cab{}, nil
}
func (stubCabService) Update(context.Context, uint, inventory.UpdateCabInput) (*models.Cab, error) {
	return &models.Cab{}, nil
}
func (stubCabService) Delete(context.Context, uint) error { return nil }
func (stubCabService) Sync(models.Cab)                    {}
func (stubCabService) Resync(context.Context) error       { return nil }

type stubAccessoryService struct{}

func (stubAccessoryService) List(context.Context, inventory.Filter) ([]models.Accessory, error) {
	return []models.Accessory{}, nil
}
func (stubAccessoryService) Get(context.Context, uint) (*models.Accessory, error) {
	return &models.Accessory{}, nil
}
func (stubAccessoryService) Create(context.Context, inventory.CreateAccessoryInput) (*models.Accessory, error) {
	return &models.Accessory{}, nil
}
func (stubAccessoryService) Update(context.Context, uint, inventory.UpdateAccessoryInput) (*models.Accessory, error) {
	return &models.Accessory{}, nil
}
func (stubAccessoryService) Delete(context.Context, uint) error { return nil }
func (stubAccessoryService) Sync(models.Accessory)              {}
func (stubAccessoryService) Resync(context.Context) error      { return nil }

type stubMaterialService struct{}

func (stubMaterialService) List(context.Context, inventory.Filter) ([]models.Material, error) {
	return []models.Material{}, nil
}
func (stubMaterialService) ListPage(context.Context, inventory.Filter, pagination.Params) (*inventory.MaterialPage, error) {
	return &inventory.MaterialPage{LastPage: 1}, nil
}
func (stubMaterialService) Get(context.Context, uint) (*models.Material, error) {
	return &models.Material{}, nil
}
func (stubMaterialService) Create(context.Context, inventory.CreateMaterialInput) (*models.Material, error) {
	return &models.Material{}, nil
}
func (stubMaterialService) Update(context.Context, uint, inventory.UpdateMaterialInput) (*models.Material, error) {
	return &models.Material{}, nil
}
func (stubMaterialService) Delete(context.Context, uint) error { return nil }

type stubCustomerService struct{}

func (stubCustomerService) List(context.Context, string, pagination.Params) (*customers.CustomerPage, error) {
	return &customers.CustomerPage{LastPage: 1}, nil
}
func (stubCustomerService) Get(context.Context, uint) (*models.Customer, error) {
	return &models.Customer{}, nil
}
func (stubCustomerService) Create(context.Context, customers.CreateCustomerInput) (*models.Customer, error) {
	return &models.Customer{}, nil
}
func (stubCustomerService) Update(context.Context, uint, customers.UpdateCustomerInput) (*models.Customer, error) {
	return &models.Customer{}, nil
}
func (stubCustomerService) Delete(context.Context, uint) error { return nil }

type stubUserService struct{}

func (stubUserService) List(context.Context, pagination.Params) (*users.UserPage, error) {
	return &users.UserPage{LastPage: 1}, nil
}
func (stubUserService) Get(context.Context, uint) (*models.User, error) { return &models.User{}, nil }
func (stubUserService) GetByEmail(context.Context, string) (*models.User, error) {
	return &models.User{}, nil
}
func (stubUserService) Create(context.Context, users.CreateUserInput) (*models.User, error) {
	return &models.User{}, nil
}
func (stubUserService) Update(context.Context, uint, users.UpdateUserInput) (*models.User, error) {
	return &models.User{}, nil
}
func (stubUserService) Delete(context.Context, uint) error { return nil }

type stubSalesService struct{}

func (stubSalesService) SellCab(context.Context, activitylog.Actor, sales.SellCabInput) (*sales.SaleResult, error) {
	return &sales.SaleResult{}, nil
}
func (stubSalesService) Get(context.Context, uint) (*models.Sale, error) { return &models.Sale{}, nil }
func (stubSalesService) List(context.Context, pagination.Params) (*sales.SalePage, error) {
	return &sales.SalePage{LastPage: 1}, nil
}
func (stubSalesService) LoadEvents(context.Context) ([]dashboard.SaleEvent, error) { return nil, nil }

type stubDashboardService struct{}

func (stubDashboardService) Summary(context.Context) (*dashboard.Summary, error) {
	return &dashboard.Summary{}, nil
}
func (stubDashboardService) PublishSale(context.Context, dashboard.SaleEvent) {}
func (stubDashboardService) RetractSale(context.Context, dashboard.SaleEvent) {}
func (stubDashboardService) Rehydrate(context.Context) error                  { return nil }

type stubActivityLogService struct{}

func (stubActivityLogService) Record(context.Context, activitylog.RecordInput) error { return nil }
func (stubActivityLogService) List(context.Context, pagination.Params) (*activitylog.Page, error) {
	return &activitylog.Page{LastPage: 1}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080", AllowedOrigins: []string{"http://localhost:3000"}},
		JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", Issuer: "cabstock-test", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:      testRouterConfig(),
		Logger:      logger.New(logger.Options{Output: io.Discard}),
		DB:          stubPinger{},
		Redis:       stubPinger{},
		Sessions:    stubSessionChecker{},
		Auth:        stubAuthService{},
		Cabs:        stubCabService{},
		Accessories: stubAccessoryService{},
		Materials:   stubMaterialService{},
		Customers:   stubCustomerService{},
		Users:       stubUserService{},
		Sales:       stubSalesService{},
		Dashboard:   stubDashboardService{},
		ActivityLog: stubActivityLogService{},
	})
}

func bearerFor(t *testing.T, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testRouterConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   1,
		FullName: "Router Test",
		Role:     role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthRoutesArePublic(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestLoginIsPublic(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"email":"ops@example.com","password":"super-secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/cabs", "/api/v1/customers", "/api/v1/dashboard/summary"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, resp.Code)
		}
	}
}

func TestProtectedRoutesAcceptValidToken(t *testing.T) {
	router := newTestRouter(t)
	bearer := bearerFor(t, enums.UserRoleStaff)

	for _, path := range []string{
		"/api/v1/cabs",
		"/api/v1/accessories",
		"/api/v1/materials/paginated",
		"/api/v1/customers",
		"/api/v1/sales",
		"/api/v1/dashboard/summary",
		"/api/v1/activity-logs",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", bearer)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestUserRoutesAreAdminOnly(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", bearerFor(t, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", bearerFor(t, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestSellCabRouteValidatesBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cabs/1/sell", strings.NewReader(`{"customerId":0,"quantity":0}`))
	req.Header.Set("Authorization", bearerFor(t, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cabs/1/sell", strings.NewReader(`{"customerId":3,"quantity":2}`))
	req.Header.Set("Authorization", bearerFor(t, enums.UserRoleStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}
