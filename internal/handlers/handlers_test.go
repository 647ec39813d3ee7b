package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeRevoker struct {
	revoked map[string]bool
}

func (f *fakeRevoker) IsRevoked(token string) (bool, error) {
	return f.revoked[token], nil
}

func (f *fakeRevoker) Revoke(token string, ttl time.Duration) error {
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[token] = true
	return nil
}

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	cartItemRepo := repository.NewCartItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(itemRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, cartItemRepo, itemRepo)
	checkoutService := services.NewCheckoutService(db, cartRepo)
	orderService := services.NewOrderService(orderRepo)

	tokens := auth.NewTokenManager("test-secret", time.Hour, time.Hour)
	revoker := &fakeRevoker{}

	authHandler := NewAuthHandler(userService, orderService, tokens, revoker, time.Hour)
	catalogHandler := NewCatalogHandler(catalogService)
	cartHandler := NewCartHandler(cartService)
	orderHandler := NewOrderHandler(checkoutService, orderService)

	router := gin.New()
	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/logout", authHandler.Logout)
	router.GET("/items", catalogHandler.ListItems)
	router.GET("/items/:item_id", catalogHandler.GetItem)

	cart := router.Group("/cart", auth.Resolve(tokens, revoker))
	{
		cart.GET("", cartHandler.ViewCart)
		cart.POST("/items/:item_id", cartHandler.AddItem)
		cart.PUT("/items/:item_id", cartHandler.UpdateItem)
		cart.DELETE("/items/:item_id", cartHandler.RemoveItem)
	}

	user := router.Group("/", auth.Resolve(tokens, revoker), auth.RequireUser())
	{
		user.POST("/checkout", orderHandler.Checkout)
		user.GET("/orders", orderHandler.ListOrders)
		user.GET("/orders/:order_id", orderHandler.GetOrder)
		user.GET("/profile", authHandler.Profile)
	}

	return &testApp{db: db, router: router, tokens: tokens}
}

func (a *testApp) seedItem(t *testing.T, name, price string) *models.Item {
	t.Helper()
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	item := &models.Item{Name: name, Price: p}
	if err := a.db.Create(item).Error; err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return item
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func (a *testApp) signupAndLogin(t *testing.T, username string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "secret",
		"confirm_password": "secret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", w.Code, w.Body.String())
	}

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"username": username,
		"password": "secret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}
