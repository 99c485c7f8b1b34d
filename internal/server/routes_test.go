package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"laptophub/internal/config"
	"laptophub/internal/domain/model"
	"laptophub/internal/handler"
	infraRepo "laptophub/internal/infra/repository"
	"laptophub/internal/server"
	"laptophub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// フルスタック（sqlite in-memory）でechoを組み立てる
func setupServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{}, &model.Wishlist{},
	))

	cfg := config.Config{Port: "4000", JWTSecret: "test-secret"}

	userRepo := infraRepo.NewUserGormRepository(db)
	laptopRepo := infraRepo.NewLaptopGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(db)
	wishlistRepo := infraRepo.NewWishlistGormRepository(db)
	txManager := infraRepo.NewTxManagerGorm(db)

	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	laptopUC := usecase.NewLaptopUsecase(laptopRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, laptopRepo, userRepo, nil)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, laptopRepo)
	userUC := usecase.NewUserUsecase(userRepo)

	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Laptop:   handler.NewLaptopHandler(laptopUC),
		Order:    handler.NewOrderHandler(orderUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
		User:     handler.NewUserHandler(userUC, authUC),
	}

	return server.New(cfg, h), db
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestServer_Health(t *testing.T) {
	e, _ := setupServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Server is running", env.Message)
}

func TestServer_UnknownRoute(t *testing.T) {
	e, _ := setupServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

// カタログは認証なしで読める
func TestServer_PublicLaptops(t *testing.T) {
	e, db := setupServer(t)

	require.NoError(t, db.Create(&model.Laptop{
		Name: "Lenovo IdeaPad 3", Brand: "Lenovo", Price: 45000, OriginalPrice: 55000,
		Image: "img.jpg", Processor: "cpu", RAM: "8GB", Storage: "256GB SSD",
		Display: "15.6\" FHD", OS: "Windows 11", InStock: true,
	}).Error)

	rec, env := doJSON(t, e, http.MethodGet, "/api/laptops", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var laptops []model.Laptop
	require.NoError(t, json.Unmarshal(env.Data, &laptops))
	assert.Len(t, laptops, 1)
}

// 注文はtoken必須
func TestServer_OrdersRequireToken(t *testing.T) {
	e, _ := setupServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Access token required", env.Message)
}

// 登録→ログイン→注文まで通す
func TestServer_RegisterLoginAndOrder(t *testing.T) {
	e, db := setupServer(t)

	require.NoError(t, db.Create(&model.Laptop{
		ID: 1, Name: "Lenovo IdeaPad 3", Brand: "Lenovo", Price: 45000, OriginalPrice: 55000,
		Image: "img.jpg", Processor: "cpu", RAM: "8GB", Storage: "256GB SSD",
		Display: "15.6\" FHD", OS: "Windows 11", InStock: true,
	}).Error)

	rec, env := doJSON(t, e, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Test User", "email": "test@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	rec, env = doJSON(t, e, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "test@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var auth struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)

	rec, env = doJSON(t, e, http.MethodPost, "/api/orders", map[string]interface{}{
		"id":              "ORD-1700000000001",
		"userName":        "Test User",
		"userEmail":       "test@example.com",
		"phoneNumber":     "9800000000",
		"deliveryAddress": "Kathmandu",
		"paymentMethod":   "cod",
		"totalAmount":     90000,
		"items": []map[string]interface{}{
			{"laptopId": 1, "laptopName": "Lenovo IdeaPad 3", "laptopImage": "img.jpg", "quantity": 2, "price": 45000},
		},
	}, auth.Token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Order created successfully", env.Message)

	var order struct {
		ID          string `json:"id"`
		TotalAmount int64  `json:"totalAmount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "ORD-1700000000001", order.ID)
	assert.Equal(t, int64(90000), order.TotalAmount)

	//一般ユーザーは管理者一覧に入れない
	rec, env = doJSON(t, e, http.MethodGet, "/api/orders", nil, auth.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", env.Message)
}
