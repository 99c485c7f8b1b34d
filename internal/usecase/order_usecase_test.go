package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"laptophub/internal/domain/model"
	infraRepo "laptophub/internal/infra/repository"
	"laptophub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// =====================
// sqlite（in-memory）セットアップ
// =====================

func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	//テストごとに独立したin-memory DB
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models...))
	return db
}

func newOrderUsecase(db *gorm.DB) *usecase.OrderUsecase {
	return usecase.NewOrderUsecase(
		infraRepo.NewTxManagerGorm(db),
		infraRepo.NewOrderGormRepository(db),
		infraRepo.NewOrderItemGormRepository(db),
		infraRepo.NewLaptopGormRepository(db),
		infraRepo.NewUserGormRepository(db),
		nil, // イベント発行なし
	)
}

func seedLaptop(t *testing.T, db *gorm.DB, id int64, name string, price int64) {
	t.Helper()
	l := model.Laptop{
		ID: id, Name: name, Brand: "TestBrand", Price: price, OriginalPrice: price,
		Image: "img.jpg", Processor: "cpu", RAM: "8GB", Storage: "256GB SSD",
		Display: "15.6\" FHD", OS: "Windows 11", InStock: true,
	}
	require.NoError(t, db.Create(&l).Error)
}

func validPlaceInput() usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		ID:              "ORD-1700000000001",
		UserName:        "Test User",
		UserEmail:       "test@example.com",
		PhoneNumber:     "9800000000",
		DeliveryAddress: "Kathmandu",
		PaymentMethod:   "cod",
		TotalAmount:     148000,
		Items: []usecase.CartLine{
			{LaptopID: 1, LaptopName: "Lenovo IdeaPad 3", LaptopImage: "a.jpg", Quantity: 2, Price: 45000},
			{LaptopID: 4, LaptopName: "ASUS VivoBook S15", LaptopImage: "b.jpg", Quantity: 1, Price: 58000},
		},
	}
}

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, message, he.Message)
}

// =====================
// Place
// =====================

// 正常系：ヘッダ1行＋明細2行、合計148000
func TestOrderUsecase_Place_Success(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	seedLaptop(t, db, 1, "Lenovo IdeaPad 3", 45000)
	seedLaptop(t, db, 4, "ASUS VivoBook S15", 58000)

	out, err := uc.Place(ctx, 7, validPlaceInput())
	require.NoError(t, err)

	assert.Equal(t, "ORD-1700000000001", out.ID)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, int64(148000), out.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, out.Status)
	assert.False(t, out.OrderDate.IsZero())
	//到着予定は注文日の7日後
	assert.Equal(t, out.OrderDate.Add(7*24*time.Hour), out.EstimatedDelivery)

	require.Len(t, out.Items, 2)
	assert.Equal(t, "Lenovo IdeaPad 3", out.Items[0].LaptopName)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, int64(45000), out.Items[0].Price)
	//明細は現在のカタログ参照も持つ
	require.NotNil(t, out.Items[1].Laptop)
	assert.Equal(t, int64(4), out.Items[1].Laptop.ID)

	//DBにも残っている
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(2), itemCount)
}

// IDを省略したらサーバーで採番する
func TestOrderUsecase_Place_GeneratesID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	seedLaptop(t, db, 1, "Lenovo IdeaPad 3", 45000)
	seedLaptop(t, db, 4, "ASUS VivoBook S15", 58000)

	in := validPlaceInput()
	in.ID = ""
	out, err := uc.Place(ctx, 7, in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
}

// 合計が明細と合わない => 400
func TestOrderUsecase_Place_TotalMismatch(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	in := validPlaceInput()
	in.TotalAmount = 150000

	_, err := uc.Place(ctx, 7, in)
	assertHTTPError(t, err, http.StatusBadRequest, "Total amount does not match order items")

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)
}

// 明細なし => 400
func TestOrderUsecase_Place_NoItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	in := validPlaceInput()
	in.Items = nil

	_, err := uc.Place(ctx, 7, in)
	assertHTTPError(t, err, http.StatusBadRequest, "Order must contain at least one item")
}

// 数量0 => 400
func TestOrderUsecase_Place_ZeroQuantity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	in := validPlaceInput()
	in.Items[0].Quantity = 0

	_, err := uc.Place(ctx, 7, in)
	assertHTTPError(t, err, http.StatusBadRequest, "Quantity must be at least 1")
}

// 支払い方法が不正 => 400
func TestOrderUsecase_Place_InvalidPaymentMethod(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	in := validPlaceInput()
	in.PaymentMethod = "bitcoin"

	_, err := uc.Place(ctx, 7, in)
	assertHTTPError(t, err, http.StatusBadRequest, "Invalid payment method")
}

// 明細insertが失敗したらヘッダもロールバックされる（部分注文は残らない）
func TestOrderUsecase_Place_RollbackOnItemFailure(t *testing.T) {
	ctx := context.Background()
	//order_itemsテーブルを作らないことで明細insertを確実に失敗させる
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{})
	uc := newOrderUsecase(db)

	_, err := uc.Place(ctx, 7, validPlaceInput())
	assertHTTPError(t, err, http.StatusInternalServerError, "Error creating order")

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)
}

// ID衝突：2回目は失敗し、1回目の注文は無傷のまま
func TestOrderUsecase_Place_DuplicateID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	seedLaptop(t, db, 1, "Lenovo IdeaPad 3", 45000)
	seedLaptop(t, db, 4, "ASUS VivoBook S15", 58000)

	_, err := uc.Place(ctx, 7, validPlaceInput())
	require.NoError(t, err)

	_, err = uc.Place(ctx, 7, validPlaceInput())
	assertHTTPError(t, err, http.StatusInternalServerError, "Error creating order")

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(2), itemCount)
}

// =====================
// GetByID / ListByUser
// =====================

func TestOrderUsecase_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	_, err := uc.GetByID(ctx, "ORD-missing")
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")
}

func TestOrderUsecase_ListByUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	seedLaptop(t, db, 1, "Lenovo IdeaPad 3", 45000)
	seedLaptop(t, db, 4, "ASUS VivoBook S15", 58000)

	_, err := uc.Place(ctx, 7, validPlaceInput())
	require.NoError(t, err)

	mine, err := uc.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := uc.ListByUser(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, others, 0)
}

// =====================
// AdminUpdateStatus / AdminDelete
// =====================

func TestOrderUsecase_AdminUpdateStatus_Success(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	seedLaptop(t, db, 1, "Lenovo IdeaPad 3", 45000)
	seedLaptop(t, db, 4, "ASUS VivoBook S15", 58000)

	placed, err := uc.Place(ctx, 7, validPlaceInput())
	require.NoError(t, err)

	updated, err := uc.AdminUpdateStatus(ctx, placed.ID, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	//DBにも反映されている
	got, err := uc.GetByID(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, got.Status)

	//Pending一覧からは消える
	pending, err := uc.AdminListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 0)
}

// 5値どれでも受け付けて、最後の書き込みだけが残る
func TestOrderUsecase_AdminUpdateStatus_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	seedLaptop(t, db, 1, "Lenovo IdeaPad 3", 45000)
	seedLaptop(t, db, 4, "ASUS VivoBook S15", 58000)

	placed, err := uc.Place(ctx, 7, validPlaceInput())
	require.NoError(t, err)

	for _, s := range []string{"Processing", "Shipped", "Delivered", "Cancelled", "Pending"} {
		_, err := uc.AdminUpdateStatus(ctx, placed.ID, s)
		require.NoError(t, err)
	}

	got, err := uc.GetByID(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)
}

func TestOrderUsecase_AdminUpdateStatus_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	_, err := uc.AdminUpdateStatus(ctx, "ORD-x", "OnTheMoon")
	assertHTTPError(t, err, http.StatusBadRequest, "Invalid order status")
}

func TestOrderUsecase_AdminUpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	_, err := uc.AdminUpdateStatus(ctx, "ORD-missing", "Shipped")
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")
}

func TestOrderUsecase_AdminDelete_RemovesHeaderAndItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	seedLaptop(t, db, 1, "Lenovo IdeaPad 3", 45000)
	seedLaptop(t, db, 4, "ASUS VivoBook S15", 58000)

	placed, err := uc.Place(ctx, 7, validPlaceInput())
	require.NoError(t, err)

	require.NoError(t, uc.AdminDelete(ctx, placed.ID))

	_, err = uc.GetByID(ctx, placed.ID)
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}

func TestOrderUsecase_AdminDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.User{}, &model.Laptop{}, &model.Order{}, &model.OrderItem{})
	uc := newOrderUsecase(db)

	err := uc.AdminDelete(ctx, "ORD-missing")
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")
}
