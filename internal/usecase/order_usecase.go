package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"laptophub/internal/domain/model"
	repo "laptophub/internal/repository"
	"laptophub/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	laptops    repo.LaptopRepository
	users      repo.UserRepository
	mq         *rabbitmq.Client // nilなら発行しない
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	laptops repo.LaptopRepository,
	users repo.UserRepository,
	mq *rabbitmq.Client,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		orderItems: orderItems,
		laptops:    laptops,
		users:      users,
		mq:         mq,
	}
}

// カート1行分
type CartLine struct {
	LaptopID    int64
	LaptopName  string
	LaptopImage string
	Quantity    int64
	Price       int64
}

type PlaceOrderInput struct {
	ID                string
	UserID            int64 // 0ならprincipalのIDを使う
	UserName          string
	UserEmail         string
	PhoneNumber       string
	DeliveryAddress   string
	PaymentMethod     string
	AdditionalNotes   string
	TotalAmount       int64
	Status            string
	OrderDate         time.Time
	EstimatedDelivery time.Time
	Items             []CartLine
}

type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderItemOutput struct {
	model.OrderItem
	//明細の現在のカタログ参照。削除済みならnull。
	Laptop *model.Laptop `json:"laptop,omitempty"`
}

type OrderOutput struct {
	model.Order
	Items []OrderItemOutput `json:"items"`
	User  *UserSummary      `json:"user,omitempty"`
}

// 注文作成。ヘッダ1行＋明細N行を1トランザクションで書く。
// どれか1つでも失敗したら全部ロールバックして部分注文は残さない。
func (u *OrderUsecase) Place(ctx context.Context, principalID int64, in PlaceOrderInput) (OrderOutput, error) {
	if principalID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Order must contain at least one item")
	}

	var total int64 = 0
	for _, line := range in.Items {
		if line.LaptopID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid laptop id")
		}
		if line.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1")
		}
		if line.Price < 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Price must be >= 0")
		}
		total += line.Price * line.Quantity
	}

	//合計はサーバー側で検算する
	if in.TotalAmount != total {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Total amount does not match order items")
	}

	switch model.PaymentMethod(in.PaymentMethod) {
	case model.PaymentMethodCOD, model.PaymentMethodOnline:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid payment method")
	}

	if strings.TrimSpace(in.UserName) == "" || strings.TrimSpace(in.UserEmail) == "" ||
		strings.TrimSpace(in.PhoneNumber) == "" || strings.TrimSpace(in.DeliveryAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Delivery details are required")
	}

	status := model.OrderStatusPending
	if in.Status != "" {
		s, ok := parseOrderStatus(in.Status)
		if !ok {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid order status")
		}
		status = s
	}

	//IDはクライアント採番。無ければサーバーで採番する。
	orderID := strings.TrimSpace(in.ID)
	if orderID == "" {
		orderID = uuid.NewString()
	}

	userID := in.UserID
	if userID <= 0 {
		userID = principalID
	}

	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	estimatedDelivery := in.EstimatedDelivery
	if estimatedDelivery.IsZero() {
		estimatedDelivery = orderDate.Add(7 * 24 * time.Hour)
	}

	order := model.Order{
		ID:                orderID,
		UserID:            userID,
		UserName:          in.UserName,
		UserEmail:         in.UserEmail,
		PhoneNumber:       in.PhoneNumber,
		DeliveryAddress:   in.DeliveryAddress,
		PaymentMethod:     model.PaymentMethod(in.PaymentMethod),
		AdditionalNotes:   in.AdditionalNotes,
		TotalAmount:       total,
		Status:            status,
		EstimatedDelivery: estimatedDelivery,
		OrderDate:         orderDate,
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		items = append(items, model.OrderItem{
			LaptopID:    line.LaptopID,
			LaptopName:  line.LaptopName,
			LaptopImage: line.LaptopImage,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}

	//注文処理はトランザクション（全部成功か全部無し）
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ID衝突もここでinsert失敗になる。リトライはしない。
		if err := r.Orders().Create(ctx, order); err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("error creating order")
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "Error creating order")
	}

	//コミット後に明細と現在のカタログ参照を取り直して返す
	out, err := u.compose(ctx, orderID, false)
	if err != nil {
		return OrderOutput{}, err
	}

	//イベント発行は失敗してもレスポンスに影響させない
	if pubErr := u.mq.PublishOrderCreated(rabbitmq.OrderCreatedEvent{
		OrderID:     orderID,
		UserID:      userID,
		TotalAmount: total,
		ItemCount:   len(items),
		OrderDate:   orderDate,
	}); pubErr != nil {
		log.Warn().Err(pubErr).Str("order_id", orderID).Msg("failed to publish order created event")
	}

	return out, nil
}

func (u *OrderUsecase) GetByID(ctx context.Context, orderID string) (OrderOutput, error) {
	if strings.TrimSpace(orderID) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid order id")
	}
	return u.compose(ctx, orderID, true)
}

func (u *OrderUsecase) ListByUser(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid user id")
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error fetching user orders")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching user orders")
	}
	return u.composeAll(ctx, orders, false)
}

func (u *OrderUsecase) AdminListAll(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error fetching orders")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching orders")
	}
	return u.composeAll(ctx, orders, true)
}

func (u *OrderUsecase) AdminListPending(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orders.ListByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		log.Error().Err(err).Msg("error fetching pending orders")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching pending orders")
	}
	return u.composeAll(ctx, orders, true)
}

// ステータス更新。5値のどれでも無条件で上書き。履歴は残さない。
func (u *OrderUsecase) AdminUpdateStatus(ctx context.Context, orderID string, rawStatus string) (model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid order id")
	}

	status, ok := parseOrderStatus(rawStatus)
	if !ok {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid order status")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("error fetching order")
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "Error updating order status")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if err == repo.ErrNotFound {
			return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
		}
		log.Error().Err(err).Str("order_id", orderID).Msg("error updating order status")
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "Error updating order status")
	}

	if pubErr := u.mq.PublishOrderStatusUpdated(rabbitmq.OrderStatusUpdatedEvent{
		OrderID:   orderID,
		OldStatus: string(o.Status),
		NewStatus: string(status),
	}); pubErr != nil {
		log.Warn().Err(pubErr).Str("order_id", orderID).Msg("failed to publish status event")
	}

	o.Status = status
	return o, nil
}

// 注文削除。明細→ヘッダの順で同じトランザクション内で消す。
func (u *OrderUsecase) AdminDelete(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "Invalid order id")
	}

	if _, err := u.orders.FindByID(ctx, orderID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		log.Error().Err(err).Str("order_id", orderID).Msg("error fetching order")
		return NewHTTPError(http.StatusInternalServerError, "Error deleting order")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return err
		}
		return r.Orders().Delete(ctx, orderID)
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("error deleting order")
		return NewHTTPError(http.StatusInternalServerError, "Error deleting order")
	}
	return nil
}

// ヘッダ＋明細＋明細ごとの現在のlaptop参照を明示クエリで組み立てる
func (u *OrderUsecase) compose(ctx context.Context, orderID string, withUser bool) (OrderOutput, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("error fetching order")
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "Error fetching order")
	}
	return u.composeOne(ctx, o, withUser)
}

func (u *OrderUsecase) composeOne(ctx context.Context, o model.Order, withUser bool) (OrderOutput, error) {
	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("error fetching order items")
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "Error fetching order")
	}

	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		var laptop *model.Laptop
		l, err := u.laptops.FindByID(ctx, it.LaptopID)
		if err == nil {
			laptop = &l
		} else if err != repo.ErrNotFound {
			log.Error().Err(err).Int64("laptop_id", it.LaptopID).Msg("error fetching laptop for order item")
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "Error fetching order")
		}
		outItems = append(outItems, OrderItemOutput{OrderItem: it, Laptop: laptop})
	}

	out := OrderOutput{Order: o, Items: outItems}

	if withUser {
		user, err := u.users.FindByID(ctx, o.UserID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", o.UserID).Msg("error fetching order user")
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "Error fetching order")
		}
		if user != nil {
			out.User = &UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		}
	}

	return out, nil
}

func (u *OrderUsecase) composeAll(ctx context.Context, orders []model.Order, withUser bool) ([]OrderOutput, error) {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out, err := u.composeOne(ctx, o, withUser)
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func parseOrderStatus(s string) (model.OrderStatus, bool) {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		return model.OrderStatus(s), true
	default:
		return "", false
	}
}
