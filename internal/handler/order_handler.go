package handler

import (
	"net/http"
	"strconv"
	"time"

	"laptophub/internal/config"
	"laptophub/internal/middleware"
	"laptophub/internal/usecase"
	"laptophub/internal/validator"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	LaptopID    int64  `json:"laptopId" validate:"required,min=1"`
	LaptopName  string `json:"laptopName" validate:"required"`
	LaptopImage string `json:"laptopImage"`
	Quantity    int64  `json:"quantity" validate:"required,min=1"`
	Price       int64  `json:"price" validate:"min=0"`
}

type OrderCreateRequest struct {
	ID                string             `json:"id"`
	UserID            int64              `json:"userId"`
	UserName          string             `json:"userName" validate:"required"`
	UserEmail         string             `json:"userEmail" validate:"required,email"`
	PhoneNumber       string             `json:"phoneNumber" validate:"required"`
	DeliveryAddress   string             `json:"deliveryAddress" validate:"required"`
	PaymentMethod     string             `json:"paymentMethod" validate:"required,oneof=cod online"`
	AdditionalNotes   string             `json:"additionalNotes"`
	TotalAmount       int64              `json:"totalAmount" validate:"required,min=1"`
	Status            string             `json:"status"`
	OrderDate         string             `json:"orderDate"`
	EstimatedDelivery string             `json:"estimatedDelivery"`
	Items             []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RequireAuth())

	//ユーザールート
	g.POST("", h.create)
	g.GET("/user/:userId", h.listByUser)

	//管理者ルート（/pendingは/:idより先に解決される）
	g.GET("", h.adminList, middleware.AdminGuard())
	g.GET("/pending", h.adminListPending, middleware.AdminGuard())
	g.PUT("/:id/status", h.adminUpdateStatus, middleware.AdminGuard())
	g.DELETE("/:id", h.adminDelete, middleware.AdminGuard())

	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Authentication required"})
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	}
	if err := validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: validator.Message(err)})
	}

	orderDate, ok := parseOrderDate(req.OrderDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid orderDate"})
	}
	estimatedDelivery, ok := parseOrderDate(req.EstimatedDelivery)
	if !ok {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid estimatedDelivery"})
	}

	items := make([]usecase.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CartLine{
			LaptopID:    it.LaptopID,
			LaptopName:  it.LaptopName,
			LaptopImage: it.LaptopImage,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	out, err := h.uc.Place(c.Request().Context(), userID, usecase.PlaceOrderInput{
		ID:                req.ID,
		UserID:            req.UserID,
		UserName:          req.UserName,
		UserEmail:         req.UserEmail,
		PhoneNumber:       req.PhoneNumber,
		DeliveryAddress:   req.DeliveryAddress,
		PaymentMethod:     req.PaymentMethod,
		AdditionalNotes:   req.AdditionalNotes,
		TotalAmount:       req.TotalAmount,
		Status:            req.Status,
		OrderDate:         orderDate,
		EstimatedDelivery: estimatedDelivery,
		Items:             items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respondDataMessage(c, http.StatusCreated, out, "Order created successfully")
}

func (h *OrderHandler) listByUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid user id"})
	}

	out, err := h.uc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *OrderHandler) adminList(c echo.Context) error {
	out, err := h.uc.AdminListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *OrderHandler) adminListPending(c echo.Context) error {
	out, err := h.uc.AdminListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *OrderHandler) adminUpdateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	}
	if err := validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: validator.Message(err)})
	}

	out, err := h.uc.AdminUpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return respondDataMessage(c, http.StatusOK, out, "Order status updated successfully")
}

func (h *OrderHandler) adminDelete(c echo.Context) error {
	if err := h.uc.AdminDelete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Order deleted successfully")
}

// 日付は "2006-01-02" か RFC3339 を受け付ける。空ならゼロ値（usecaseがデフォルトを入れる）。
func parseOrderDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}
