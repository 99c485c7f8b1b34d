package handler

import (
	"net/http"
	"strconv"

	"laptophub/internal/config"
	"laptophub/internal/middleware"
	"laptophub/internal/usecase"
	"laptophub/internal/validator"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

// DI
func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

type WishlistAddRequest struct {
	UserID   int64 `json:"userId" validate:"required,min=1"`
	LaptopID int64 `json:"laptopId" validate:"required,min=1"`
}

func (h *WishlistHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	//全ルート認証必須
	g := api.Group("/wishlist")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RequireAuth())

	g.GET("/user/:userId", h.listByUser)
	g.POST("", h.add)
	g.DELETE("/:userId/:laptopId", h.remove)
	g.GET("/check/:userId/:laptopId", h.check)
}

func (h *WishlistHandler) listByUser(c echo.Context) error {
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

func (h *WishlistHandler) add(c echo.Context) error {
	var req WishlistAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	}
	if err := validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: validator.Message(err)})
	}

	out, err := h.uc.Add(c.Request().Context(), req.UserID, req.LaptopID)
	if err != nil {
		return writeError(c, err)
	}
	return respondDataMessage(c, http.StatusCreated, out, "Item added to wishlist successfully")
}

func (h *WishlistHandler) remove(c echo.Context) error {
	userID, laptopID, ok := parseWishlistParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid user or laptop id"})
	}

	if err := h.uc.Remove(c.Request().Context(), userID, laptopID); err != nil {
		return writeError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Item removed from wishlist successfully")
}

func (h *WishlistHandler) check(c echo.Context) error {
	userID, laptopID, ok := parseWishlistParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid user or laptop id"})
	}

	out, err := h.uc.Check(c.Request().Context(), userID, laptopID)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func parseWishlistParams(c echo.Context) (int64, int64, bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	laptopID, err := strconv.ParseInt(c.Param("laptopId"), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return userID, laptopID, true
}
