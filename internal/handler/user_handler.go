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

type UserHandler struct {
	uc     *usecase.UserUsecase
	authUC *usecase.AuthUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase, authUC *usecase.AuthUsecase) *UserHandler {
	return &UserHandler{uc: uc, authUC: authUC}
}

type UpdateProfileRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Address         *string `json:"address"`
	PhoneNumber     *string `json:"phoneNumber"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

func (h *UserHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/users")

	//公開：会員登録（tokenは発行しない）
	g.POST("", h.create)

	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.RequireAuth(),
	}
	g.GET("/profile", h.profile, auth...)
	g.PUT("/profile", h.updateProfile, auth...)

	admin := append(append([]echo.MiddlewareFunc{}, auth...), middleware.AdminGuard())
	g.GET("", h.adminList, admin...)
	g.GET("/:id", h.adminDetail, admin...)
	g.PUT("/:id", h.adminUpdate, admin...)
	g.DELETE("/:id", h.adminDelete, admin...)
}

func (h *UserHandler) create(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	}
	if err := validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Name, email, and password are required"})
	}

	out, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return writeError(c, err)
	}

	//こちらの登録口はtokenを返さない
	return respondDataMessage(c, http.StatusCreated, out.User, "User created successfully")
}

func (h *UserHandler) profile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Authentication required"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *UserHandler) updateProfile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Authentication required"})
	}

	return h.update(c, userID)
}

func (h *UserHandler) adminList(c echo.Context) error {
	out, err := h.uc.AdminList(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *UserHandler) adminDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid user id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *UserHandler) adminUpdate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid user id"})
	}

	return h.update(c, id)
}

func (h *UserHandler) update(c echo.Context, userID int64) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		Address:         req.Address,
		PhoneNumber:     req.PhoneNumber,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondDataMessage(c, http.StatusOK, out, "Profile updated successfully")
}

func (h *UserHandler) adminDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid user id"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return respondMessage(c, http.StatusOK, "User deleted successfully")
}
