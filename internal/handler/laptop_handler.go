package handler

import (
	"net/http"
	"strconv"

	"laptophub/internal/config"
	"laptophub/internal/middleware"
	"laptophub/internal/usecase"
	"laptophub/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// 全エンドポイント共通のレスポンス封筒
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

func respondDataMessage(c echo.Context, status int, data interface{}, msg string) error {
	return c.JSON(status, Response{Success: true, Data: data, Message: msg})
}

func respondMessage(c echo.Context, status int, msg string) error {
	return c.JSON(status, Response{Success: true, Message: msg})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, Response{Success: false, Message: he.Message})
	}

	//想定外は詳細を隠して500
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Something went wrong!"})
}

// /laptops のカタログAPI
type LaptopHandler struct {
	uc *usecase.LaptopUsecase
}

// DI
func NewLaptopHandler(uc *usecase.LaptopUsecase) *LaptopHandler {
	return &LaptopHandler{uc: uc}
}

type LaptopRequest struct {
	Name          string  `json:"name" validate:"required"`
	Brand         string  `json:"brand" validate:"required"`
	Price         int64   `json:"price" validate:"min=0"`
	OriginalPrice int64   `json:"originalPrice" validate:"min=0"`
	Image         string  `json:"image"`
	Description   string  `json:"description"`
	Processor     string  `json:"processor"`
	RAM           string  `json:"ram"`
	Storage       string  `json:"storage"`
	Display       string  `json:"display"`
	OS            string  `json:"os"`
	InStock       bool    `json:"inStock"`
	IsNew         bool    `json:"isNew"`
	Rating        float64 `json:"rating"`
	Reviews       int64   `json:"reviews"`
}

func (h *LaptopHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/laptops")

	//公開ルート
	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/:id", h.detail)

	//管理者ルート
	admin := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.RequireAuth(),
		middleware.AdminGuard(),
	}
	g.POST("", h.create, admin...)
	g.PUT("/:id", h.update, admin...)
	g.DELETE("/:id", h.delete, admin...)
}

func (h *LaptopHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *LaptopHandler) search(c echo.Context) error {
	out, err := h.uc.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *LaptopHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid laptop id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

func (h *LaptopHandler) create(c echo.Context) error {
	var req LaptopRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	}
	if err := validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: validator.Message(err)})
	}

	out, err := h.uc.AdminCreate(c.Request().Context(), laptopInputFromRequest(req))
	if err != nil {
		return writeError(c, err)
	}
	return respondDataMessage(c, http.StatusCreated, out, "Laptop created successfully")
}

func (h *LaptopHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid laptop id"})
	}

	var req LaptopRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	}
	if err := validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: validator.Message(err)})
	}

	out, err := h.uc.AdminUpdate(c.Request().Context(), id, laptopInputFromRequest(req))
	if err != nil {
		return writeError(c, err)
	}
	return respondDataMessage(c, http.StatusOK, out, "Laptop updated successfully")
}

func (h *LaptopHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid laptop id"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Laptop deleted successfully")
}

func laptopInputFromRequest(req LaptopRequest) usecase.LaptopInput {
	return usecase.LaptopInput{
		Name:          req.Name,
		Brand:         req.Brand,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Description:   req.Description,
		Processor:     req.Processor,
		RAM:           req.RAM,
		Storage:       req.Storage,
		Display:       req.Display,
		OS:            req.OS,
		InStock:       req.InStock,
		IsNew:         req.IsNew,
		Rating:        req.Rating,
		Reviews:       req.Reviews,
	}
}
