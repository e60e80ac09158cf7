package handler

import (
	"net/http"
	"strconv"

	"mestej/internal/config"
	"mestej/internal/middleware"
	"mestej/internal/repository"
	"mestej/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文の発送・キャンセルを行う管理API。
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders/:id", h.detail)
	admin.PUT("/orders/:id/fulfill", h.fulfill)
	admin.PUT("/orders/:id/cancel", h.cancel)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		offset = o
	}

	status := c.QueryParam("status")

	var userID *string
	if v := c.QueryParam("user_id"); v != "" {
		userID = &v
	}

	out, err := h.uc.List(c.Request().Context(), repository.AdminOrderListFilter{
		Status: status,
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetDetail(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) fulfill(c echo.Context) error {
	adminID, orderID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	if err := h.uc.FulfillOrder(c.Request().Context(), adminID, orderID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "fulfilled"})
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	adminID, orderID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.CancelOrder(c.Request().Context(), adminID, orderID, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "cancelled"})
}
