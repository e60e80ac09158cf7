package handler

import (
	"net/http"
	"strconv"

	"mestej/internal/config"
	"mestej/internal/middleware"
	"mestej/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ダッシュボードの集計と操作ログの閲覧API。
type AdminDashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewAdminDashboardHandler(uc *usecase.DashboardUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{uc: uc}
}

func (h *AdminDashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/dashboard", h.stats)
	admin.GET("/activity", h.activity)
}

func (h *AdminDashboardHandler) stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminDashboardHandler) activity(c echo.Context) error {
	q := usecase.ActivityLogQuery{
		AdminID:      c.QueryParam("admin_id"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
	}

	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		q.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		q.Offset = o
	}

	out, err := h.uc.ListActivity(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
