package handler

import (
	"net/http"
	"strconv"

	"mestej/internal/config"
	"mestej/internal/middleware"
	"mestej/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 会員の承認・拒否・ブロックを行う管理API。
type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/users", h.list)
	admin.PUT("/users/:id/approve", h.approve)
	admin.PUT("/users/:id/reject", h.reject)
	admin.PUT("/users/:id/block", h.block)
	admin.PUT("/users/:id/unblock", h.unblock)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	status := c.QueryParam("status")

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

	out, err := h.uc.List(c.Request().Context(), status, limit, offset)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) approve(c echo.Context) error {
	adminID, userID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	if err := h.uc.ApproveUser(c.Request().Context(), adminID, userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "approved"})
}

func (h *AdminUserHandler) reject(c echo.Context) error {
	adminID, userID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.RejectUser(c.Request().Context(), adminID, userID, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "rejected"})
}

func (h *AdminUserHandler) block(c echo.Context) error {
	adminID, userID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.BlockUser(c.Request().Context(), adminID, userID, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "blocked"})
}

func (h *AdminUserHandler) unblock(c echo.Context) error {
	adminID, userID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	if err := h.uc.UnblockUser(c.Request().Context(), adminID, userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "unblocked"})
}

// 操作した管理者IDと対象IDを取り出す。
func ids(c echo.Context) (adminID string, targetID string, ok bool) {
	adminID, ok = getUserIDFromContext(c)
	if !ok {
		return "", "", false
	}

	targetID = c.Param("id")
	if targetID == "" {
		return "", "", false
	}
	return adminID, targetID, true
}

func writeIDError(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
}
