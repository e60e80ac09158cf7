package handler

import (
	"net/http"

	"mestej/internal/cart"
	"mestej/internal/config"
	"mestej/internal/middleware"
	"mestej/internal/repository"
	"mestej/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 会員の注文API。承認済み（approved）ユーザーだけが注文できる。
type OrderHandler struct {
	uc        *usecase.OrderUsecase
	cartStore cart.Store
}

func NewOrderHandler(uc *usecase.OrderUsecase, cartStore cart.Store) *OrderHandler {
	return &OrderHandler{uc: uc, cartStore: cartStore}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ApprovedUserGuard(userRepo))

	g.POST("", h.checkout)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

type checkoutRequest struct {
	DeliveryAddr usecase.DeliveryAddress `json:"delivery_address"`
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//カートの中身を注文に変換する
	token := c.Request().Header.Get(cartTokenHeader)
	if token == "" {
		if ck, err := c.Cookie(cartTokenCookie); err == nil {
			token = ck.Value
		}
	}
	if token == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cart is empty"})
	}

	m := cart.NewManager(h.cartStore, token, c.Logger())
	m.Load(c.Request().Context())

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		Items:        m.Items(),
		DeliveryAddr: req.DeliveryAddr,
	})
	if err != nil {
		return writeError(c, err)
	}

	//注文成功後にカートを空にする
	m.Clear(c.Request().Context())

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
