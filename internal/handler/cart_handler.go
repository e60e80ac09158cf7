package handler

import (
	"net/http"

	"mestej/internal/cart"
	"mestej/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	cartTokenCookie = "cart_token"
	cartTokenHeader = "X-Cart-Token"
)

// カートAPI。ログイン不要で、cart_token（cookieまたはヘッダ）で
// カートを識別する。中身はRedisに保存され、ブラウザを閉じても残る。
type CartHandler struct {
	store     cart.Store
	productUC *usecase.ProductUsecase
}

func NewCartHandler(store cart.Store, productUC *usecase.ProductUsecase) *CartHandler {
	return &CartHandler{store: store, productUC: productUC}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cart", h.get)
	e.POST("/cart/items", h.addItem)
	e.PUT("/cart/items/:product_id", h.updateQuantity)
	e.DELETE("/cart/items/:product_id", h.removeItem)
	e.DELETE("/cart", h.clear)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type cartResponse struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int64           `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Currency   string          `json:"currency"`
}

func (h *CartHandler) get(c echo.Context) error {
	m, _ := h.loadCart(c)
	return c.JSON(http.StatusOK, toCartResponse(m))
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product_id and positive quantity required"})
	}

	//追加時点の商品情報をスナップショット
	p, err := h.productUC.GetProductDetail(c.Request().Context(), req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	m, _ := h.loadCart(c)
	m.AddItem(c.Request().Context(), cart.ProductSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		ProductType:  p.ProductType,
		ImageURL:     p.ImageURL,
		Price:        p.Price,
		Currency:     p.Currency,
		Availability: p.Availability,
	}, req.Quantity)

	return c.JSON(http.StatusOK, toCartResponse(m))
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	productID := c.Param("product_id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	m, _ := h.loadCart(c)
	//0以下は削除と同じ
	m.UpdateQuantity(c.Request().Context(), productID, req.Quantity)

	return c.JSON(http.StatusOK, toCartResponse(m))
}

func (h *CartHandler) removeItem(c echo.Context) error {
	productID := c.Param("product_id")
	if productID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	m, _ := h.loadCart(c)
	m.RemoveItem(c.Request().Context(), productID)

	return c.JSON(http.StatusOK, toCartResponse(m))
}

func (h *CartHandler) clear(c echo.Context) error {
	m, _ := h.loadCart(c)
	m.Clear(c.Request().Context())

	return c.JSON(http.StatusOK, toCartResponse(m))
}

// tokenを解決してカートを復元する。tokenが無ければ新規発行してcookieへ。
func (h *CartHandler) loadCart(c echo.Context) (*cart.Manager, string) {
	token := h.resolveToken(c)
	m := cart.NewManager(h.store, token, c.Logger())
	m.Load(c.Request().Context())
	return m, token
}

func (h *CartHandler) resolveToken(c echo.Context) string {
	if v := c.Request().Header.Get(cartTokenHeader); v != "" {
		return v
	}
	if ck, err := c.Cookie(cartTokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}

	token := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60 * 60 * 24 * 365,
	})
	return token
}

func toCartResponse(m *cart.Manager) cartResponse {
	currency := ""
	for _, it := range m.Items() {
		if it.Product.Currency != "" {
			currency = it.Product.Currency
			break
		}
	}
	return cartResponse{
		Items:      m.Items(),
		TotalItems: m.GetTotalItems(),
		Subtotal:   m.GetSubtotal(),
		Currency:   currency,
	}
}
