package handler

import (
	"net/http"

	"mestej/internal/config"
	"mestej/internal/middleware"
	"mestej/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 商品の作成・更新・削除を行う管理API。
type AdminProductHandler struct {
	uc *usecase.AdminProductUsecase
}

func NewAdminProductHandler(uc *usecase.AdminProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/products", h.list)
	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.update)
	admin.DELETE("/products/:id", h.delete)
}

type productRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ProductType   string   `json:"product_type"`
	SupplierID    *string  `json:"supplier_id"`
	ImageURL      string   `json:"image_url"`
	ABV           *float64 `json:"abv"`
	VolumeML      *int64   `json:"volume_ml"`
	StockQuantity int64    `json:"stock_quantity"`
	Availability  string   `json:"availability"`

	//省略なら価格は変更しない
	Price    *string `json:"price"`
	Currency string  `json:"currency"`
}

func (r *productRequest) toInput() (usecase.AdminProductInput, error) {
	in := usecase.AdminProductInput{
		Name:          r.Name,
		Description:   r.Description,
		ProductType:   r.ProductType,
		SupplierID:    r.SupplierID,
		ImageURL:      r.ImageURL,
		ABV:           r.ABV,
		VolumeML:      r.VolumeML,
		StockQuantity: r.StockQuantity,
		Availability:  r.Availability,
		Currency:      r.Currency,
	}
	if r.Price != nil {
		//価格は文字列で受けてdecimalに変換（floatの丸め回避）
		price, err := decimal.NewFromString(*r.Price)
		if err != nil {
			return in, err
		}
		in.Price = &price
	}
	return in, nil
}

func (h *AdminProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createProductResponse struct {
	ID string `json:"id"`
}

func (h *AdminProductHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}

	id, err := h.uc.Create(c.Request().Context(), adminID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createProductResponse{ID: id})
}

func (h *AdminProductHandler) update(c echo.Context) error {
	adminID, productID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}

	if err := h.uc.Update(c.Request().Context(), adminID, productID, in); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	adminID, productID, ok := ids(c)
	if !ok {
		return writeIDError(c)
	}

	//デフォルトはsoft delete（out_of_stock化）。hard=trueで行削除。
	hard := c.QueryParam("hard") == "true"

	if err := h.uc.Delete(c.Request().Context(), adminID, productID, hard); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
