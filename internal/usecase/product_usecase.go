package usecase

import (
	"context"
	"fmt"
	"net/http"

	"mestej/internal/cache"
	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/labstack/gommon/log"
)

const defaultCurrency = "SEK"

// 公開カタログの読み取り。
// 商品と価格履歴をマージして「現在価格つき商品」を返す。
type ProductUsecase struct {
	productRepo repo.ProductRepository
	priceRepo   repo.ProductPriceRepository
	catalog     cache.CatalogCache
	clock       Clock
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	priceRepo repo.ProductPriceRepository,
	catalog cache.CatalogCache,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		catalog:     catalog,
		clock:       clock,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	ProductType   string
	OnlyAvailable bool
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.ProductWithPrice, error) {
	var typeFilter *model.ProductType
	switch in.ProductType {
	case "":
	case string(model.ProductTypeWine), string(model.ProductTypeLiquor), string(model.ProductTypeMerchandise):
		t := model.ProductType(in.ProductType)
		typeFilter = &t
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product_type")
	}

	key := fmt.Sprintf("public:%s:%t", in.ProductType, in.OnlyAvailable)
	if u.catalog != nil {
		if cached, err := u.catalog.Get(ctx, key); err == nil {
			return cached, nil
		}
	}

	products, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		ProductType:   typeFilter,
		OnlyAvailable: in.OnlyAvailable,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out, err := u.withCurrentPrices(ctx, products)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.catalog != nil {
		//キャッシュ書き込み失敗は無視（次回DBから読めばよい）
		if err := u.catalog.Set(ctx, key, out); err != nil {
			log.Warnf("catalog cache set failed: %v", err)
		}
	}

	return out, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (model.ProductWithPrice, error) {
	if productID == "" {
		return model.ProductWithPrice{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.ProductWithPrice{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.ProductWithPrice{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out, err := u.withCurrentPrices(ctx, []model.Product{p})
	if err != nil {
		return model.ProductWithPrice{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out[0], nil
}

// 商品と価格履歴をマージする。
// 現在価格の選定ルールはmodel.CurrentPrice（valid_fromが最新の有効行）。
// 有効行がない商品はPrice=nil（価格お問い合わせ）。
func (u *ProductUsecase) withCurrentPrices(ctx context.Context, products []model.Product) ([]model.ProductWithPrice, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	prices, err := u.priceRepo.ListByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byProduct := map[string][]model.ProductPrice{}
	for _, pr := range prices {
		byProduct[pr.ProductID] = append(byProduct[pr.ProductID], pr)
	}

	now := u.clock.Now()
	out := make([]model.ProductWithPrice, 0, len(products))
	for _, p := range products {
		v := model.ProductWithPrice{Product: p, Currency: defaultCurrency}
		if current := model.CurrentPrice(byProduct[p.ID], now); current != nil {
			price := current.Price
			v.Price = &price
			v.Currency = current.Currency
		}
		out = append(out, v)
	}

	return out, nil
}
