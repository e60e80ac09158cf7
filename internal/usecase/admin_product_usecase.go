package usecase

import (
	"context"
	"net/http"
	"strings"

	"mestej/internal/cache"
	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

// 商品と価格の管理（作成・更新・削除）。
// 価格改定は履歴を残す：現在行を閉じて新しい行を追加する。
type AdminProductUsecase struct {
	tx           repo.TransactionManager
	priceRepo    repo.ProductPriceRepository
	productRepo  repo.ProductRepository
	activityRepo repo.ActivityLogRepository
	catalog      cache.CatalogCache
	idGen        IDGenerator
	clock        Clock
}

func NewAdminProductUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	priceRepo repo.ProductPriceRepository,
	activityRepo repo.ActivityLogRepository,
	catalog cache.CatalogCache,
	idGen IDGenerator,
	clock Clock,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		tx:           tx,
		productRepo:  productRepo,
		priceRepo:    priceRepo,
		activityRepo: activityRepo,
		catalog:      catalog,
		idGen:        idGen,
		clock:        clock,
	}
}

type AdminProductInput struct {
	Name          string
	Description   string
	ProductType   string
	SupplierID    *string
	ImageURL      string
	ABV           *float64
	VolumeML      *int64
	StockQuantity int64
	Availability  string

	//nilなら価格は変更しない（作成時は価格未設定＝お問い合わせ）
	Price    *decimal.Decimal
	Currency string
}

func (in *AdminProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	switch in.ProductType {
	case string(model.ProductTypeWine), string(model.ProductTypeLiquor), string(model.ProductTypeMerchandise):
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid product_type")
	}
	switch in.Availability {
	case "", string(model.AvailabilityInStock), string(model.AvailabilityOutOfStock):
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid availability")
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	return nil
}

func (in *AdminProductInput) toModel(id string) model.Product {
	availability := model.AvailabilityInStock
	if in.Availability != "" {
		availability = model.Availability(in.Availability)
	}
	return model.Product{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		ProductType:   model.ProductType(in.ProductType),
		SupplierID:    in.SupplierID,
		ImageURL:      in.ImageURL,
		ABV:           in.ABV,
		VolumeML:      in.VolumeML,
		StockQuantity: in.StockQuantity,
		Availability:  availability,
	}
}

// 管理画面用の商品一覧（現在価格つき、out_of_stockも含む）。
func (u *AdminProductUsecase) ListAll(ctx context.Context) ([]model.ProductWithPrice, error) {
	products, err := u.productRepo.ListAdmin(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	prices, err := u.priceRepo.ListByProductIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
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

// Create は商品を作成する。価格が指定されていれば初回の価格行も作る。
func (u *AdminProductUsecase) Create(ctx context.Context, adminID string, in AdminProductInput) (string, error) {
	if adminID == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return "", err
	}

	productID := u.idGen.NewID()
	now := u.clock.Now()

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p := in.toModel(productID)
		p.CreatedAt = now
		if _, err := r.Products().Create(ctx, p); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Price != nil {
			if err := r.ProductPrices().Create(ctx, model.ProductPrice{
				ID:        u.idGen.NewID(),
				ProductID: productID,
				Price:     *in.Price,
				Currency:  currencyOrDefault(in.Currency),
				ValidFrom: now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	recordAdminActivity(ctx, u.activityRepo, u.idGen, u.clock,
		adminID, model.AdminActionCreatedProduct, model.AdminResourceProduct, productID,
		map[string]interface{}{
			"product_name": strings.TrimSpace(in.Name),
			"product_type": in.ProductType,
		})

	u.invalidateCatalog(ctx)
	return productID, nil
}

// Update は商品を更新する。
// 価格が指定されていれば現在行を閉じて新しい行を追加する（履歴保存）。
func (u *AdminProductUsecase) Update(ctx context.Context, adminID string, productID string, in AdminProductInput) error {
	if adminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	now := u.clock.Now()

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().Update(ctx, in.toModel(productID)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Price != nil {
			//価格改定：現在行を閉じてから新しい行を追加（同一トランザクション）
			if err := r.ProductPrices().EndCurrent(ctx, productID, now); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.ProductPrices().Create(ctx, model.ProductPrice{
				ID:        u.idGen.NewID(),
				ProductID: productID,
				Price:     *in.Price,
				Currency:  currencyOrDefault(in.Currency),
				ValidFrom: now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	metadata := map[string]interface{}{"product_name": strings.TrimSpace(in.Name)}
	if in.Price != nil {
		metadata["new_price"] = in.Price.String()
	}
	recordAdminActivity(ctx, u.activityRepo, u.idGen, u.clock,
		adminID, model.AdminActionUpdatedProduct, model.AdminResourceProduct, productID, metadata)

	u.invalidateCatalog(ctx)
	return nil
}

// Delete は商品を削除する。
// 通常はsoft delete（out_of_stockにするだけ）。hardは行ごと消す。
func (u *AdminProductUsecase) Delete(ctx context.Context, adminID string, productID string, hard bool) error {
	if adminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var err error
	if hard {
		err = u.productRepo.Delete(ctx, productID)
	} else {
		err = u.productRepo.UpdateAvailability(ctx, productID, model.AvailabilityOutOfStock)
	}
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	action := model.AdminActionSoftDeletedProduct
	if hard {
		action = model.AdminActionDeletedProduct
	}
	recordAdminActivity(ctx, u.activityRepo, u.idGen, u.clock,
		adminID, action, model.AdminResourceProduct, productID, map[string]interface{}{})

	u.invalidateCatalog(ctx)
	return nil
}

func (u *AdminProductUsecase) invalidateCatalog(ctx context.Context) {
	if u.catalog == nil {
		return
	}
	if err := u.catalog.Invalidate(ctx); err != nil {
		log.Warnf("catalog cache invalidate failed: %v", err)
	}
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}
