package repository

import (
	"context"
	"errors"

	"mestej/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 公開カタログの一覧検索
type ProductListQuery struct {
	ProductType   *model.ProductType
	OnlyAvailable bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開カタログ（名前順）
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	//管理画面用（作成の新しい順、out_of_stockも含む）
	ListAdmin(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	//soft delete（availabilityをout_of_stockへ）
	UpdateAvailability(ctx context.Context, id string, availability model.Availability) error
	//hard delete
	Delete(ctx context.Context, id string) error
}
