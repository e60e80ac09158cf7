package cache

import (
	"context"
	"errors"

	"mestej/internal/domain/model"
)

// CatalogCache はカタログ（現在価格つき商品一覧）のキャッシュ。
// 読み取りはミス扱いで握りつぶせるよう、ErrCacheMissで返す。
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]model.ProductWithPrice, error)
	Set(ctx context.Context, key string, products []model.ProductWithPrice) error
	//管理側の商品・価格変更で全キーを無効化する
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
