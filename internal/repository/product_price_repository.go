package repository

import (
	"context"
	"time"

	"mestej/internal/domain/model"
)

// 価格履歴の永続化を約束。
// 「現在価格」の選定ルールはmodel.CurrentPriceに寄せてあり、
// repoは行の取得と履歴の付け替えだけを行う。
type ProductPriceRepository interface {
	//指定商品の価格行をまとめて取得（valid_from降順）
	ListByProductIDs(ctx context.Context, productIDs []string) ([]model.ProductPrice, error)

	//現在行（valid_to IS NULL）をatで閉じる。開いている行がなくてもエラーにしない。
	EndCurrent(ctx context.Context, productID string, at time.Time) error

	//新しい価格行を追加
	Create(ctx context.Context, p model.ProductPrice) error
}
