package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品価格の履歴行。
// valid_to が null の行が「現在価格」で、1商品につき最大1行。
// 価格改定は現在行を閉じて新しい行を追加する（上書きしない）。
// CurrentPrice はatの時点で有効な価格行を返す。
// valid_from <= at かつ (valid_toがnull または valid_to >= at) の中から
// valid_fromが最新の行を選ぶ。該当なしはnil（＝価格はお問い合わせ）。
func CurrentPrice(prices []ProductPrice, at time.Time) *ProductPrice {
	var current *ProductPrice
	for i := range prices {
		p := &prices[i]
		if p.ValidFrom.After(at) {
			continue
		}
		if p.ValidTo != nil && p.ValidTo.Before(at) {
			continue
		}
		if current == nil || p.ValidFrom.After(current.ValidFrom) {
			current = p
		}
	}
	return current
}

type ProductPrice struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string          `gorm:"type:uuid;not null;index" json:"product_id"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'SEK'" json:"currency"`
	ValidFrom time.Time       `gorm:"not null;index" json:"valid_from"`
	ValidTo   *time.Time      `gorm:"index" json:"valid_to"`
}
