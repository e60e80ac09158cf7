package model

import "github.com/shopspring/decimal"

// 商品と現在価格をまとめた表示用ビュー。
// Priceがnilの商品は価格お問い合わせ（currencyはSEK固定で返す）。
type ProductWithPrice struct {
	Product
	Price    *decimal.Decimal `json:"price"`
	Currency string           `json:"currency"`
}
