package model

import "github.com/shopspring/decimal"

// 注文明細。
// 商品名・単価は注文時点のスナップショット。
// カタログが後から変わっても過去の注文は変わらない。
type OrderItem struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID string `gorm:"type:uuid;not null;index" json:"order_id"`

	//商品が後でhard deleteされてもnullで明細は残す
	ProductID *string `gorm:"type:uuid;index" json:"product_id"`

	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	UnitPrice           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
}
