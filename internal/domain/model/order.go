package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	//画面やメールで使う注文番号（MST-20260830-xxxx）
	OrderNumber string `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`

	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'SEK'" json:"currency"`

	//配送先はJSONスナップショット（住所マスタの後変更に影響されない）
	DeliveryAddr string `gorm:"type:jsonb;not null" json:"delivery_addr"`

	//キャンセル理由（任意）
	CancelReason string `gorm:"type:text" json:"cancel_reason,omitempty"`

	CreatedAt   time.Time  `gorm:"not null;autoCreateTime;index" json:"created_at"`
	FulfilledAt *time.Time `json:"fulfilled_at"`
}
