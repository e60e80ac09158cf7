package repository

import (
	"context"
	"time"

	"mestej/internal/domain/model"
)

// 管理者用の注文一覧の絞り込み条件。
type AdminOrderListFilter struct {
	Status string
	UserID *string
	Limit  int
	Offset int
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	//ユーザー自身の注文履歴（新しい順）
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) error

	//ステータスの条件付き更新。
	//現在値がexpectedのときだけnextへ更新し、更新できたらtrueを返す。
	//fulfilledAt/cancelReasonは該当する遷移でだけ渡す。
	UpdateStatusIf(ctx context.Context, orderID string, expected model.OrderStatus, next model.OrderStatus, fulfilledAt *time.Time, cancelReason string) (bool, error)
}
