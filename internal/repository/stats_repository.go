package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// 管理ダッシュボードに出す集計値。
type DashboardStats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PendingOrders int64           `json:"pending_orders"`
	PendingUsers  int64           `json:"pending_users"`
	TotalProducts int64           `json:"total_products"`
	TotalUsers    int64           `json:"total_users"`
}

type StatsRepository interface {
	//売上はcancelled以外の注文合計
	DashboardStats(ctx context.Context) (DashboardStats, error)
}
