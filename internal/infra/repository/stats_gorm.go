package repository

import (
	"context"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type statsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) repo.StatsRepository {
	return &statsGormRepository{db: db}
}

// ダッシュボードの集計。get_dashboard_statsに相当。
func (r *statsGormRepository) DashboardStats(ctx context.Context) (repo.DashboardStats, error) {
	var stats repo.DashboardStats

	//売上（cancelled以外）
	var revenue decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status <> ?", model.OrderStatusCancelled).
		Select("SUM(total_amount)").
		Scan(&revenue).Error
	if err != nil {
		return repo.DashboardStats{}, err
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	} else {
		stats.TotalRevenue = decimal.Zero
	}

	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", model.OrderStatusPlaced).
		Count(&stats.PendingOrders).Error; err != nil {
		return repo.DashboardStats{}, err
	}

	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("status = ?", model.UserStatusPending).
		Count(&stats.PendingUsers).Error; err != nil {
		return repo.DashboardStats{}, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Count(&stats.TotalProducts).Error; err != nil {
		return repo.DashboardStats{}, err
	}

	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Count(&stats.TotalUsers).Error; err != nil {
		return repo.DashboardStats{}, err
	}

	return stats, nil
}
