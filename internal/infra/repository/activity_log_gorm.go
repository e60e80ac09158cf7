package repository

import (
	"context"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"gorm.io/gorm"
)

type activityLogGormRepository struct {
	db *gorm.DB
}

func NewActivityLogGormRepository(db *gorm.DB) repo.ActivityLogRepository {
	return &activityLogGormRepository{db: db}
}

func (r *activityLogGormRepository) Create(ctx context.Context, log model.AdminActivityLog) error {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return err
	}
	return nil
}

func (r *activityLogGormRepository) List(ctx context.Context, filter repo.ActivityLogFilter) ([]model.AdminActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AdminActivityLog{})

	if filter.AdminID != nil {
		q = q.Where("admin_id = ?", *filter.AdminID)
	}
	if filter.Action != nil {
		q = q.Where("action = ?", *filter.Action)
	}
	if filter.ResourceType != nil {
		q = q.Where("resource_type = ?", *filter.ResourceType)
	}
	if filter.ResourceID != nil {
		q = q.Where("resource_id = ?", *filter.ResourceID)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		q = q.Where("created_at <= ?", *filter.CreatedTo)
	}

	//新しい順
	q = q.Order("created_at DESC")

	// limit/offset
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	q = q.Limit(limit).Offset(filter.Offset)

	var logs []model.AdminActivityLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
