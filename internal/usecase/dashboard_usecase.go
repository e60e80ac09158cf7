package usecase

import (
	"context"
	"net/http"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"
)

// 管理ダッシュボード。集計値と操作ログの閲覧だけ。
type DashboardUsecase struct {
	statsRepo    repo.StatsRepository
	activityRepo repo.ActivityLogRepository
}

func NewDashboardUsecase(statsRepo repo.StatsRepository, activityRepo repo.ActivityLogRepository) *DashboardUsecase {
	return &DashboardUsecase{statsRepo: statsRepo, activityRepo: activityRepo}
}

func (u *DashboardUsecase) Stats(ctx context.Context) (repo.DashboardStats, error) {
	stats, err := u.statsRepo.DashboardStats(ctx)
	if err != nil {
		return repo.DashboardStats{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return stats, nil
}

type ActivityLogQuery struct {
	AdminID      string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

// 操作ログ一覧（新しい順）。
func (u *DashboardUsecase) ListActivity(ctx context.Context, q ActivityLogQuery) ([]model.AdminActivityLog, error) {
	filter := repo.ActivityLogFilter{
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if q.AdminID != "" {
		filter.AdminID = &q.AdminID
	}
	if q.ResourceID != "" {
		filter.ResourceID = &q.ResourceID
	}
	if q.Action != "" {
		action := model.AdminAction(q.Action)
		filter.Action = &action
	}
	if q.ResourceType != "" {
		switch model.AdminResourceType(q.ResourceType) {
		case model.AdminResourceProduct, model.AdminResourceOrder, model.AdminResourceUser:
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid resource_type")
		}
		rt := model.AdminResourceType(q.ResourceType)
		filter.ResourceType = &rt
	}

	logs, err := u.activityRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
