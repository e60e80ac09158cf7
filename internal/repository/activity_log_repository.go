package repository

import (
	"context"
	"time"

	"mestej/internal/domain/model"
)

//操作ログの絞り込み条件。

type ActivityLogFilter struct {
	AdminID      *string
	Action       *model.AdminAction
	ResourceType *model.AdminResourceType
	ResourceID   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// 管理者操作ログの保存・一覧取得の約束。
type ActivityLogRepository interface {
	//操作ログを1件保存
	Create(ctx context.Context, log model.AdminActivityLog) error

	//操作ログを条件で一覧取得。
	List(ctx context.Context, filter ActivityLogFilter) ([]model.AdminActivityLog, error)
}
