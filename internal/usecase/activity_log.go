package usecase

import (
	"context"
	"encoding/json"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/labstack/gommon/log"
)

// recordAdminActivity は管理者操作ログを1件追記する。
// ログ書き込みの失敗で本処理を巻き戻さない（警告を出して握りつぶす）。
// 必ず状態変更が成功した後に呼ぶこと。
func recordAdminActivity(
	ctx context.Context,
	logs repo.ActivityLogRepository,
	idGen IDGenerator,
	clock Clock,
	adminID string,
	action model.AdminAction,
	resourceType model.AdminResourceType,
	resourceID string,
	metadata interface{},
) {
	data, err := json.Marshal(metadata)
	if err != nil {
		data = []byte("{}")
	}

	entry := model.AdminActivityLog{
		ID:           idGen.NewID(),
		AdminID:      adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     string(data),
		CreatedAt:    clock.Now(),
	}

	if err := logs.Create(ctx, entry); err != nil {
		log.Warnf("admin activity log failed (action=%s resource=%s/%s): %v",
			action, resourceType, resourceID, err)
	}
}

// ステータス遷移ログのmetadata。
type statusChange struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Reason string `json:"reason,omitempty"`
}
