package model

import "time"

// 管理者操作の種類。
type AdminAction string

const (
	AdminActionApprovedUser       AdminAction = "approved_user"
	AdminActionRejectedUser       AdminAction = "rejected_user"
	AdminActionBlockedUser        AdminAction = "blocked_user"
	AdminActionUnblockedUser      AdminAction = "unblock_user"
	AdminActionCreatedProduct     AdminAction = "created_product"
	AdminActionUpdatedProduct     AdminAction = "updated_product"
	AdminActionDeletedProduct     AdminAction = "deleted_product"
	AdminActionSoftDeletedProduct AdminAction = "soft_deleted_product"
	AdminActionFulfilledOrder     AdminAction = "fulfilled_order"
	AdminActionCancelledOrder     AdminAction = "cancelled_order"
)

// 何に対する操作か
type AdminResourceType string

const (
	AdminResourceProduct AdminResourceType = "product"
	AdminResourceOrder   AdminResourceType = "order"
	AdminResourceUser    AdminResourceType = "user"
)

// 管理者操作ログ（追記専用）。
// 「誰が」「何を」「どの対象に」行ったかを残す。
type AdminActivityLog struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID string `gorm:"type:uuid;not null;index" json:"admin_id"`

	Action       AdminAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AdminResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:uuid;index" json:"resource_id"`

	//変更内容のスナップショット（JSON文字列）
	Metadata string `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
