package repository

import (
	"context"
	"errors"
	"time"

	"mestej/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 管理画面のユーザー一覧の絞り込み条件。
type UserListFilter struct {
	Status *model.UserStatus
	Limit  int
	Offset int
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（登録直後はstatus=pending）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//管理画面用の一覧（新しい順）
	List(ctx context.Context, f UserListFilter) ([]model.User, int64, error)

	//ステータスの条件付き更新。
	//現在値がexpectedのときだけnextへ更新し、更新できたらtrueを返す。
	//approvedBy/approvedAtは承認系の遷移でだけ渡す（それ以外はnil）。
	UpdateStatusIf(ctx context.Context, userID string, expected model.UserStatus, next model.UserStatus, approvedBy *string, approvedAt *time.Time) (bool, error)
}
