package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"
)

// 会員の承認ワークフロー（approve/reject/block/unblock）。
// 遷移の可否はmodel.NextUserStatusに一元化してある。
type AdminUserUsecase struct {
	tx           repo.TransactionManager
	activityRepo repo.ActivityLogRepository
	idGen        IDGenerator
	clock        Clock
}

func NewAdminUserUsecase(
	tx repo.TransactionManager,
	activityRepo repo.ActivityLogRepository,
	idGen IDGenerator,
	clock Clock,
) *AdminUserUsecase {
	return &AdminUserUsecase{
		tx:           tx,
		activityRepo: activityRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

type UserListOutput struct {
	Items []model.User `json:"items"`
	Total int64        `json:"total"`
}

func (u *AdminUserUsecase) List(ctx context.Context, status string, limit int, offset int) (UserListOutput, error) {
	var statusFilter *model.UserStatus
	switch status {
	case "", "all":
	case string(model.UserStatusPending), string(model.UserStatusApproved),
		string(model.UserStatusRejected), string(model.UserStatusBlocked):
		s := model.UserStatus(status)
		statusFilter = &s
	default:
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out UserListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		users, total, err := r.Users().List(ctx, repo.UserListFilter{
			Status: statusFilter,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = UserListOutput{Items: users, Total: total}
		return nil
	})
	if err != nil {
		return UserListOutput{}, err
	}
	return out, nil
}

// ApproveUser はpendingの会員を承認する。承認者と承認時刻を記録する。
func (u *AdminUserUsecase) ApproveUser(ctx context.Context, adminID string, userID string) error {
	return u.transition(ctx, adminID, userID, model.UserActionApprove, model.AdminActionApprovedUser, "")
}

// RejectUser はpendingの会員を却下する。理由は監査用でユーザーには出さない。
func (u *AdminUserUsecase) RejectUser(ctx context.Context, adminID string, userID string, reason string) error {
	return u.transition(ctx, adminID, userID, model.UserActionReject, model.AdminActionRejectedUser, reason)
}

// BlockUser は会員を利用停止にする。
func (u *AdminUserUsecase) BlockUser(ctx context.Context, adminID string, userID string, reason string) error {
	return u.transition(ctx, adminID, userID, model.UserActionBlock, model.AdminActionBlockedUser, reason)
}

// UnblockUser は停止を解除してapprovedへ戻す。
// 解除した管理者が新しい承認者として記録される（承認のやり直し扱い）。
func (u *AdminUserUsecase) UnblockUser(ctx context.Context, adminID string, userID string) error {
	return u.transition(ctx, adminID, userID, model.UserActionUnblock, model.AdminActionUnblockedUser, "")
}

func (u *AdminUserUsecase) transition(
	ctx context.Context,
	adminID string,
	userID string,
	action model.UserAction,
	logAction model.AdminAction,
	reason string,
) error {
	if adminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if userID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	reason = strings.TrimSpace(reason)

	var before model.UserStatus
	var after model.UserStatus

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		usr, err := r.Users().FindByID(ctx, userID)
		if err == repo.ErrUserNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		next, err := model.NextUserStatus(usr.Status, action)
		if err != nil {
			return NewHTTPError(http.StatusConflict, "invalid state transition")
		}

		//approvedへの遷移だけ承認者と時刻を記録する（unblockも承認のやり直し）
		var approvedBy *string
		var approvedAt *time.Time
		if next == model.UserStatusApproved {
			now := u.clock.Now()
			approvedBy = &adminID
			approvedAt = &now
		}

		ok, err := r.Users().UpdateStatusIf(ctx, userID, usr.Status, next, approvedBy, approvedAt)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//同時に別の管理者が先に変えていた
		if !ok {
			return NewHTTPError(http.StatusConflict, "invalid state transition")
		}

		before = usr.Status
		after = next
		return nil
	})
	if err != nil {
		return err
	}

	recordAdminActivity(ctx, u.activityRepo, u.idGen, u.clock,
		adminID, logAction, model.AdminResourceUser, userID,
		statusChange{Before: string(before), After: string(after), Reason: reason})

	return nil
}
