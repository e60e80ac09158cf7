package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminUserUsecase(users *UserRepoMock, activity *ActivityRepoMock, now time.Time) *AdminUserUsecase {
	tx := &txManagerStub{Repos: &txReposStub{users: users}}
	return NewAdminUserUsecase(tx, activity, &seqIDGen{}, fixedClock{now})
}

func TestApproveUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	users := new(UserRepoMock)
	activity := new(ActivityRepoMock)
	uc := newAdminUserUsecase(users, activity, now)

	users.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", Status: model.UserStatusPending}, nil)
	users.On("UpdateStatusIf", ctx, "u1", model.UserStatusPending, model.UserStatusApproved,
		mock.MatchedBy(func(by *string) bool { return by != nil && *by == "admin1" }),
		mock.MatchedBy(func(at *time.Time) bool { return at != nil && at.Equal(now) }),
	).Return(true, nil)
	activity.On("Create", ctx, mock.MatchedBy(func(l model.AdminActivityLog) bool {
		return l.AdminID == "admin1" &&
			l.Action == model.AdminActionApprovedUser &&
			l.ResourceType == model.AdminResourceUser &&
			l.ResourceID == "u1"
	})).Return(nil)

	err := uc.ApproveUser(ctx, "admin1", "u1")
	assert.NoError(t, err)

	users.AssertExpectations(t)
	activity.AssertExpectations(t)
}

func TestApproveUserAlreadyApproved(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	users := new(UserRepoMock)
	activity := new(ActivityRepoMock)
	uc := newAdminUserUsecase(users, activity, now)

	users.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", Status: model.UserStatusApproved}, nil)

	err := uc.ApproveUser(ctx, "admin1", "u1")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	//遷移できないときはログも書かれない
	activity.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveUserNotFound(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	users := new(UserRepoMock)
	activity := new(ActivityRepoMock)
	uc := newAdminUserUsecase(users, activity, now)

	users.On("FindByID", ctx, "missing").Return(nil, repo.ErrUserNotFound)

	err := uc.ApproveUser(ctx, "admin1", "missing")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestApproveUserLostRace(t *testing.T) {
	//FindByIDの後で別の管理者が先にステータスを変えたケース
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	users := new(UserRepoMock)
	activity := new(ActivityRepoMock)
	uc := newAdminUserUsecase(users, activity, now)

	users.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", Status: model.UserStatusPending}, nil)
	users.On("UpdateStatusIf", ctx, "u1", model.UserStatusPending, model.UserStatusApproved,
		mock.Anything, mock.Anything).Return(false, nil)

	err := uc.ApproveUser(ctx, "admin1", "u1")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	activity.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlockUserFromPendingAndApproved(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	for _, from := range []model.UserStatus{model.UserStatusPending, model.UserStatusApproved} {
		users := new(UserRepoMock)
		activity := new(ActivityRepoMock)
		uc := newAdminUserUsecase(users, activity, now)

		users.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", Status: from}, nil)
		//block時は承認者情報を渡さない
		users.On("UpdateStatusIf", ctx, "u1", from, model.UserStatusBlocked,
			(*string)(nil), (*time.Time)(nil)).Return(true, nil)
		activity.On("Create", ctx, mock.MatchedBy(func(l model.AdminActivityLog) bool {
			return l.Action == model.AdminActionBlockedUser
		})).Return(nil)

		assert.NoError(t, uc.BlockUser(ctx, "admin1", "u1", "fraud suspicion"))
		users.AssertExpectations(t)
	}
}

func TestUnblockUserRecordsNewApprover(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	users := new(UserRepoMock)
	activity := new(ActivityRepoMock)
	uc := newAdminUserUsecase(users, activity, now)

	users.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", Status: model.UserStatusBlocked}, nil)
	//unblockはapprovedへ戻すので承認者が再記録される
	users.On("UpdateStatusIf", ctx, "u1", model.UserStatusBlocked, model.UserStatusApproved,
		mock.MatchedBy(func(by *string) bool { return by != nil && *by == "admin2" }),
		mock.MatchedBy(func(at *time.Time) bool { return at != nil }),
	).Return(true, nil)
	activity.On("Create", ctx, mock.MatchedBy(func(l model.AdminActivityLog) bool {
		return l.Action == model.AdminActionUnblockedUser
	})).Return(nil)

	assert.NoError(t, uc.UnblockUser(ctx, "admin2", "u1"))
	users.AssertExpectations(t)
}

func TestUserTransitionSucceedsWhenActivityLogFails(t *testing.T) {
	//ログ書き込み失敗は本処理を失敗させない
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	users := new(UserRepoMock)
	activity := new(ActivityRepoMock)
	uc := newAdminUserUsecase(users, activity, now)

	users.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1", Status: model.UserStatusPending}, nil)
	users.On("UpdateStatusIf", ctx, "u1", model.UserStatusPending, model.UserStatusRejected,
		(*string)(nil), (*time.Time)(nil)).Return(true, nil)
	activity.On("Create", ctx, mock.Anything).Return(errors.New("log db down"))

	assert.NoError(t, uc.RejectUser(ctx, "admin1", "u1", "no permit document"))
	activity.AssertExpectations(t)
}

func TestAdminUserListValidatesStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	users := new(UserRepoMock)
	activity := new(ActivityRepoMock)
	uc := newAdminUserUsecase(users, activity, now)

	_, err := uc.List(ctx, "bogus", 10, 0)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	pending := model.UserStatusPending
	users.On("List", ctx, repo.UserListFilter{Status: &pending, Limit: 10, Offset: 0}).
		Return([]model.User{{ID: "u1", Status: pending}}, int64(1), nil)

	out, err := uc.List(ctx, "pending", 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}
