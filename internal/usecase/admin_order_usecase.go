package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"
)

// 注文の処理ワークフロー（fulfill/cancel）。
// 遷移の可否はmodel.NextOrderStatusに一元化してある。
type AdminOrderUsecase struct {
	tx           repo.TransactionManager
	activityRepo repo.ActivityLogRepository
	idGen        IDGenerator
	clock        Clock
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	activityRepo repo.ActivityLogRepository,
	idGen IDGenerator,
	clock Clock,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:           tx,
		activityRepo: activityRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

type AdminOrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	switch f.Status {
	case "", "all",
		string(model.OrderStatusPlaced), string(model.OrderStatusPaid),
		string(model.OrderStatusFulfilled), string(model.OrderStatusCancelled):
	default:
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		out = AdminOrderListOutput{Items: outs, Total: total}
		return nil
	})

	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// 注文詳細（明細つき）
func (u *AdminOrderUsecase) GetDetail(ctx context.Context, orderID string) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// FulfillOrder は注文を処理済みにする。placedまたはpaidからのみ。
// 処理済み時刻を記録する。
func (u *AdminOrderUsecase) FulfillOrder(ctx context.Context, adminID string, orderID string) error {
	return u.transition(ctx, adminID, orderID, model.OrderActionFulfill, model.AdminActionFulfilledOrder, "")
}

// CancelOrder は注文をキャンセルする。placedまたはpaidからのみ。
// 理由は任意で記録される。
func (u *AdminOrderUsecase) CancelOrder(ctx context.Context, adminID string, orderID string, reason string) error {
	return u.transition(ctx, adminID, orderID, model.OrderActionCancel, model.AdminActionCancelledOrder, reason)
}

func (u *AdminOrderUsecase) transition(
	ctx context.Context,
	adminID string,
	orderID string,
	action model.OrderAction,
	logAction model.AdminAction,
	reason string,
) error {
	if adminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reason = strings.TrimSpace(reason)

	var before model.OrderStatus
	var after model.OrderStatus

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 終端（fulfilled/cancelled）からの遷移はここで弾かれる
		next, err := model.NextOrderStatus(o.Status, action)
		if err != nil {
			return NewHTTPError(http.StatusConflict, "invalid state transition")
		}

		var fulfilledAt *time.Time
		if next == model.OrderStatusFulfilled {
			now := u.clock.Now()
			fulfilledAt = &now
		}

		ok, err := r.Orders().UpdateStatusIf(ctx, orderID, o.Status, next, fulfilledAt, reason)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//同時に別の管理者が先に変えていた
		if !ok {
			return NewHTTPError(http.StatusConflict, "invalid state transition")
		}

		before = o.Status
		after = next
		return nil
	})
	if err != nil {
		return err
	}

	recordAdminActivity(ctx, u.activityRepo, u.idGen, u.clock,
		adminID, logAction, model.AdminResourceOrder, orderID,
		statusChange{Before: string(before), After: string(after), Reason: reason})

	return nil
}
