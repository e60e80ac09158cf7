package model

import "errors"

// 許可されていない状態遷移。
// UIのボタン出し分けとDB更新の両方がここを通ることで判定を一元化する。
var ErrInvalidTransition = errors.New("invalid state transition")

type UserAction string

const (
	UserActionApprove UserAction = "approve"
	UserActionReject  UserAction = "reject"
	UserActionBlock   UserAction = "block"
	UserActionUnblock UserAction = "unblock"
)

// NextUserStatus は会員ステータスの遷移表。
//
//	pending  -> approved / rejected
//	approved -> blocked
//	blocked  -> approved（unblock）
//
// rejected からの遷移は公開していない（再申請の扱いは未確定）。
func NextUserStatus(current UserStatus, action UserAction) (UserStatus, error) {
	switch action {
	case UserActionApprove:
		if current == UserStatusPending {
			return UserStatusApproved, nil
		}
	case UserActionReject:
		if current == UserStatusPending {
			return UserStatusRejected, nil
		}
	case UserActionBlock:
		if current == UserStatusApproved || current == UserStatusPending {
			return UserStatusBlocked, nil
		}
	case UserActionUnblock:
		if current == UserStatusBlocked {
			return UserStatusApproved, nil
		}
	}
	return current, ErrInvalidTransition
}

type OrderAction string

const (
	OrderActionPay     OrderAction = "pay"
	OrderActionFulfill OrderAction = "fulfill"
	OrderActionCancel  OrderAction = "cancel"
)

// NextOrderStatus は注文ステータスの遷移表。
//
//	placed -> paid / fulfilled / cancelled
//	paid   -> fulfilled / cancelled
//
// fulfilled と cancelled は終端。
func NextOrderStatus(current OrderStatus, action OrderAction) (OrderStatus, error) {
	if current.IsTerminal() {
		return current, ErrInvalidTransition
	}

	switch action {
	case OrderActionPay:
		if current == OrderStatusPlaced {
			return OrderStatusPaid, nil
		}
	case OrderActionFulfill:
		if current == OrderStatusPlaced || current == OrderStatusPaid {
			return OrderStatusFulfilled, nil
		}
	case OrderActionCancel:
		if current == OrderStatusPlaced || current == OrderStatusPaid {
			return OrderStatusCancelled, nil
		}
	}
	return current, ErrInvalidTransition
}

// IsTerminal はこれ以上遷移できない状態かどうか。
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFulfilled || s == OrderStatusCancelled
}
