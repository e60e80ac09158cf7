package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mestej/internal/cart"
	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文の作成と自分の注文の参照。
type OrderUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, idGen: idGen, clock: clock}
}

type DeliveryAddress struct {
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

type CheckoutInput struct {
	Items        []cart.Item
	DeliveryAddr DeliveryAddress
}

type OrderItemOutput struct {
	ProductID *string         `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID           string            `json:"id"`
	OrderNumber  string            `json:"order_number"`
	UserID       string            `json:"user_id"`
	Status       string            `json:"status"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	Currency     string            `json:"currency"`
	CreatedAt    time.Time         `json:"created_at"`
	FulfilledAt  *time.Time        `json:"fulfilled_at"`
	CancelReason string            `json:"cancel_reason,omitempty"`
	Items        []OrderItemOutput `json:"items"`
}

// Checkout はカートの中身からplacedの注文を作る。
// 明細は注文時点の商品名・現在価格のスナップショット。
// 価格お問い合わせ商品は0円として計上される（小計と同じ方針）。
func (u *OrderUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if strings.TrimSpace(in.DeliveryAddr.Recipient) == "" ||
		strings.TrimSpace(in.DeliveryAddr.Street) == "" ||
		strings.TrimSpace(in.DeliveryAddr.PostalCode) == "" ||
		strings.TrimSpace(in.DeliveryAddr.City) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delivery address")
	}

	addrJSON, err := json.Marshal(in.DeliveryAddr)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delivery address")
	}

	var out OrderOutput

	//注文処理はトランザクション
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		productIDs := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			if it.Product.ID == "" || it.Quantity <= 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid cart item")
			}
			productIDs = append(productIDs, it.Product.ID)
		}

		prices, err := r.ProductPrices().ListByProductIDs(ctx, productIDs)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		pricesByProduct := map[string][]model.ProductPrice{}
		for _, pr := range prices {
			pricesByProduct[pr.ProductID] = append(pricesByProduct[pr.ProductID], pr)
		}

		now := u.clock.Now()
		total := decimal.Zero
		currency := defaultCurrency
		orderItems := make([]model.OrderItem, 0, len(in.Items))

		for _, it := range in.Items {
			//商品は注文時点で存在し、在庫ありであること
			p, err := r.Products().FindByID(ctx, it.Product.ID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if p.Availability != model.AvailabilityInStock {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}

			//スナップショット価格は注文時点の現在価格
			unitPrice := decimal.Zero
			if current := model.CurrentPrice(pricesByProduct[p.ID], now); current != nil {
				unitPrice = current.Price
				currency = current.Currency
			}

			lineTotal := unitPrice.Mul(decimal.NewFromInt(it.Quantity))
			productID := p.ID
			orderItems = append(orderItems, model.OrderItem{
				ID:                  u.idGen.NewID(),
				ProductID:           &productID,
				ProductNameSnapshot: p.Name,
				Quantity:            it.Quantity,
				UnitPrice:           unitPrice,
				LineTotal:           lineTotal,
			})

			total = total.Add(lineTotal)
		}

		order := model.Order{
			ID:           u.idGen.NewID(),
			OrderNumber:  u.newOrderNumber(now),
			UserID:       userID,
			Status:       model.OrderStatusPlaced,
			TotalAmount:  total,
			Currency:     currency,
			DeliveryAddr: string(addrJSON),
			CreatedAt:    now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
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

		//他人の注文は404
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
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

// MST-20260830-1A2B3C4D の形式。
func (u *OrderUsecase) newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(u.idGen.NewID(), "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "MST-" + now.Format("20060102") + "-" + suffix
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		UserID:       o.UserID,
		Status:       string(o.Status),
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		CreatedAt:    o.CreatedAt,
		FulfilledAt:  o.FulfilledAt,
		CancelReason: o.CancelReason,
		Items:        outItems,
	}
}
