package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"mestej/internal/cart"
	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func cartItem(productID string, qty int64) cart.Item {
	return cart.Item{
		Product:  cart.ProductSnapshot{ID: productID, Name: "snap " + productID},
		Quantity: qty,
	}
}

func validAddress() DeliveryAddress {
	return DeliveryAddress{
		Recipient:  "Anna Larsson",
		Street:     "Vingatan 12",
		PostalCode: "21145",
		City:       "Malmö",
		Country:    "SE",
	}
}

func newOrderUsecase(orders *OrderRepoMock, items *OrderItemRepoMock, products *ProductRepoMock, prices *PriceRepoMock, now time.Time) *OrderUsecase {
	tx := &txManagerStub{Repos: &txReposStub{
		orders:     orders,
		orderItems: items,
		products:   products,
		prices:     prices,
	}}
	return NewOrderUsecase(tx, &seqIDGen{}, fixedClock{now})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	prices := new(PriceRepoMock)
	uc := newOrderUsecase(orders, items, products, prices, now)

	products.On("FindByID", ctx, "p1").Return(model.Product{
		ID: "p1", Name: "Solaris 2023", Availability: model.AvailabilityInStock,
	}, nil)
	products.On("FindByID", ctx, "p2").Return(model.Product{
		ID: "p2", Name: "Vidal Ice", Availability: model.AvailabilityInStock,
	}, nil)

	prices.On("ListByProductIDs", ctx, []string{"p1", "p2"}).Return([]model.ProductPrice{
		{ID: "pr1", ProductID: "p1", Price: decimal.RequireFromString("189.00"), Currency: "SEK", ValidFrom: now.AddDate(0, -1, 0)},
		{ID: "pr2", ProductID: "p2", Price: decimal.RequireFromString("349.50"), Currency: "SEK", ValidFrom: now.AddDate(0, -1, 0)},
	}, nil)

	var createdOrder model.Order
	orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		createdOrder = o
		return o.UserID == "u1" &&
			o.Status == model.OrderStatusPlaced &&
			o.Currency == "SEK" &&
			strings.HasPrefix(o.OrderNumber, "MST-20260830-") &&
			o.TotalAmount.Equal(decimal.RequireFromString("727.50"))
	})).Return(nil)

	items.On("CreateBulk", ctx, mock.Anything, mock.MatchedBy(func(list []model.OrderItem) bool {
		if len(list) != 2 {
			return false
		}
		//明細はDBの商品名と注文時点の価格のスナップショット
		return list[0].ProductNameSnapshot == "Solaris 2023" &&
			list[0].Quantity == 2 &&
			list[0].UnitPrice.Equal(decimal.RequireFromString("189.00")) &&
			list[0].LineTotal.Equal(decimal.RequireFromString("378.00")) &&
			list[1].ProductNameSnapshot == "Vidal Ice" &&
			list[1].LineTotal.Equal(decimal.RequireFromString("349.50"))
	})).Return(nil)

	out, err := uc.Checkout(ctx, "u1", CheckoutInput{
		Items:        []cart.Item{cartItem("p1", 2), cartItem("p2", 1)},
		DeliveryAddr: validAddress(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "placed", out.Status)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("727.50")))
	assert.Len(t, out.Items, 2)
	assert.Equal(t, createdOrder.ID, out.ID)

	orders.AssertExpectations(t)
	items.AssertExpectations(t)
}

func TestCheckoutPriceOnRequestCountsAsZero(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	prices := new(PriceRepoMock)
	uc := newOrderUsecase(orders, items, products, prices, now)

	products.On("FindByID", ctx, "p1").Return(model.Product{
		ID: "p1", Name: "Limited Release", Availability: model.AvailabilityInStock,
	}, nil)
	//価格行なし
	prices.On("ListByProductIDs", ctx, []string{"p1"}).Return([]model.ProductPrice{}, nil)

	orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.TotalAmount.Equal(decimal.Zero)
	})).Return(nil)
	items.On("CreateBulk", ctx, mock.Anything, mock.MatchedBy(func(list []model.OrderItem) bool {
		return len(list) == 1 && list[0].UnitPrice.Equal(decimal.Zero)
	})).Return(nil)

	out, err := uc.Checkout(ctx, "u1", CheckoutInput{
		Items:        []cart.Item{cartItem("p1", 3)},
		DeliveryAddr: validAddress(),
	})
	assert.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(decimal.Zero))
}

func TestCheckoutProductGone(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	prices := new(PriceRepoMock)
	uc := newOrderUsecase(orders, items, products, prices, now)

	prices.On("ListByProductIDs", ctx, []string{"p1"}).Return([]model.ProductPrice{}, nil)
	products.On("FindByID", ctx, "p1").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Checkout(ctx, "u1", CheckoutInput{
		Items:        []cart.Item{cartItem("p1", 1)},
		DeliveryAddr: validAddress(),
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutOutOfStockProduct(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	prices := new(PriceRepoMock)
	uc := newOrderUsecase(orders, items, products, prices, now)

	prices.On("ListByProductIDs", ctx, []string{"p1"}).Return([]model.ProductPrice{}, nil)
	products.On("FindByID", ctx, "p1").Return(model.Product{
		ID: "p1", Name: "Solaris 2023", Availability: model.AvailabilityOutOfStock,
	}, nil)

	_, err := uc.Checkout(ctx, "u1", CheckoutInput{
		Items:        []cart.Item{cartItem("p1", 1)},
		DeliveryAddr: validAddress(),
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCheckoutValidation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	uc := newOrderUsecase(new(OrderRepoMock), new(OrderItemRepoMock), new(ProductRepoMock), new(PriceRepoMock), now)

	//空カート
	_, err := uc.Checkout(ctx, "u1", CheckoutInput{DeliveryAddr: validAddress()})
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//住所不備
	addr := validAddress()
	addr.Street = "  "
	_, err = uc.Checkout(ctx, "u1", CheckoutInput{Items: []cart.Item{cartItem("p1", 1)}, DeliveryAddr: addr})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//未ログイン
	_, err = uc.Checkout(ctx, "", CheckoutInput{Items: []cart.Item{cartItem("p1", 1)}, DeliveryAddr: validAddress()})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestGetMyOrderDetailHidesOtherUsersOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	uc := newOrderUsecase(orders, items, new(ProductRepoMock), new(PriceRepoMock), now)

	orders.On("FindByID", ctx, "o1").Return(model.Order{ID: "o1", UserID: "someone-else"}, nil)

	_, err := uc.GetMyOrderDetail(ctx, "u1", "o1")

	//他人の注文は存在ごと隠す
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	items.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestListMyOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	uc := newOrderUsecase(orders, items, new(ProductRepoMock), new(PriceRepoMock), now)

	orders.On("ListByUserID", ctx, "u1").Return([]model.Order{
		{ID: "o1", UserID: "u1", Status: model.OrderStatusPlaced},
		{ID: "o2", UserID: "u1", Status: model.OrderStatusFulfilled},
	}, nil)
	items.On("ListByOrderID", ctx, "o1").Return([]model.OrderItem{}, nil)
	items.On("ListByOrderID", ctx, "o2").Return([]model.OrderItem{}, nil)

	out, err := uc.ListMyOrders(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}
