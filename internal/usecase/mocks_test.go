package usecase

import (
	"context"
	"fmt"
	"time"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos
// =====================

// txManagerStub は WithinTx の中で渡す repos を固定して unit テストを回す
type txManagerStub struct {
	Repos repo.TxRepos
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type txReposStub struct {
	users      repo.UserRepository
	products   repo.ProductRepository
	prices     repo.ProductPriceRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *txReposStub) Users() repo.UserRepository                 { return r.users }
func (r *txReposStub) Products() repo.ProductRepository           { return r.products }
func (r *txReposStub) ProductPrices() repo.ProductPriceRepository { return r.prices }
func (r *txReposStub) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository       { return r.orderItems }

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in these tests")
}

func (m *UserRepoMock) List(ctx context.Context, f repo.UserListFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, f)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepoMock) UpdateStatusIf(ctx context.Context, userID string, expected model.UserStatus, next model.UserStatus, approvedBy *string, approvedAt *time.Time) (bool, error) {
	args := m.Called(ctx, userID, expected, next, approvedBy, approvedAt)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatusIf(ctx context.Context, orderID string, expected model.OrderStatus, next model.OrderStatus, fulfilledAt *time.Time, cancelReason string) (bool, error) {
	args := m.Called(ctx, orderID, expected, next, fulfilledAt, cancelReason)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) ListAdmin(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) UpdateAvailability(ctx context.Context, id string, availability model.Availability) error {
	args := m.Called(ctx, id, availability)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PriceRepoMock struct{ mock.Mock }

func (m *PriceRepoMock) ListByProductIDs(ctx context.Context, productIDs []string) ([]model.ProductPrice, error) {
	args := m.Called(ctx, productIDs)
	prices, _ := args.Get(0).([]model.ProductPrice)
	return prices, args.Error(1)
}

func (m *PriceRepoMock) EndCurrent(ctx context.Context, productID string, at time.Time) error {
	args := m.Called(ctx, productID, at)
	return args.Error(0)
}

func (m *PriceRepoMock) Create(ctx context.Context, p model.ProductPrice) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type ActivityRepoMock struct{ mock.Mock }

func (m *ActivityRepoMock) Create(ctx context.Context, log model.AdminActivityLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *ActivityRepoMock) List(ctx context.Context, f repo.ActivityLogFilter) ([]model.AdminActivityLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AdminActivityLog)
	return logs, args.Error(1)
}

// =====================
// Clock / IDGenerator
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}
