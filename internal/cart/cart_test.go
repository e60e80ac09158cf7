package cart

import (
	"context"
	"errors"
	"testing"

	"mestej/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func snapshot(id string, name string, price string) ProductSnapshot {
	var p *decimal.Decimal
	if price != "" {
		v := decimal.RequireFromString(price)
		p = &v
	}
	return ProductSnapshot{
		ID:           id,
		Name:         name,
		ProductType:  model.ProductTypeWine,
		Price:        p,
		Currency:     "SEK",
		Availability: model.AvailabilityInStock,
	}
}

func newTestCart(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	m := NewManager(store, "token-1", nil)
	m.Load(context.Background())
	return m, store
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 2)
	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 3)

	assert.Equal(t, int64(5), m.GetItemQuantity("p1"))
	assert.Len(t, m.Items(), 1)
	assert.Equal(t, int64(5), m.GetTotalItems())
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 2)
	m.UpdateQuantity(ctx, "p1", 7)
	assert.Equal(t, int64(7), m.GetItemQuantity("p1"))

	//0は削除と同じ
	m.UpdateQuantity(ctx, "p1", 0)
	assert.Equal(t, int64(0), m.GetItemQuantity("p1"))
	assert.Empty(t, m.Items())

	//負数も削除と同じ
	m.AddItem(ctx, snapshot("p2", "Vidal Ice", "349.00"), 1)
	m.UpdateQuantity(ctx, "p2", -1)
	assert.Empty(t, m.Items())
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 2)
	m.AddItem(ctx, snapshot("p2", "Vidal Ice", "349.00"), 1)

	m.RemoveItem(ctx, "p1")
	assert.Equal(t, int64(0), m.GetItemQuantity("p1"))
	assert.Equal(t, int64(1), m.GetItemQuantity("p2"))

	//存在しない商品の削除は何もしない
	m.RemoveItem(ctx, "missing")
	assert.Len(t, m.Items(), 1)
}

func TestGetSubtotal(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 2)
	m.AddItem(ctx, snapshot("p2", "Vidal Ice", "349.50"), 1)

	want := decimal.RequireFromString("727.50")
	assert.True(t, m.GetSubtotal().Equal(want), "got %s", m.GetSubtotal())
}

func TestGetSubtotalPriceOnRequestCountsAsZero(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestCart(t)

	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 1)
	//価格お問い合わせ商品
	m.AddItem(ctx, snapshot("p2", "Limited Release", ""), 3)

	want := decimal.RequireFromString("189.00")
	assert.True(t, m.GetSubtotal().Equal(want), "got %s", m.GetSubtotal())
	assert.Equal(t, int64(4), m.GetTotalItems())
}

func TestCartPersistsAcrossManagers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	m1 := NewManager(store, "token-1", nil)
	m1.Load(ctx)
	m1.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 2)

	//別のManagerで同じtokenを開くと中身が復元される
	m2 := NewManager(store, "token-1", nil)
	m2.Load(ctx)
	assert.Equal(t, int64(2), m2.GetItemQuantity("p1"))

	//別tokenのカートは空
	m3 := NewManager(store, "token-2", nil)
	m3.Load(ctx)
	assert.Empty(t, m3.Items())
}

func TestLoadDropsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	//商品ID無し・数量0以下の明細が混ざった保存データ
	err := store.Save(ctx, "token-1", []Item{
		{Product: snapshot("p1", "Solaris 2023", "189.00"), Quantity: 2},
		{Product: snapshot("", "broken", "10.00"), Quantity: 1},
		{Product: snapshot("p3", "Vidal Ice", "349.00"), Quantity: 0},
		{Product: snapshot("p4", "Rosé", "159.00"), Quantity: -2},
	})
	assert.NoError(t, err)

	m := NewManager(store, "token-1", nil)
	m.Load(ctx)

	assert.Len(t, m.Items(), 1)
	assert.Equal(t, int64(2), m.GetItemQuantity("p1"))
}

type failingStore struct{}

func (failingStore) Load(ctx context.Context, token string) ([]Item, error) {
	return nil, errors.New("boom")
}
func (failingStore) Save(ctx context.Context, token string, items []Item) error {
	return errors.New("boom")
}
func (failingStore) Delete(ctx context.Context, token string) error {
	return errors.New("boom")
}

func TestStoreFailuresDoNotBreakCart(t *testing.T) {
	ctx := context.Background()
	m := NewManager(failingStore{}, "token-1", nil)

	//読めなければ空のカートで開始
	m.Load(ctx)
	assert.Empty(t, m.Items())

	//保存に失敗しても操作は成功扱い（メモリ上は反映される）
	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 2)
	assert.Equal(t, int64(2), m.GetItemQuantity("p1"))

	m.Clear(ctx)
	assert.Empty(t, m.Items())
}

func TestClearEmptiesStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	m := NewManager(store, "token-1", nil)
	m.Load(ctx)
	m.AddItem(ctx, snapshot("p1", "Solaris 2023", "189.00"), 2)
	m.Clear(ctx)

	m2 := NewManager(store, "token-1", nil)
	m2.Load(ctx)
	assert.Empty(t, m2.Items())
}
