package cart

import (
	"context"

	"mestej/internal/domain/model"

	"github.com/shopspring/decimal"
)

// カートに入れた時点の商品情報。
// Priceがnilの商品は「価格はお問い合わせ」。
type ProductSnapshot struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	ProductType  model.ProductType  `json:"product_type"`
	ImageURL     string             `json:"image_url,omitempty"`
	Price        *decimal.Decimal   `json:"price"`
	Currency     string             `json:"currency"`
	Availability model.Availability `json:"availability"`
}

type Item struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int64           `json:"quantity"`
}

type Logger interface {
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...interface{}) {}

// Manager は1つのカートトークンに紐づく買い物カゴ。
// メモリ上のitemsが正で、変更のたびにStoreへ保存する。
// 保存に失敗してもログを出すだけで操作は成功扱い
// （このセッションの間はメモリのカートがそのまま使える）。
type Manager struct {
	store Store
	token string
	log   Logger
	items []Item
}

func NewManager(store Store, token string, log Logger) *Manager {
	if log == nil {
		log = nopLogger{}
	}
	return &Manager{
		store: store,
		token: token,
		log:   log,
		items: []Item{},
	}
}

// Load はStoreからカートを復元する。
// 商品IDが無い・数量が0以下の壊れた明細は黙って捨てる。
// 読み込み失敗は空のカートで開始する。
func (m *Manager) Load(ctx context.Context) {
	saved, err := m.store.Load(ctx, m.token)
	if err != nil {
		m.log.Warnf("cart: load failed for token %s: %v", m.token, err)
		m.items = []Item{}
		return
	}

	valid := make([]Item, 0, len(saved))
	for _, it := range saved {
		if it.Product.ID == "" || it.Quantity <= 0 {
			continue
		}
		valid = append(valid, it)
	}
	m.items = valid
}

// AddItem は商品を数量分追加する。同じ商品は数量を加算する。
// quantity > 0 は呼び出し側の責任。
func (m *Manager) AddItem(ctx context.Context, product ProductSnapshot, quantity int64) {
	for i := range m.items {
		if m.items[i].Product.ID == product.ID {
			m.items[i].Quantity += quantity
			m.persist(ctx)
			return
		}
	}

	m.items = append(m.items, Item{Product: product, Quantity: quantity})
	m.persist(ctx)
}

// RemoveItem は明細を削除する。無ければ何もしない。
func (m *Manager) RemoveItem(ctx context.Context, productID string) {
	next := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		if it.Product.ID != productID {
			next = append(next, it)
		}
	}
	m.items = next
	m.persist(ctx)
}

// UpdateQuantity は数量を直接設定する。0以下は削除と同じ。
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int64) {
	if quantity <= 0 {
		m.RemoveItem(ctx, productID)
		return
	}

	for i := range m.items {
		if m.items[i].Product.ID == productID {
			m.items[i].Quantity = quantity
			break
		}
	}
	m.persist(ctx)
}

// Clear はカートを空にしてStoreからも消す。
func (m *Manager) Clear(ctx context.Context) {
	m.items = []Item{}
	if err := m.store.Delete(ctx, m.token); err != nil {
		m.log.Warnf("cart: clear failed for token %s: %v", m.token, err)
	}
}

// GetItemQuantity は商品の数量。カートに無ければ0。
func (m *Manager) GetItemQuantity(productID string) int64 {
	for _, it := range m.items {
		if it.Product.ID == productID {
			return it.Quantity
		}
	}
	return 0
}

// GetTotalItems は全明細の数量合計。
func (m *Manager) GetTotalItems() int64 {
	var total int64
	for _, it := range m.items {
		total += it.Quantity
	}
	return total
}

// GetSubtotal は小計。
// 価格お問い合わせ（Price=nil）の明細は0円として数える。
// お問い合わせ商品が混ざったカートの小計は購入可能な合計ではない点に注意。
func (m *Manager) GetSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range m.items {
		if it.Product.Price == nil {
			continue
		}
		line := it.Product.Price.Mul(decimal.NewFromInt(it.Quantity))
		total = total.Add(line)
	}
	return total
}

func (m *Manager) Items() []Item {
	return m.items
}

func (m *Manager) persist(ctx context.Context) {
	if err := m.store.Save(ctx, m.token, m.items); err != nil {
		m.log.Warnf("cart: save failed for token %s: %v", m.token, err)
	}
}
