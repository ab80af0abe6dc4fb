package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
)

// MemoryStore объединённое in-memory хранилище и простой генератор ID
type MemoryStore struct {
	mu              sync.RWMutex
	nextCustomerID  int64
	nextProdID      int64
	nextOrderID     int64
	customersByID   map[int64]domain.Customer
	customerByEmail map[string]int64
	productsByID    map[int64]domain.Product
	ordersByID      map[int64]domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextCustomerID:  1,
		nextProdID:      1,
		nextOrderID:     1,
		customersByID:   make(map[int64]domain.Customer),
		customerByEmail: make(map[string]int64),
		productsByID:    make(map[int64]domain.Product),
		ordersByID:      make(map[int64]domain.Order),
	}
}

// NewMemoryStores собирает все репозитории поверх одного MemoryStore
func NewMemoryStores() Stores {
	store := NewMemoryStore()
	return Stores{
		Customers: NewMemoryCustomers(store),
		Products:  NewMemoryProducts(store),
		Orders:    NewMemoryOrders(store),
		Tx:        NewMemoryTx(store),
		Close:     func() error { return nil },
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// CustomerRepository implementation on wrapper type
type MemoryCustomers struct{ store *MemoryStore }

func NewMemoryCustomers(store *MemoryStore) *MemoryCustomers { return &MemoryCustomers{store: store} }

var _ CustomerRepository = (*MemoryCustomers)(nil)

func (mc *MemoryCustomers) Create(ctx context.Context, c *domain.Customer) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	if _, taken := mc.store.customerByEmail[c.Email]; taken {
		return ErrDuplicateKey
	}
	c.ID = mc.store.nextCustomerID
	mc.store.nextCustomerID++
	mc.store.customersByID[c.ID] = *c
	mc.store.customerByEmail[c.Email] = c.ID
	return nil
}

func (mc *MemoryCustomers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.customersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (mc *MemoryCustomers) EmailExists(ctx context.Context, email string) (bool, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	_, ok := mc.store.customerByEmail[email]
	return ok, nil
}

func (mc *MemoryCustomers) List(ctx context.Context, f CustomerFilter) ([]domain.Customer, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.Customer, 0, len(mc.store.customersByID))
	for _, c := range mc.store.customersByID {
		if !containsIgnoreCase(c.Name, f.NameSubstring) {
			continue
		}
		out = append(out, c)
	}
	sortSlice(out, f.OrderBy, func(a, b domain.Customer, col string) int {
		switch col {
		case "name":
			return strings.Compare(a.Name, b.Name)
		case "email":
			return strings.Compare(a.Email, b.Email)
		}
		return compareInt(a.ID, b.ID)
	}, func(c domain.Customer) int64 { return c.ID })
	return out, nil
}

func (mc *MemoryCustomers) Count(ctx context.Context) (int64, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	return int64(len(mc.store.customersByID)), nil
}

// ProductRepository implementation on wrapper type
type MemoryProducts struct{ store *MemoryStore }

func NewMemoryProducts(store *MemoryStore) *MemoryProducts { return &MemoryProducts{store: store} }

var _ ProductRepository = (*MemoryProducts)(nil)

func (mp *MemoryProducts) Create(ctx context.Context, p *domain.Product) error {
	mp.store.wlock(ctx)
	defer mp.store.wunlock(ctx)
	p.ID = mp.store.nextProdID
	mp.store.nextProdID++
	mp.store.productsByID[p.ID] = *p
	return nil
}

func (mp *MemoryProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	mp.store.rlock(ctx)
	defer mp.store.runlock(ctx)
	p, ok := mp.store.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (mp *MemoryProducts) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	mp.store.rlock(ctx)
	defer mp.store.runlock(ctx)
	out := make([]domain.Product, 0, len(ids))
	for _, id := range dedupeIDs(ids) {
		if p, ok := mp.store.productsByID[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (mp *MemoryProducts) Update(ctx context.Context, p *domain.Product) error {
	mp.store.wlock(ctx)
	defer mp.store.wunlock(ctx)
	if _, ok := mp.store.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	mp.store.productsByID[p.ID] = *p
	return nil
}

func (mp *MemoryProducts) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	mp.store.rlock(ctx)
	defer mp.store.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range mp.store.productsByID {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.StockBelow != nil && p.Stock >= *f.StockBelow {
			continue
		}
		out = append(out, p)
	}
	sortSlice(out, f.OrderBy, func(a, b domain.Product, col string) int {
		switch col {
		case "name":
			return strings.Compare(a.Name, b.Name)
		case "price":
			return a.Price.Cmp(b.Price)
		case "stock":
			return compareInt(a.Stock, b.Stock)
		}
		return compareInt(a.ID, b.ID)
	}, func(p domain.Product) int64 { return p.ID })
	return out, nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = mo.store.nextOrderID
	mo.store.nextOrderID++
	cp := *o
	cp.ProductIDs = append([]int64(nil), o.ProductIDs...)
	mo.store.ordersByID[o.ID] = cp
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	cp.ProductIDs = append([]int64(nil), o.ProductIDs...)
	return &cp, nil
}

func (mo *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range mo.store.ordersByID {
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		if f.OrderDateGte != nil && o.OrderDate.Before(*f.OrderDateGte) {
			continue
		}
		if f.OrderDateLte != nil && o.OrderDate.After(*f.OrderDateLte) {
			continue
		}
		o.ProductIDs = append([]int64(nil), o.ProductIDs...)
		out = append(out, o)
	}
	sortSlice(out, f.OrderBy, func(a, b domain.Order, col string) int {
		switch col {
		case "order_date":
			return a.OrderDate.Compare(b.OrderDate)
		case "total_amount":
			return a.TotalAmount.Cmp(b.TotalAmount)
		}
		return compareInt(a.ID, b.ID)
	}, func(o domain.Order) int64 { return o.ID })
	return out, nil
}

func (mo *MemoryOrders) Count(ctx context.Context) (int64, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	return int64(len(mo.store.ordersByID)), nil
}

func (mo *MemoryOrders) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	total := decimal.Zero
	for _, o := range mo.store.ordersByID {
		total = total.Add(o.TotalAmount)
	}
	return total, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if isTx(ctx) {
		return fn(ctx)
	}
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи.
	// Откат не поддерживается: сервисы проверяют все условия до первой записи.
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}

// sortSlice orders by the requested column; ties fall back to id ascending.
func sortSlice[T any](items []T, s Sort, cmp func(a, b T, col string) int, id func(T) int64) {
	col := s.column()
	sort.SliceStable(items, func(i, j int) bool {
		c := cmp(items[i], items[j], col)
		if s.Desc {
			c = -c
		}
		if c == 0 {
			return id(items[i]) < id(items[j])
		}
		return c < 0
	})
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
