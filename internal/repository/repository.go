package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
)

var (
	// ErrNotFound возвращается, когда сущность не найдена
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey возвращается при нарушении уникальности (email клиента)
	ErrDuplicateKey = errors.New("duplicate key")
)

// CustomerFilter параметры списка клиентов
type CustomerFilter struct {
	NameSubstring string
	OrderBy       Sort
}

// ProductFilter параметры фильтрации списка товаров
type ProductFilter struct {
	NameSubstring string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	StockBelow    *int64
	OrderBy       Sort
}

// OrderFilter параметры фильтрации списка заказов
type OrderFilter struct {
	CustomerID   *int64
	OrderDateGte *time.Time
	OrderDateLte *time.Time
	OrderBy      Sort
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, f CustomerFilter) ([]domain.Customer, error)
	Count(ctx context.Context) (int64, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetByIDs возвращает найденные товары без повторов, в порядке возрастания id
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Stores набор репозиториев одного движка хранения
type Stores struct {
	Customers CustomerRepository
	Products  ProductRepository
	Orders    OrderRepository
	Tx        TxManager
	Close     func() error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
