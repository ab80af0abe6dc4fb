package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
	"crm/internal/events"
	"crm/internal/repository"
	"crm/internal/validation"
)

// OrderService реализует логику заказов: создание и чтение
type OrderService struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	tx        repository.TxManager
	deps      Deps
}

func NewOrderService(customers repository.CustomerRepository, products repository.ProductRepository, orders repository.OrderRepository, tx repository.TxManager, deps Deps) *OrderService {
	return &OrderService{customers: customers, products: products, orders: orders, tx: tx, deps: deps.withDefaults()}
}

// OrderQuery фильтр и сортировка списка заказов
type OrderQuery struct {
	OrderBy      string
	CustomerID   *int64
	OrderDateGte *time.Time
	OrderDateLte *time.Time
}

// CreateOrder атомарно проверяет клиента и товары и фиксирует сумму по текущим ценам.
// Запас товаров при этом не списывается.
func (s *OrderService) CreateOrder(ctx context.Context, customerID int64, productIDs []int64, orderDate *time.Time) (*domain.Order, error) {
	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.GetByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFound("Invalid customer ID")
			}
			return err
		}
		if len(productIDs) == 0 {
			return validation.ProductIDs(productIDs, 0)
		}

		// duplicates collapse in GetByIDs, so [p1, p1] resolves to 1 of 2
		products, err := s.products.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		if err := validation.ProductIDs(productIDs, len(products)); err != nil {
			return err
		}

		total := decimal.Zero
		ids := make([]int64, 0, len(products))
		for _, p := range products {
			total = total.Add(p.Price)
			ids = append(ids, p.ID)
		}
		date := s.deps.Clock.Now()
		if orderDate != nil && !orderDate.IsZero() {
			date = *orderDate
		}

		o := domain.Order{
			CustomerID:  customer.ID,
			ProductIDs:  ids,
			TotalAmount: total,
			OrderDate:   date.UTC(),
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, wrap("create order", err)
	}
	s.deps.publish(ctx, events.OrderCreated, created.ID, created)
	return created, nil
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.NotFound("Order not found")
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Order")
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context, q OrderQuery) ([]domain.Order, error) {
	sort, err := parseSort(repository.KindOrder, q.OrderBy)
	if err != nil {
		return nil, err
	}
	return s.orders.List(ctx, repository.OrderFilter{
		CustomerID:   q.CustomerID,
		OrderDateGte: q.OrderDateGte,
		OrderDateLte: q.OrderDateLte,
		OrderBy:      sort,
	})
}

// Customer returns the order's customer, or nil when it no longer resolves.
func (s *OrderService) Customer(ctx context.Context, o domain.Order) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, o.CustomerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load order customer: %w", err)
	}
	return c, nil
}

func (s *OrderService) Products(ctx context.Context, o domain.Order) ([]domain.Product, error) {
	return s.products.GetByIDs(ctx, o.ProductIDs)
}
