package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
	"crm/internal/events"
	"crm/internal/repository"
	"crm/internal/validation"
)

const (
	restockDoneMessage = "Low stock products updated successfully."
	restockNoneMessage = "No low stock products found."
)

// ProductService инкапсулирует бизнес-логику вокруг товаров
type ProductService struct {
	repo repository.ProductRepository
	tx   repository.TxManager
	deps Deps
}

func NewProductService(repo repository.ProductRepository, tx repository.TxManager, deps Deps) *ProductService {
	return &ProductService{repo: repo, tx: tx, deps: deps.withDefaults()}
}

// RestockResult итог пополнения: сообщение и строки "<name>: <new stock>"
type RestockResult struct {
	Message         string   `json:"message"`
	UpdatedProducts []string `json:"updated_products"`
}

// Create проверяет имя, цену, затем запас (по умолчанию 0)
func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validation.Name(p.Name); err != nil {
		return nil, err
	}
	if err := validation.Price(p.Price); err != nil {
		return nil, err
	}
	if err := validation.Stock(p.Stock); err != nil {
		return nil, err
	}
	cp := p
	cp.ID = 0
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.deps.publish(ctx, events.ProductCreated, cp.ID, cp)
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.NotFound("Product not found")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product")
	}
	return p, nil
}

// ProductQuery фильтр и сортировка списка товаров
type ProductQuery struct {
	OrderBy      string
	NameContains string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
}

func (s *ProductService) List(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	sort, err := parseSort(repository.KindProduct, q.OrderBy)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, repository.ProductFilter{
		NameSubstring: q.NameContains,
		MinPrice:      q.MinPrice,
		MaxPrice:      q.MaxPrice,
		OrderBy:       sort,
	})
}

// UpdateLowStock пополняет все товары с запасом ниже порога на фиксированное количество.
// Повторный запуск найдёт меньше подходящих товаров, а не повторит результат.
func (s *ProductService) UpdateLowStock(ctx context.Context) (*RestockResult, error) {
	var restocked []domain.Product
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		threshold := domain.LowStockThreshold
		low, err := s.repo.List(ctx, repository.ProductFilter{StockBelow: &threshold})
		if err != nil {
			return err
		}
		for _, p := range low {
			p.Stock += domain.RestockQuantity
			if err := s.repo.Update(ctx, &p); err != nil {
				return err
			}
			restocked = append(restocked, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update low stock products: %w", err)
	}

	res := &RestockResult{Message: restockNoneMessage, UpdatedProducts: make([]string, 0, len(restocked))}
	for _, p := range restocked {
		res.UpdatedProducts = append(res.UpdatedProducts, fmt.Sprintf("%s: %d", p.Name, p.Stock))
		s.deps.publish(ctx, events.ProductRestocked, p.ID, p)
	}
	if len(restocked) > 0 {
		res.Message = restockDoneMessage
	}
	s.deps.Log.Info("low stock sweep finished", "updated", len(restocked))
	return res, nil
}
