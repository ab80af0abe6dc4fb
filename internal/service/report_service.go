package service

import (
	"context"
	"fmt"

	"crm/internal/domain"
	"crm/internal/repository"
)

// ReportService агрегаты для отчётов: клиенты, заказы, выручка
type ReportService struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
}

func NewReportService(customers repository.CustomerRepository, orders repository.OrderRepository) *ReportService {
	return &ReportService{customers: customers, orders: orders}
}

func (s *ReportService) Totals(ctx context.Context) (*domain.Totals, error) {
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	revenue, err := s.orders.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}
	return &domain.Totals{Customers: customers, Orders: orders, Revenue: revenue}, nil
}
