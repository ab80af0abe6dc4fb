package service

import (
	"context"
	"errors"
	"fmt"

	"crm/internal/domain"
	"crm/internal/events"
	"crm/internal/repository"
	"crm/internal/validation"
)

const customerCreatedMessage = "Customer created successfully"

// CustomerService создание и чтение клиентов
type CustomerService struct {
	repo repository.CustomerRepository
	deps Deps
}

func NewCustomerService(repo repository.CustomerRepository, deps Deps) *CustomerService {
	return &CustomerService{repo: repo, deps: deps.withDefaults()}
}

// BulkResult итог пакетного создания: оба списка в порядке входных данных
type BulkResult struct {
	Customers []domain.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

// Create проверяет email, затем телефон; первая ошибка прерывает создание.
func (s *CustomerService) Create(ctx context.Context, in domain.CustomerInput) (*domain.Customer, string, error) {
	if err := validation.EmailUnique(ctx, s.repo.EmailExists, in.Email); err != nil {
		return nil, "", wrap("check email", err)
	}
	if err := validation.Phone(in.Phone); err != nil {
		return nil, "", err
	}
	if err := validation.Name(in.Name); err != nil {
		return nil, "", err
	}

	c := domain.Customer{Name: in.Name, Email: in.Email, Phone: normalizePhone(in.Phone)}
	if err := s.repo.Create(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", domain.Conflict("Email already exists")
		}
		return nil, "", fmt.Errorf("create customer: %w", err)
	}
	s.deps.publish(ctx, events.CustomerCreated, c.ID, c)
	return &c, customerCreatedMessage, nil
}

// BulkCreate обрабатывает элементы по порядку; каждый успешный элемент
// фиксируется сразу, ошибки элементов собираются и не прерывают пакет.
func (s *CustomerService) BulkCreate(ctx context.Context, inputs []domain.CustomerInput) BulkResult {
	res := BulkResult{Customers: make([]domain.Customer, 0, len(inputs)), Errors: make([]string, 0)}
	for _, in := range inputs {
		c, err := s.createItem(ctx, in)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Customers = append(res.Customers, *c)
	}
	return res
}

func (s *CustomerService) createItem(ctx context.Context, in domain.CustomerInput) (*domain.Customer, error) {
	err := validation.EmailUnique(ctx, s.repo.EmailExists, in.Email)
	switch {
	case errors.Is(err, domain.ErrConflict):
		return nil, fmt.Errorf("%s already exists", in.Email)
	case err != nil:
		return nil, err
	}
	if err := validation.Phone(in.Phone); err != nil {
		return nil, fmt.Errorf("Invalid phone for %s", in.Email)
	}
	if err := validation.Name(in.Name); err != nil {
		return nil, fmt.Errorf("Name is required for %s", in.Email)
	}

	c := domain.Customer{Name: in.Name, Email: in.Email, Phone: normalizePhone(in.Phone)}
	if err := s.repo.Create(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%s already exists", in.Email)
		}
		s.deps.Log.Error("bulk create customer failed", "error", err)
		return nil, err
	}
	s.deps.publish(ctx, events.CustomerCreated, c.ID, c)
	return &c, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if id <= 0 {
		return nil, domain.NotFound("Customer not found")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Customer")
	}
	return c, nil
}

// List returns customers sorted by the allow-listed orderBy field.
func (s *CustomerService) List(ctx context.Context, orderBy string) ([]domain.Customer, error) {
	sort, err := parseSort(repository.KindCustomer, orderBy)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, repository.CustomerFilter{OrderBy: sort})
}

func normalizePhone(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}
