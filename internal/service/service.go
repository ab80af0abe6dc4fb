package service

import (
	"context"
	"errors"
	"fmt"

	"crm/internal/clock"
	"crm/internal/domain"
	"crm/internal/events"
	"crm/internal/logger"
	"crm/internal/repository"
)

// Deps общие зависимости сервисов
type Deps struct {
	Events events.Publisher
	Clock  clock.Clock
	Log    *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Clock == nil {
		d.Clock = clock.System{}
	}
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	return d
}

// publish is best-effort: a failed publication is logged, never returned.
func (d Deps) publish(ctx context.Context, typ string, id int64, payload any) {
	err := d.Events.Publish(ctx, events.Event{
		Type:       typ,
		EntityID:   id,
		OccurredAt: d.Clock.Now(),
		Payload:    payload,
	})
	if err != nil {
		d.Log.Warn("event publish failed", "type", typ, "entity_id", id, "error", err)
	}
}

func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound("%s not found", what)
	}
	return err
}

func parseSort(kind repository.Kind, orderBy string) (repository.Sort, error) {
	s, err := repository.ParseSort(kind, orderBy)
	if err != nil {
		return s, domain.Invalid("%s", err.Error())
	}
	return s, nil
}

func wrap(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Services набор сервисов поверх одного хранилища
type Services struct {
	Customers *CustomerService
	Products  *ProductService
	Orders    *OrderService
	Reports   *ReportService
}

func New(stores repository.Stores, deps Deps) *Services {
	return &Services{
		Customers: NewCustomerService(stores.Customers, deps),
		Products:  NewProductService(stores.Products, stores.Tx, deps),
		Orders:    NewOrderService(stores.Customers, stores.Products, stores.Orders, stores.Tx, deps),
		Reports:   NewReportService(stores.Customers, stores.Orders),
	}
}
