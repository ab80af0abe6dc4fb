package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"crm/internal/clock"
	"crm/internal/events"
	"crm/internal/repository"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type services struct {
	customers *CustomerService
	products  *ProductService
	orders    *OrderService
	reports   *ReportService
	events    *recordingPublisher
	clock     *clock.Fixed
}

func setup(t *testing.T) services {
	t.Helper()
	stores := repository.NewMemoryStores()
	pub := &recordingPublisher{}
	clk := clock.NewFixed(testNow)
	deps := Deps{Events: pub, Clock: clk}
	return services{
		customers: NewCustomerService(stores.Customers, deps),
		products:  NewProductService(stores.Products, stores.Tx, deps),
		orders:    NewOrderService(stores.Customers, stores.Products, stores.Orders, stores.Tx, deps),
		reports:   NewReportService(stores.Customers, stores.Orders),
		events:    pub,
		clock:     clk,
	}
}

func TestPublishFailureIsNotReturned(t *testing.T) {
	stores := repository.NewMemoryStores()
	deps := Deps{Events: &recordingPublisher{err: errors.New("broker down")}}
	ps := NewProductService(stores.Products, stores.Tx, deps)

	p, err := ps.Create(context.Background(), productOf("Pen", "1.50", 3))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected id assigned")
	}
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }
