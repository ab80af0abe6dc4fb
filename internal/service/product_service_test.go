package service

import (
	"context"
	"errors"
	"testing"

	"crm/internal/domain"
	"crm/internal/events"
)

func productOf(name, price string, stock int64) domain.Product {
	return domain.Product{Name: name, Price: money(price), Stock: stock}
}

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	p, err := s.products.Create(ctx, productOf("Laptop", "999.99", 10))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected id assigned")
	}
	if got := s.events.types(); len(got) != 1 || got[0] != events.ProductCreated {
		t.Fatalf("events: %v", got)
	}
}

func TestProduct_Create_DefaultStock(t *testing.T) {
	s := setup(t)
	p, err := s.products.Create(context.Background(), domain.Product{Name: "Cable", Price: money("2")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Stock != 0 {
		t.Fatalf("stock = %d", p.Stock)
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	cases := []struct {
		in  domain.Product
		msg string
	}{
		{productOf("", "1", 1), "Name is required"},
		{productOf("N", "0", 1), "Price must be positive"},
		{productOf("N", "-1", 1), "Price must be positive"},
		{productOf("N", "1", -1), "Stock cannot be negative"},
		// stores keep two decimal places; 0.004 would be persisted as 0.00
		{productOf("N", "0.004", 1), "Price must have at most 2 decimal places"},
		// price is checked before stock
		{productOf("N", "0", -1), "Price must be positive"},
	}
	for _, tc := range cases {
		_, err := s.products.Create(ctx, tc.in)
		if !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("%+v: expected invalid, got %v", tc.in, err)
		}
		if err.Error() != tc.msg {
			t.Fatalf("%+v: message %q, want %q", tc.in, err.Error(), tc.msg)
		}
	}
	list, _ := s.products.List(ctx, ProductQuery{})
	if len(list) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(list))
	}
}

func TestProduct_GetByID_NotFound(t *testing.T) {
	s := setup(t)
	_, err := s.products.GetByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProduct_UpdateLowStock(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	a, _ := s.products.Create(ctx, productOf("A", "1", 3))
	b, _ := s.products.Create(ctx, productOf("B", "1", 15))
	c, _ := s.products.Create(ctx, productOf("C", "1", 9))

	res, err := s.products.UpdateLowStock(ctx)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if res.Message != "Low stock products updated successfully." {
		t.Fatalf("message: %q", res.Message)
	}
	want := []string{"A: 13", "C: 19"}
	if len(res.UpdatedProducts) != len(want) {
		t.Fatalf("updated: %v", res.UpdatedProducts)
	}
	for i := range want {
		if res.UpdatedProducts[i] != want[i] {
			t.Fatalf("updated[%d] = %q, want %q", i, res.UpdatedProducts[i], want[i])
		}
	}

	for _, tc := range []struct {
		id    int64
		stock int64
	}{{a.ID, 13}, {b.ID, 15}, {c.ID, 19}} {
		p, err := s.products.GetByID(ctx, tc.id)
		if err != nil {
			t.Fatal(err)
		}
		if p.Stock != tc.stock {
			t.Fatalf("product %d stock = %d, want %d", tc.id, p.Stock, tc.stock)
		}
	}

	again, err := s.products.UpdateLowStock(ctx)
	if err != nil {
		t.Fatalf("second restock: %v", err)
	}
	if again.Message != "No low stock products found." || len(again.UpdatedProducts) != 0 {
		t.Fatalf("second run: %+v", again)
	}
}

func TestProduct_UpdateLowStock_PublishesPerProduct(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	_, _ = s.products.Create(ctx, productOf("A", "1", 0))
	_, _ = s.products.Create(ctx, productOf("B", "1", 1))
	if _, err := s.products.UpdateLowStock(ctx); err != nil {
		t.Fatal(err)
	}
	restocked := 0
	for _, typ := range s.events.types() {
		if typ == events.ProductRestocked {
			restocked++
		}
	}
	if restocked != 2 {
		t.Fatalf("restocked events = %d", restocked)
	}
}

func TestProduct_List_OrderBy(t *testing.T) {
	ctx := context.Background()
	s := setup(t)
	_, _ = s.products.Create(ctx, productOf("B", "5", 1))
	_, _ = s.products.Create(ctx, productOf("A", "20", 1))
	_, _ = s.products.Create(ctx, productOf("C", "10", 1))

	list, err := s.products.List(ctx, ProductQuery{OrderBy: "-price"})
	if err != nil {
		t.Fatal(err)
	}
	if list[0].Name != "A" || list[1].Name != "C" || list[2].Name != "B" {
		t.Fatalf("order: %v", list)
	}

	if _, err := s.products.List(ctx, ProductQuery{OrderBy: "price; drop table products"}); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid orderBy, got %v", err)
	}
}
