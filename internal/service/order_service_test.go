package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/domain"
	"crm/internal/events"
)

type orderFixture struct {
	services
	customer *domain.Customer
	p1, p2   *domain.Product
}

func setupOrders(t *testing.T) orderFixture {
	t.Helper()
	ctx := context.Background()
	s := setup(t)
	c, _, err := s.customers.Create(ctx, domain.CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	p1, err := s.products.Create(ctx, productOf("Notebook", "10.00", 5))
	require.NoError(t, err)
	p2, err := s.products.Create(ctx, productOf("Pen", "5.00", 5))
	require.NoError(t, err)
	return orderFixture{services: s, customer: c, p1: p1, p2: p2}
}

func TestCreateOrder_TotalIsSumOfPrices(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)

	o, err := f.orders.CreateOrder(ctx, f.customer.ID, []int64{f.p1.ID, f.p2.ID}, nil)
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(money("15.00")), "total %s", o.TotalAmount)
	assert.Equal(t, testNow, o.OrderDate)
	assert.Equal(t, []int64{f.p1.ID, f.p2.ID}, o.ProductIDs)
	assert.Contains(t, f.events.types(), events.OrderCreated)

	// stock untouched
	p1, err := f.products.GetByID(ctx, f.p1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, p1.Stock)
}

func TestCreateOrder_ExplicitDate(t *testing.T) {
	f := setupOrders(t)
	when := time.Date(2024, 12, 24, 18, 0, 0, 0, time.FixedZone("CET", 3600))

	o, err := f.orders.CreateOrder(context.Background(), f.customer.ID, []int64{f.p1.ID}, &when)
	require.NoError(t, err)
	assert.True(t, o.OrderDate.Equal(when))
	assert.Equal(t, time.UTC, o.OrderDate.Location())
}

func TestCreateOrder_Rejections(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)

	tests := []struct {
		name       string
		customerID int64
		productIDs []int64
		kind       error
		msg        string
	}{
		{"unknown customer", f.customer.ID + 100, []int64{f.p1.ID}, domain.ErrNotFound, "Invalid customer ID"},
		{"empty products", f.customer.ID, nil, domain.ErrInvalid, "At least one product must be selected"},
		{"duplicate product id", f.customer.ID, []int64{f.p1.ID, f.p1.ID}, domain.ErrInvalid, "One or more invalid product IDs"},
		{"unknown product id", f.customer.ID, []int64{f.p1.ID, 999}, domain.ErrInvalid, "One or more invalid product IDs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.CreateOrder(ctx, tt.customerID, tt.productIDs, nil)
			require.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.msg, err.Error())
		})
	}

	list, err := f.orders.List(ctx, OrderQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotContains(t, f.events.types(), events.OrderCreated)
}

func TestCreateOrder_TotalIsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)
	o, err := f.orders.CreateOrder(ctx, f.customer.ID, []int64{f.p1.ID}, nil)
	require.NoError(t, err)

	// restock mutates the product; the order keeps its total
	_, err = f.products.UpdateLowStock(ctx)
	require.NoError(t, err)

	got, err := f.orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(money("10")))
}

func TestOrders_ListFilter(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)
	other, _, err := f.customers.Create(ctx, domain.CustomerInput{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	old := testNow.Add(-10 * 24 * time.Hour)
	recent := testNow.Add(-3 * 24 * time.Hour)
	o1, err := f.orders.CreateOrder(ctx, f.customer.ID, []int64{f.p1.ID}, &old)
	require.NoError(t, err)
	o2, err := f.orders.CreateOrder(ctx, other.ID, []int64{f.p1.ID, f.p2.ID}, &recent)
	require.NoError(t, err)

	since := testNow.Add(-7 * 24 * time.Hour)
	list, err := f.orders.List(ctx, OrderQuery{OrderDateGte: &since})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o2.ID, list[0].ID)

	list, err = f.orders.List(ctx, OrderQuery{CustomerID: &f.customer.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o1.ID, list[0].ID)

	list, err = f.orders.List(ctx, OrderQuery{OrderBy: "-totalAmount"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, o2.ID, list[0].ID)

	_, err = f.orders.List(ctx, OrderQuery{OrderBy: "customer"})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestOrders_Relations(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)
	o, err := f.orders.CreateOrder(ctx, f.customer.ID, []int64{f.p2.ID, f.p1.ID}, nil)
	require.NoError(t, err)

	c, err := f.orders.Customer(ctx, *o)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "alice@example.com", c.Email)

	ps, err := f.orders.Products(ctx, *o)
	require.NoError(t, err)
	assert.Len(t, ps, 2)

	orphan := domain.Order{CustomerID: 404}
	c, err = f.orders.Customer(ctx, orphan)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestReport_Totals(t *testing.T) {
	ctx := context.Background()
	f := setupOrders(t)
	_, err := f.orders.CreateOrder(ctx, f.customer.ID, []int64{f.p1.ID, f.p2.ID}, nil)
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(ctx, f.customer.ID, []int64{f.p2.ID}, nil)
	require.NoError(t, err)

	totals, err := f.reports.Totals(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, totals.Customers)
	assert.EqualValues(t, 2, totals.Orders)
	assert.True(t, totals.Revenue.Equal(money("20.00")), "revenue %s", totals.Revenue)
}
