package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/domain"
)

// runStoreContract checks behaviour both engines must share.
func runStoreContract(t *testing.T, newStores func(t *testing.T) Stores) {
	t.Run("customers", func(t *testing.T) {
		ctx := context.Background()
		s := newStores(t)

		c := domain.Customer{Name: "Alice", Email: "alice@x.com"}
		require.NoError(t, s.Customers.Create(ctx, &c))
		assert.NotZero(t, c.ID)

		dup := domain.Customer{Name: "Other", Email: "alice@x.com"}
		assert.ErrorIs(t, s.Customers.Create(ctx, &dup), ErrDuplicateKey)

		ok, err := s.Customers.EmailExists(ctx, "alice@x.com")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.Customers.EmailExists(ctx, "ALICE@x.com")
		require.NoError(t, err)
		assert.False(t, ok)

		// emails differing only in case are distinct customers
		upper := domain.Customer{Name: "Alice Upper", Email: "ALICE@x.com"}
		require.NoError(t, s.Customers.Create(ctx, &upper))
		ok, err = s.Customers.EmailExists(ctx, "ALICE@x.com")
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := s.Customers.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, *got)

		_, err = s.Customers.GetByID(ctx, c.ID+100)
		assert.ErrorIs(t, err, ErrNotFound)

		n, err := s.Customers.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("customer list", func(t *testing.T) {
		ctx := context.Background()
		s := newStores(t)
		for _, name := range []string{"Carol", "alice", "Bob"} {
			c := domain.Customer{Name: name, Email: name + "@x.com"}
			require.NoError(t, s.Customers.Create(ctx, &c))
		}

		list, err := s.Customers.List(ctx, CustomerFilter{OrderBy: Sort{Field: "email"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Bob", "Carol", "alice"}, customerNames(list))

		list, err = s.Customers.List(ctx, CustomerFilter{NameSubstring: "AL"})
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, customerNames(list))
	})

	t.Run("products", func(t *testing.T) {
		ctx := context.Background()
		s := newStores(t)
		a := domain.Product{Name: "A", Price: decimal.RequireFromString("10.50"), Stock: 3}
		b := domain.Product{Name: "B", Price: decimal.RequireFromString("2.25"), Stock: 15}
		c := domain.Product{Name: "C", Price: decimal.RequireFromString("7"), Stock: 9}
		for _, p := range []*domain.Product{&a, &b, &c} {
			require.NoError(t, s.Products.Create(ctx, p))
		}

		got, err := s.Products.GetByIDs(ctx, []int64{c.ID, a.ID, c.ID, 999})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, a.ID, got[0].ID)
		assert.Equal(t, c.ID, got[1].ID)

		below := int64(10)
		low, err := s.Products.List(ctx, ProductFilter{StockBelow: &below, OrderBy: Sort{Field: "stock", Desc: true}})
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A"}, productNames(low))

		byPrice, err := s.Products.List(ctx, ProductFilter{OrderBy: Sort{Field: "price"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "A"}, productNames(byPrice))

		minPrice := decimal.NewFromInt(5)
		priced, err := s.Products.List(ctx, ProductFilter{MinPrice: &minPrice})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, productNames(priced))

		a.Stock = 13
		require.NoError(t, s.Products.Update(ctx, &a))
		updated, err := s.Products.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 13, updated.Stock)
		assert.True(t, updated.Price.Equal(decimal.RequireFromString("10.50")))

		missing := domain.Product{ID: 999, Name: "X", Price: decimal.NewFromInt(1)}
		assert.ErrorIs(t, s.Products.Update(ctx, &missing), ErrNotFound)
	})

	t.Run("orders", func(t *testing.T) {
		ctx := context.Background()
		s := newStores(t)
		alice := domain.Customer{Name: "Alice", Email: "alice@x.com"}
		bob := domain.Customer{Name: "Bob", Email: "bob@x.com"}
		require.NoError(t, s.Customers.Create(ctx, &alice))
		require.NoError(t, s.Customers.Create(ctx, &bob))
		p1 := domain.Product{Name: "P1", Price: decimal.RequireFromString("10.00")}
		p2 := domain.Product{Name: "P2", Price: decimal.RequireFromString("5.00")}
		require.NoError(t, s.Products.Create(ctx, &p1))
		require.NoError(t, s.Products.Create(ctx, &p2))

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		o1 := domain.Order{CustomerID: alice.ID, ProductIDs: []int64{p1.ID, p2.ID}, TotalAmount: decimal.RequireFromString("15.00"), OrderDate: now.AddDate(0, 0, -10)}
		o2 := domain.Order{CustomerID: bob.ID, ProductIDs: []int64{p2.ID}, TotalAmount: decimal.RequireFromString("5.00"), OrderDate: now.AddDate(0, 0, -3)}
		require.NoError(t, s.Orders.Create(ctx, &o1))
		require.NoError(t, s.Orders.Create(ctx, &o2))

		got, err := s.Orders.GetByID(ctx, o1.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{p1.ID, p2.ID}, got.ProductIDs)
		assert.True(t, got.OrderDate.Equal(o1.OrderDate))
		assert.True(t, got.TotalAmount.Equal(o1.TotalAmount))

		since := now.AddDate(0, 0, -7)
		recent, err := s.Orders.List(ctx, OrderFilter{OrderDateGte: &since})
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, o2.ID, recent[0].ID)

		byAlice, err := s.Orders.List(ctx, OrderFilter{CustomerID: &alice.ID})
		require.NoError(t, err)
		require.Len(t, byAlice, 1)
		assert.Equal(t, o1.ID, byAlice[0].ID)

		newest, err := s.Orders.List(ctx, OrderFilter{OrderBy: Sort{Field: "order_date", Desc: true}})
		require.NoError(t, err)
		require.Len(t, newest, 2)
		assert.Equal(t, o2.ID, newest[0].ID)

		n, err := s.Orders.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		rev, err := s.Orders.TotalRevenue(ctx)
		require.NoError(t, err)
		assert.True(t, rev.Equal(decimal.RequireFromString("20.00")), "revenue %s", rev)

		_, err = s.Orders.GetByID(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty revenue", func(t *testing.T) {
		s := newStores(t)
		rev, err := s.Orders.TotalRevenue(context.Background())
		require.NoError(t, err)
		assert.True(t, rev.IsZero())
	})

	t.Run("transaction visibility", func(t *testing.T) {
		ctx := context.Background()
		s := newStores(t)
		err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
			p := domain.Product{Name: "In Tx", Price: decimal.NewFromInt(1)}
			if err := s.Products.Create(ctx, &p); err != nil {
				return err
			}
			_, err := s.Products.GetByID(ctx, p.ID)
			return err
		})
		require.NoError(t, err)

		list, err := s.Products.List(ctx, ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func customerNames(cs []domain.Customer) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func productNames(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
