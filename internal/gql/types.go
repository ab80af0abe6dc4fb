package gql

import (
	"context"
	"math"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"crm/internal/domain"
	"crm/internal/service"
)

// clampInt32 saturates at the GraphQL Int bounds instead of wrapping.
func clampInt32(n int64) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int32(n)
}

func toID(id int64) graphql.ID { return graphql.ID(strconv.FormatInt(id, 10)) }

func parseID(id graphql.ID) (int64, bool) {
	v, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

type customerResolver struct{ c domain.Customer }

func (r *customerResolver) ID() graphql.ID { return toID(r.c.ID) }
func (r *customerResolver) Name() string { return r.c.Name }
func (r *customerResolver) Email() string { return r.c.Email }
func (r *customerResolver) Phone() *string { return r.c.Phone }

type productResolver struct{ p domain.Product }

func (r *productResolver) ID() graphql.ID { return toID(r.p.ID) }
func (r *productResolver) Name() string { return r.p.Name }
func (r *productResolver) Price() Money { return Money{r.p.Price} }
func (r *productResolver) Stock() int32 { return clampInt32(r.p.Stock) }

type orderResolver struct {
	o      domain.Order
	orders *service.OrderService
}

func (r *orderResolver) ID() graphql.ID { return toID(r.o.ID) }

func (r *orderResolver) Customer(ctx context.Context) (*customerResolver, error) {
	c, err := r.orders.Customer(ctx, r.o)
	if err != nil || c == nil {
		return nil, err
	}
	return &customerResolver{c: *c}, nil
}

func (r *orderResolver) Products(ctx context.Context) ([]*productResolver, error) {
	ps, err := r.orders.Products(ctx, r.o)
	if err != nil {
		return nil, err
	}
	return productResolvers(ps), nil
}

func (r *orderResolver) TotalAmount() Money { return Money{r.o.TotalAmount} }
func (r *orderResolver) OrderDate() graphql.Time { return graphql.Time{Time: r.o.OrderDate} }

func customerResolvers(cs []domain.Customer) []*customerResolver {
	out := make([]*customerResolver, 0, len(cs))
	for _, c := range cs {
		out = append(out, &customerResolver{c: c})
	}
	return out
}

func productResolvers(ps []domain.Product) []*productResolver {
	out := make([]*productResolver, 0, len(ps))
	for _, p := range ps {
		out = append(out, &productResolver{p: p})
	}
	return out
}

func orderResolvers(list []domain.Order, svc *service.OrderService) []*orderResolver {
	out := make([]*orderResolver, 0, len(list))
	for _, o := range list {
		out = append(out, &orderResolver{o: o, orders: svc})
	}
	return out
}

// connections

type customerConnection struct{ nodes []*customerResolver }

func (c *customerConnection) TotalCount() int32 { return clampInt32(int64(len(c.nodes))) }
func (c *customerConnection) Edges() []*customerEdge {
	out := make([]*customerEdge, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, &customerEdge{node: n})
	}
	return out
}

type customerEdge struct{ node *customerResolver }

func (e *customerEdge) Node() *customerResolver { return e.node }

type productConnection struct{ nodes []*productResolver }

func (c *productConnection) TotalCount() int32 { return clampInt32(int64(len(c.nodes))) }
func (c *productConnection) Edges() []*productEdge {
	out := make([]*productEdge, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, &productEdge{node: n})
	}
	return out
}

type productEdge struct{ node *productResolver }

func (e *productEdge) Node() *productResolver { return e.node }

type orderConnection struct{ nodes []*orderResolver }

func (c *orderConnection) TotalCount() int32 { return clampInt32(int64(len(c.nodes))) }
func (c *orderConnection) Edges() []*orderEdge {
	out := make([]*orderEdge, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, &orderEdge{node: n})
	}
	return out
}

type orderEdge struct{ node *orderResolver }

func (e *orderEdge) Node() *orderResolver { return e.node }

// payloads

type createCustomerPayload struct {
	customer *customerResolver
	message  string
}

func (p *createCustomerPayload) Customer() *customerResolver { return p.customer }
func (p *createCustomerPayload) Message() *string { return &p.message }

type bulkCreateCustomersPayload struct{ res service.BulkResult }

func (p *bulkCreateCustomersPayload) Customers() []*customerResolver {
	return customerResolvers(p.res.Customers)
}
func (p *bulkCreateCustomersPayload) Errors() []string { return p.res.Errors }

type createProductPayload struct{ product *productResolver }

func (p *createProductPayload) Product() *productResolver { return p.product }

type createOrderPayload struct{ order *orderResolver }

func (p *createOrderPayload) Order() *orderResolver { return p.order }

type updateLowStockPayload struct{ res *service.RestockResult }

func (p *updateLowStockPayload) Message() string { return p.res.Message }
func (p *updateLowStockPayload) UpdatedProducts() []string { return p.res.UpdatedProducts }
