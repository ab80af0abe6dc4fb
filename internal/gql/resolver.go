package gql

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"crm/internal/domain"
	"crm/internal/service"
)

const helloMessage = "Hello, GraphQL!"

// Resolver корневой резолвер запросов и мутаций
type Resolver struct {
	svc *service.Services
}

func (r *Resolver) Hello() string { return helloMessage }

func (r *Resolver) Customers(ctx context.Context) ([]*customerResolver, error) {
	list, err := r.svc.Customers.List(ctx, "")
	if err != nil {
		return nil, resolverError(err)
	}
	return customerResolvers(list), nil
}

type orderByArgs struct {
	OrderBy *string
}

func (a orderByArgs) value() string {
	if a.OrderBy == nil {
		return ""
	}
	return *a.OrderBy
}

func (r *Resolver) AllCustomers(ctx context.Context, args orderByArgs) (*customerConnection, error) {
	list, err := r.svc.Customers.List(ctx, args.value())
	if err != nil {
		return nil, resolverError(err)
	}
	return &customerConnection{nodes: customerResolvers(list)}, nil
}

func (r *Resolver) Products(ctx context.Context) ([]*productResolver, error) {
	list, err := r.svc.Products.List(ctx, service.ProductQuery{})
	if err != nil {
		return nil, resolverError(err)
	}
	return productResolvers(list), nil
}

func (r *Resolver) AllProducts(ctx context.Context, args orderByArgs) (*productConnection, error) {
	list, err := r.svc.Products.List(ctx, service.ProductQuery{OrderBy: args.value()})
	if err != nil {
		return nil, resolverError(err)
	}
	return &productConnection{nodes: productResolvers(list)}, nil
}

func (r *Resolver) Orders(ctx context.Context) ([]*orderResolver, error) {
	list, err := r.svc.Orders.List(ctx, service.OrderQuery{})
	if err != nil {
		return nil, resolverError(err)
	}
	return orderResolvers(list, r.svc.Orders), nil
}

type orderFilterInput struct {
	OrderDateGte *graphql.Time
	OrderDateLte *graphql.Time
	CustomerID   *graphql.ID
}

func (r *Resolver) AllOrders(ctx context.Context, args struct {
	OrderBy *string
	Filter  *orderFilterInput
}) (*orderConnection, error) {
	q := service.OrderQuery{OrderBy: orderByArgs{OrderBy: args.OrderBy}.value()}
	if f := args.Filter; f != nil {
		if f.OrderDateGte != nil {
			q.OrderDateGte = &f.OrderDateGte.Time
		}
		if f.OrderDateLte != nil {
			q.OrderDateLte = &f.OrderDateLte.Time
		}
		if f.CustomerID != nil {
			id, ok := parseID(*f.CustomerID)
			if !ok {
				return &orderConnection{}, nil
			}
			q.CustomerID = &id
		}
	}
	list, err := r.svc.Orders.List(ctx, q)
	if err != nil {
		return nil, resolverError(err)
	}
	return &orderConnection{nodes: orderResolvers(list, r.svc.Orders)}, nil
}

func (r *Resolver) TotalCustomers(ctx context.Context) (int32, error) {
	t, err := r.svc.Reports.Totals(ctx)
	if err != nil {
		return 0, resolverError(err)
	}
	return clampInt32(t.Customers), nil
}

func (r *Resolver) TotalOrders(ctx context.Context) (int32, error) {
	t, err := r.svc.Reports.Totals(ctx)
	if err != nil {
		return 0, resolverError(err)
	}
	return clampInt32(t.Orders), nil
}

func (r *Resolver) TotalRevenue(ctx context.Context) (Money, error) {
	t, err := r.svc.Reports.Totals(ctx)
	if err != nil {
		return Money{}, resolverError(err)
	}
	return Money{t.Revenue}, nil
}

// Mutations

func (r *Resolver) CreateCustomer(ctx context.Context, args struct {
	Name  string
	Email string
	Phone *string
}) (*createCustomerPayload, error) {
	c, msg, err := r.svc.Customers.Create(ctx, domain.CustomerInput{Name: args.Name, Email: args.Email, Phone: args.Phone})
	if err != nil {
		return nil, resolverError(err)
	}
	return &createCustomerPayload{customer: &customerResolver{c: *c}, message: msg}, nil
}

type customerInput struct {
	Name  *string
	Email string
	Phone *string
}

func (r *Resolver) BulkCreateCustomers(ctx context.Context, args struct{ Input []customerInput }) *bulkCreateCustomersPayload {
	inputs := make([]domain.CustomerInput, 0, len(args.Input))
	for _, in := range args.Input {
		ci := domain.CustomerInput{Email: in.Email, Phone: in.Phone}
		if in.Name != nil {
			ci.Name = *in.Name
		}
		inputs = append(inputs, ci)
	}
	return &bulkCreateCustomersPayload{res: r.svc.Customers.BulkCreate(ctx, inputs)}
}

func (r *Resolver) CreateProduct(ctx context.Context, args struct {
	Name  string
	Price Money
	Stock *int32
}) (*createProductPayload, error) {
	p := domain.Product{Name: args.Name, Price: args.Price.Decimal}
	if args.Stock != nil {
		p.Stock = int64(*args.Stock)
	}
	created, err := r.svc.Products.Create(ctx, p)
	if err != nil {
		return nil, resolverError(err)
	}
	return &createProductPayload{product: &productResolver{p: *created}}, nil
}

func (r *Resolver) CreateOrder(ctx context.Context, args struct {
	CustomerID graphql.ID
	ProductIDs []graphql.ID
	OrderDate  *graphql.Time
}) (*createOrderPayload, error) {
	customerID, ok := parseID(args.CustomerID)
	if !ok {
		return nil, domain.NotFound("Invalid customer ID")
	}
	productIDs := make([]int64, 0, len(args.ProductIDs))
	for _, raw := range args.ProductIDs {
		id, ok := parseID(raw)
		if !ok {
			// unparseable ids can never resolve; keep them so the count check fails
			id = -1
		}
		productIDs = append(productIDs, id)
	}
	var orderDate *time.Time
	if args.OrderDate != nil {
		orderDate = &args.OrderDate.Time
	}
	o, err := r.svc.Orders.CreateOrder(ctx, customerID, productIDs, orderDate)
	if err != nil {
		return nil, resolverError(err)
	}
	return &createOrderPayload{order: &orderResolver{o: *o, orders: r.svc.Orders}}, nil
}

func (r *Resolver) UpdateLowStockProducts(ctx context.Context) (*updateLowStockPayload, error) {
	res, err := r.svc.Products.UpdateLowStock(ctx)
	if err != nil {
		return nil, resolverError(err)
	}
	return &updateLowStockPayload{res: res}, nil
}
