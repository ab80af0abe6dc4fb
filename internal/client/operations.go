package client

import (
	"context"
	"time"
)

type Customer struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int64   `json:"stock"`
}

// CustomerInput входные данные для createCustomer / bulkCreateCustomers
type CustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

type ProductInput struct {
	Name  string
	Price float64
	Stock *int64
}

type RestockResult struct {
	Message         string
	UpdatedProducts []string
}

type Totals struct {
	Customers int64
	Orders    int64
	Revenue   float64
}

// RecentOrder одна строка выборки для напоминаний
type RecentOrder struct {
	ID            string
	CustomerEmail string
	OrderDate     time.Time
}

type BulkResult struct {
	Customers []Customer
	Errors    []string
}

const updateLowStockMutation = `mutation {
	updateLowStockProducts {
		message
		updatedProducts
	}
}`

func (c *Client) UpdateLowStockProducts(ctx context.Context) (*RestockResult, error) {
	const op = "updateLowStockProducts"
	var data struct {
		Payload *struct {
			Message         *string  `json:"message"`
			UpdatedProducts []string `json:"updatedProducts"`
		} `json:"updateLowStockProducts"`
	}
	if err := c.do(ctx, op, updateLowStockMutation, nil, &data); err != nil {
		return nil, err
	}
	if data.Payload == nil {
		return nil, missing(op, "updateLowStockProducts")
	}
	if data.Payload.Message == nil {
		return nil, missing(op, "message")
	}
	return &RestockResult{Message: *data.Payload.Message, UpdatedProducts: data.Payload.UpdatedProducts}, nil
}

const totalsQuery = `query {
	totalCustomers
	totalOrders
	totalRevenue
}`

func (c *Client) Totals(ctx context.Context) (*Totals, error) {
	const op = "totals"
	var data struct {
		Customers *int64   `json:"totalCustomers"`
		Orders    *int64   `json:"totalOrders"`
		Revenue   *float64 `json:"totalRevenue"`
	}
	if err := c.do(ctx, op, totalsQuery, nil, &data); err != nil {
		return nil, err
	}
	switch {
	case data.Customers == nil:
		return nil, missing(op, "totalCustomers")
	case data.Orders == nil:
		return nil, missing(op, "totalOrders")
	case data.Revenue == nil:
		return nil, missing(op, "totalRevenue")
	}
	return &Totals{Customers: *data.Customers, Orders: *data.Orders, Revenue: *data.Revenue}, nil
}

const recentOrdersQuery = `query RecentOrders($since: Time!) {
	allOrders(filter: { orderDateGte: $since }, orderBy: "orderDate") {
		edges {
			node {
				id
				orderDate
				customer { email }
			}
		}
	}
}`

// RecentOrders возвращает заказы с датой не раньше since
func (c *Client) RecentOrders(ctx context.Context, since time.Time) ([]RecentOrder, error) {
	const op = "recentOrders"
	var data struct {
		AllOrders *struct {
			Edges []struct {
				Node struct {
					ID        string    `json:"id"`
					OrderDate time.Time `json:"orderDate"`
					Customer  *struct {
						Email string `json:"email"`
					} `json:"customer"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"allOrders"`
	}
	vars := map[string]any{"since": since.UTC().Format(time.RFC3339)}
	if err := c.do(ctx, op, recentOrdersQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.AllOrders == nil {
		return nil, missing(op, "allOrders")
	}
	out := make([]RecentOrder, 0, len(data.AllOrders.Edges))
	for _, e := range data.AllOrders.Edges {
		o := RecentOrder{ID: e.Node.ID, OrderDate: e.Node.OrderDate}
		if e.Node.Customer != nil {
			o.CustomerEmail = e.Node.Customer.Email
		}
		out = append(out, o)
	}
	return out, nil
}

const createCustomerMutation = `mutation CreateCustomer($name: String!, $email: String!, $phone: String) {
	createCustomer(name: $name, email: $email, phone: $phone) {
		customer { id name email phone }
		message
	}
}`

// CreateCustomer возвращает созданного клиента и сообщение сервера
func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (*Customer, string, error) {
	const op = "createCustomer"
	var data struct {
		Payload *struct {
			Customer *Customer `json:"customer"`
			Message  string    `json:"message"`
		} `json:"createCustomer"`
	}
	vars := map[string]any{"name": in.Name, "email": in.Email}
	if in.Phone != nil {
		vars["phone"] = *in.Phone
	}
	if err := c.do(ctx, op, createCustomerMutation, vars, &data); err != nil {
		return nil, "", err
	}
	if data.Payload == nil || data.Payload.Customer == nil {
		return nil, "", missing(op, "customer")
	}
	return data.Payload.Customer, data.Payload.Message, nil
}

const bulkCreateCustomersMutation = `mutation BulkCreate($input: [CustomerInput!]!) {
	bulkCreateCustomers(input: $input) {
		customers { id name email phone }
		errors
	}
}`

func (c *Client) BulkCreateCustomers(ctx context.Context, in []CustomerInput) (*BulkResult, error) {
	const op = "bulkCreateCustomers"
	var data struct {
		Payload *struct {
			Customers []Customer `json:"customers"`
			Errors    []string   `json:"errors"`
		} `json:"bulkCreateCustomers"`
	}
	if in == nil {
		in = []CustomerInput{}
	}
	if err := c.do(ctx, op, bulkCreateCustomersMutation, map[string]any{"input": in}, &data); err != nil {
		return nil, err
	}
	if data.Payload == nil {
		return nil, missing(op, "bulkCreateCustomers")
	}
	return &BulkResult{Customers: data.Payload.Customers, Errors: data.Payload.Errors}, nil
}

const createProductMutation = `mutation CreateProduct($name: String!, $price: Money!, $stock: Int) {
	createProduct(name: $name, price: $price, stock: $stock) {
		product { id name price stock }
	}
}`

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	const op = "createProduct"
	var data struct {
		Payload *struct {
			Product *Product `json:"product"`
		} `json:"createProduct"`
	}
	vars := map[string]any{"name": in.Name, "price": in.Price}
	if in.Stock != nil {
		vars["stock"] = *in.Stock
	}
	if err := c.do(ctx, op, createProductMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.Payload == nil || data.Payload.Product == nil {
		return nil, missing(op, "product")
	}
	return data.Payload.Product, nil
}
