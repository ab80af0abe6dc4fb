// Package gql exposes the CRM services as a GraphQL query/mutation document API.
package gql

import (
	"context"
	"errors"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"

	"crm/internal/domain"
	"crm/internal/logger"
	"crm/internal/service"
)

const schemaSDL = `
scalar Time
scalar Money

schema {
	query: Query
	mutation: Mutation
}

type Query {
	hello: String!
	customers: [Customer!]!
	allCustomers(orderBy: String): CustomerConnection!
	products: [Product!]!
	allProducts(orderBy: String): ProductConnection!
	orders: [Order!]!
	allOrders(orderBy: String, filter: OrderFilter): OrderConnection!
	totalCustomers: Int!
	totalOrders: Int!
	totalRevenue: Money!
}

type Mutation {
	createCustomer(name: String!, email: String!, phone: String): CreateCustomerPayload
	bulkCreateCustomers(input: [CustomerInput!]!): BulkCreateCustomersPayload!
	createProduct(name: String!, price: Money!, stock: Int): CreateProductPayload
	createOrder(customerId: ID!, productIds: [ID!]!, orderDate: Time): CreateOrderPayload
	updateLowStockProducts: UpdateLowStockProductsPayload
}

type Customer {
	id: ID!
	name: String!
	email: String!
	phone: String
}

type Product {
	id: ID!
	name: String!
	price: Money!
	stock: Int!
}

type Order {
	id: ID!
	customer: Customer
	products: [Product!]!
	totalAmount: Money!
	orderDate: Time!
}

type CustomerConnection {
	totalCount: Int!
	edges: [CustomerEdge!]!
}

type CustomerEdge {
	node: Customer!
}

type ProductConnection {
	totalCount: Int!
	edges: [ProductEdge!]!
}

type ProductEdge {
	node: Product!
}

type OrderConnection {
	totalCount: Int!
	edges: [OrderEdge!]!
}

type OrderEdge {
	node: Order!
}

input CustomerInput {
	name: String
	email: String!
	phone: String
}

input OrderFilter {
	orderDateGte: Time
	orderDateLte: Time
	customerId: ID
}

type CreateCustomerPayload {
	customer: Customer
	message: String
}

type BulkCreateCustomersPayload {
	customers: [Customer!]!
	errors: [String!]!
}

type CreateProductPayload {
	product: Product
}

type CreateOrderPayload {
	order: Order
}

type UpdateLowStockProductsPayload {
	message: String!
	updatedProducts: [String!]!
}
`

// NewSchema собирает исполняемую схему поверх сервисов
func NewSchema(svc *service.Services, log *logger.Logger) (*graphql.Schema, error) {
	if log == nil {
		log = logger.NewNop()
	}
	schema, err := graphql.ParseSchema(schemaSDL, &Resolver{svc: svc},
		graphql.MaxDepth(8),
		graphql.Logger(panicLogger{log: log}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return schema, nil
}

type panicLogger struct{ log *logger.Logger }

func (p panicLogger) LogPanic(_ context.Context, value interface{}) {
	p.log.Error("graphql resolver panic", "panic", value)
}

// resolverError surfaces the domain error so its extensions code reaches the client.
func resolverError(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return err
}
