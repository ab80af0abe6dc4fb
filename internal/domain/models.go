package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer клиент CRM
type Customer struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// Product товар на складе
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock"`
}

// Order заказ клиента. TotalAmount фиксируется при создании и не пересчитывается.
type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	ProductIDs  []int64         `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// CustomerInput входные данные для создания клиента
type CustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// Totals агрегаты для отчёта
type Totals struct {
	Customers int64           `json:"total_customers"`
	Orders    int64           `json:"total_orders"`
	Revenue   decimal.Decimal `json:"total_revenue"`
}

// Restock параметры пополнения запаса
const (
	LowStockThreshold int64 = 10
	RestockQuantity   int64 = 10
)
