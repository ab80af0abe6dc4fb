package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Kind тип сущности для разбора сортировки
type Kind string

const (
	KindCustomer Kind = "customer"
	KindProduct  Kind = "product"
	KindOrder    Kind = "order"
)

// Sort разобранный параметр orderBy. Пустой Field означает сортировку по id.
type Sort struct {
	Field string
	Desc  bool
}

// ErrUnsupportedSort wraps any orderBy value outside the allow-list.
var ErrUnsupportedSort = errors.New("unsupported orderBy field")

// sortable maps accepted API names (camelCase and snake_case) to storage columns.
var sortable = map[Kind]map[string]string{
	KindCustomer: {
		"id":    "id",
		"name":  "name",
		"email": "email",
	},
	KindProduct: {
		"id":    "id",
		"name":  "name",
		"price": "price",
		"stock": "stock",
	},
	KindOrder: {
		"id":           "id",
		"orderDate":    "order_date",
		"order_date":   "order_date",
		"totalAmount":  "total_amount",
		"total_amount": "total_amount",
	},
}

// ParseSort разбирает orderBy вида "name" или "-price" по списку разрешённых полей.
func ParseSort(kind Kind, raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sort{}, nil
	}
	desc := false
	if strings.HasPrefix(raw, "-") {
		desc = true
		raw = raw[1:]
	}
	col, ok := sortable[kind][raw]
	if !ok {
		return Sort{}, fmt.Errorf("%w %q", ErrUnsupportedSort, raw)
	}
	return Sort{Field: col, Desc: desc}, nil
}

func (s Sort) column() string {
	if s.Field == "" {
		return "id"
	}
	return s.Field
}
