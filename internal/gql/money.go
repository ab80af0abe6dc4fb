package gql

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money скаляр для денежных сумм. Принимает Int, Float и String литералы и
// переменные; знак и масштаб проверяет сервис, не парсер схемы.
type Money struct {
	decimal.Decimal
}

func (Money) ImplementsGraphQLType(name string) bool { return name == "Money" }

func (m *Money) UnmarshalGraphQL(input interface{}) error {
	var err error
	switch v := input.(type) {
	case int32:
		m.Decimal = decimal.NewFromInt32(v)
	case int:
		m.Decimal = decimal.NewFromInt(int64(v))
	case int64:
		m.Decimal = decimal.NewFromInt(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid Money value %v", v)
		}
		m.Decimal = decimal.NewFromFloat(v)
	case string:
		m.Decimal, err = decimal.NewFromString(v)
	case json.Number:
		m.Decimal, err = decimal.NewFromString(v.String())
	default:
		return fmt.Errorf("wrong type for Money: %T", input)
	}
	if err != nil {
		return fmt.Errorf("invalid Money value %v: %w", input, err)
	}
	return nil
}

// MarshalJSON writes a bare JSON number so clients can read it as a float.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}
