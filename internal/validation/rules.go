// Package validation holds the side-effect-free checks applied before any write.
package validation

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+?\d{3,15}$`)

// EmailLookup reports whether a customer with the email already exists.
type EmailLookup func(ctx context.Context, email string) (bool, error)

func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("Name is required")
	}
	return nil
}

// EmailUnique compares emails exactly; "A@x.com" and "a@x.com" are different customers.
func EmailUnique(ctx context.Context, exists EmailLookup, email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.Invalid("Email is required")
	}
	taken, err := exists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict("Email already exists")
	}
	return nil
}

// Phone is optional: nil or empty always passes.
func Phone(phone *string) error {
	if phone == nil || *phone == "" {
		return nil
	}
	if !phonePattern.MatchString(*phone) {
		return domain.Invalid("Invalid phone format")
	}
	return nil
}

// PriceScale is the number of decimal places every store keeps for money.
const PriceScale = 2

func Price(price decimal.Decimal) error {
	if !price.IsPositive() {
		return domain.Invalid("Price must be positive")
	}
	if !price.Equal(price.Round(PriceScale)) {
		return domain.Invalid("Price must have at most 2 decimal places")
	}
	return nil
}

func Stock(stock int64) error {
	if stock < 0 {
		return domain.Invalid("Stock cannot be negative")
	}
	return nil
}

func ProductIDs(requested []int64, resolved int) error {
	if len(requested) == 0 {
		return domain.Invalid("At least one product must be selected")
	}
	if resolved != len(requested) {
		return domain.Invalid("One or more invalid product IDs")
	}
	return nil
}
