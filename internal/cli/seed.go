package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"crm/internal/app"
	"crm/internal/client"
)

// seedAPI операции, нужные для начального наполнения
type seedAPI interface {
	BulkCreateCustomers(ctx context.Context, in []client.CustomerInput) (*client.BulkResult, error)
	CreateProduct(ctx context.Context, in client.ProductInput) (*client.Product, error)
}

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

var (
	seedCustomers = []client.CustomerInput{
		{Name: "Alice", Email: "alice@example.com", Phone: strPtr("+1234567890")},
		{Name: "Bob", Email: "bob@example.com", Phone: strPtr("123-456-7890")},
	}
	seedProducts = []client.ProductInput{
		{Name: "Laptop", Price: 999.99, Stock: intPtr(10)},
		{Name: "Phone", Price: 499.99, Stock: intPtr(15)},
	}
)

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample customers and products through the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := app.NewAPIClient(opts.Config, opts.Log)
			if err != nil {
				return err
			}
			return seed(cmd.Context(), api, cmd.OutOrStdout())
		},
	}
}

// seed is idempotent for customers: existing emails come back as per-item
// errors. Product names are not unique, so rerunning adds new rows.
func seed(ctx context.Context, api seedAPI, out io.Writer) error {
	res, err := api.BulkCreateCustomers(ctx, seedCustomers)
	if err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	fmt.Fprintf(out, "customers created: %d\n", len(res.Customers))
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  skipped: %s\n", e)
	}

	var errs []error
	for _, p := range seedProducts {
		created, err := api.CreateProduct(ctx, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed product %s: %w", p.Name, err))
			continue
		}
		fmt.Fprintf(out, "product created: %s (id %s)\n", created.Name, created.ID)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	fmt.Fprintln(out, "Database seeded successfully.")
	return nil
}
