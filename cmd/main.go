package main

import (
	"os"

	_ "crm/docs"
	"crm/internal/cli"
)

// @title CRM API
// @version 1.0
// @description Customers, products and orders with a GraphQL endpoint and REST routes.
// @BasePath /
func main() {
	os.Exit(cli.Execute())
}
