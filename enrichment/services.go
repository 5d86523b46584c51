//go:generate go run go.uber.org/mock/mockgen -source=services.go -destination=../mocks/mock_enrichment.go -package=mocks

// Package enrichment models the external lookups the dialogue policy
// may call once an intent is resolved: order status, product catalog
// and shipping estimates. Real deployments plug network-backed
// implementations here; the in-memory ones below stand in for them
// and keep the core testable. These calls are the only source of
// latency in a turn and every one of them takes a context.
package enrichment

import "context"

// OrderStatus is the result of an order lookup.
type OrderStatus struct {
	OrderNumber string
	Status      string
	Info        string
}

// Product is one catalog record.
type Product struct {
	Name        string
	Price       float64
	Stock       int
	Description string
}

// ShippingOption describes one delivery tier.
type ShippingOption struct {
	Name     string
	Duration string
	Cost     string
}

type IOrderService interface {
	// Status looks an order up by number.
	Status(ctx context.Context, orderNumber string) (OrderStatus, error)
}

type IProductCatalog interface {
	// Search returns products matching the free-text query.
	Search(ctx context.Context, query string) ([]Product, error)
	// Price returns the best match for a product name.
	Price(ctx context.Context, name string) (Product, error)
}

type IShippingService interface {
	// Options lists the generic delivery tiers.
	Options(ctx context.Context) ([]ShippingOption, error)
}
