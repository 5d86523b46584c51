package enrichment

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"support-bot/errors"
)

// In-memory implementations backing the CLI and the tests.
// Deterministic on purpose: the same order number always reports the
// same status, so conversations are reproducible.

var orderStatuses = []OrderStatus{
	{Status: "Processing", Info: "Your order is being prepared. Expected ship date: 1-2 business days."},
	{Status: "Shipped", Info: "Your order has been shipped. Expected delivery: 3-5 business days."},
	{Status: "Out for delivery", Info: "Your order is out for delivery and should arrive today."},
	{Status: "Delivered", Info: "Your order has been delivered."},
}

type MemoryOrderService struct{}

func NewMemoryOrderService() MemoryOrderService {
	return MemoryOrderService{}
}

func (MemoryOrderService) Status(ctx context.Context, orderNumber string) (OrderStatus, error) {
	if err := ctx.Err(); err != nil {
		return OrderStatus{}, fmt.Errorf("%w: %w", errors.ErrEnrichmentUnavailable, err)
	}
	if orderNumber == "" {
		return OrderStatus{}, errors.ErrOrderNotFound
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToUpper(orderNumber)))
	status := orderStatuses[h.Sum32()%uint32(len(orderStatuses))]
	status.OrderNumber = strings.ToUpper(orderNumber)
	return status, nil
}

type MemoryProductCatalog struct {
	products []Product
}

func NewMemoryProductCatalog() *MemoryProductCatalog {
	return &MemoryProductCatalog{products: []Product{
		{Name: "Laptop", Price: 999.99, Stock: 23, Description: "14-inch ultrabook, 16GB RAM"},
		{Name: "Smartphone", Price: 699.99, Stock: 41, Description: "6.1-inch OLED, 128GB"},
		{Name: "Headphones", Price: 149.99, Stock: 87, Description: "Wireless over-ear, noise cancelling"},
		{Name: "Keyboard", Price: 79.99, Stock: 5, Description: "Mechanical, hot-swappable switches"},
		{Name: "Monitor", Price: 249.99, Stock: 0, Description: "27-inch 1440p IPS"},
	}}
}

func (c *MemoryProductCatalog) Search(ctx context.Context, query string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEnrichmentUnavailable, err)
	}
	query = strings.ToLower(query)
	var matches []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (c *MemoryProductCatalog) Price(ctx context.Context, name string) (Product, error) {
	matches, err := c.Search(ctx, name)
	if err != nil {
		return Product{}, err
	}
	if len(matches) == 0 {
		return Product{}, errors.ErrProductNotFound
	}
	return matches[0], nil
}

type MemoryShippingService struct{}

func NewMemoryShippingService() MemoryShippingService {
	return MemoryShippingService{}
}

func (MemoryShippingService) Options(ctx context.Context) ([]ShippingOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEnrichmentUnavailable, err)
	}
	return []ShippingOption{
		{Name: "Standard", Duration: "5-7 business days", Cost: "Free"},
		{Name: "Express", Duration: "2-3 business days", Cost: "$9.99"},
		{Name: "Next Day", Duration: "1 business day", Cost: "$19.99"},
	}, nil
}
