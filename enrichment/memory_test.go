package enrichment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"support-bot/errors"
)

func TestMemoryOrderService_Deterministic(t *testing.T) {
	req := require.New(t)
	svc := NewMemoryOrderService()
	ctx := context.Background()

	first, err := svc.Status(ctx, "ORD-2024-001")
	req.NoError(err)
	req.Equal("ORD-2024-001", first.OrderNumber)
	req.NotEmpty(first.Status)
	req.NotEmpty(first.Info)

	// Same number, same status, regardless of casing.
	again, err := svc.Status(ctx, "ord-2024-001")
	req.NoError(err)
	req.Equal(first.Status, again.Status)
}

func TestMemoryOrderService_Errors(t *testing.T) {
	req := require.New(t)
	svc := NewMemoryOrderService()

	_, err := svc.Status(context.Background(), "")
	req.ErrorIs(err, errors.ErrOrderNotFound)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Status(canceled, "ORD-2024-001")
	req.ErrorIs(err, errors.ErrEnrichmentUnavailable)
}

func TestMemoryProductCatalog(t *testing.T) {
	req := require.New(t)
	catalog := NewMemoryProductCatalog()
	ctx := context.Background()

	matches, err := catalog.Search(ctx, "laptop")
	req.NoError(err)
	req.Len(matches, 1)
	req.Equal("Laptop", matches[0].Name)

	product, err := catalog.Price(ctx, "Headphones")
	req.NoError(err)
	req.InDelta(149.99, product.Price, 1e-9)

	_, err = catalog.Price(ctx, "teleporter")
	req.ErrorIs(err, errors.ErrProductNotFound)
}

func TestMemoryShippingService(t *testing.T) {
	req := require.New(t)
	svc := NewMemoryShippingService()

	options, err := svc.Options(context.Background())
	req.NoError(err)
	req.Len(options, 3)
	req.Equal("Standard", options[0].Name)
}
