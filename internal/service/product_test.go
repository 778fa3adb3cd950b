package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/event"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db/dbtest"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

func TestProductService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should apply stock defaults on create", func(t *testing.T) {
		svc := service.NewProductService(discardLogger(), newFakeCache(), &dbtest.FakeDB{}, newFakeProductRepo(), &fakeOutboxRepo{})

		p, err := svc.CreateProduct(ctx, service.ProductParams{Name: "Tea", Sku: "TEA-1", SellPrice: dec("12.5")})
		require.NoError(t, err)

		assert.Equal(t, 0, *p.Quantity)
		assert.Equal(t, 10, *p.Threshold)
		assert.True(t, p.IsActive)
		assert.Equal(t, "12.50", p.SellPrice.StringFixed(2))
	})

	t.Run("Should emit low stock once when an update crosses the threshold", func(t *testing.T) {
		outbox := &fakeOutboxRepo{}
		svc := service.NewProductService(discardLogger(), newFakeCache(), &dbtest.FakeDB{}, newFakeProductRepo(product(1, "3.00", 40)), outbox)

		params := service.ProductParams{Name: "Tea", Sku: "TEA-1", SellPrice: dec("3.00"), Quantity: ptr.New(8)}
		_, err := svc.UpdateProduct(ctx, 1, params)
		require.NoError(t, err)
		params.Quantity = ptr.New(5)
		_, err = svc.UpdateProduct(ctx, 1, params)
		require.NoError(t, err)

		assert.Equal(t, []string{event.TopicProductLowStock}, outbox.topics())
	})

	t.Run("Should report missing products on update", func(t *testing.T) {
		svc := service.NewProductService(discardLogger(), newFakeCache(), &dbtest.FakeDB{}, newFakeProductRepo(), &fakeOutboxRepo{})

		_, err := svc.UpdateProduct(ctx, 3, service.ProductParams{Name: "X", Sku: "X"})
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})
}
