package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

func TestLeadService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create leads as new", func(t *testing.T) {
		svc := service.NewLeadService(discardLogger(), newFakeCache(), &fakeLeadRepo{}, &fakeInteractionRepo{})

		lead, err := svc.CreateLead(ctx, service.LeadParams{Name: "  Acme  ", Value: ptr.New(dec("1200.005"))})
		require.NoError(t, err)
		assert.Equal(t, "Acme", lead.Name)
		assert.Equal(t, model.LeadStatusNew, lead.Status)
		require.NotNil(t, lead.Value)
		assert.Equal(t, "1200.01", lead.Value.String())
	})

	t.Run("Should keep the status when the update leaves it unspecified", func(t *testing.T) {
		svc := service.NewLeadService(discardLogger(), newFakeCache(), &fakeLeadRepo{}, &fakeInteractionRepo{})
		lead, err := svc.CreateLead(ctx, service.LeadParams{Name: "Acme", Status: model.LeadStatusContacted})
		require.NoError(t, err)

		updated, err := svc.UpdateLead(ctx, lead.ID, service.LeadParams{Name: "Acme Ltd"})
		require.NoError(t, err)
		assert.Equal(t, model.LeadStatusContacted, updated.Status)
		assert.Equal(t, "Acme Ltd", updated.Name)
	})

	t.Run("Should record interactions on existing leads only", func(t *testing.T) {
		svc := service.NewLeadService(discardLogger(), newFakeCache(), &fakeLeadRepo{}, &fakeInteractionRepo{})
		lead, err := svc.CreateLead(ctx, service.LeadParams{Name: "Acme"})
		require.NoError(t, err)

		_, err = svc.AddInteraction(ctx, lead.ID, ptr.New(int64(1)), service.CreateInteractionParams{Type: model.InteractionTypeCall})
		require.NoError(t, err)

		interactions, err := svc.ListInteractions(ctx, lead.ID)
		require.NoError(t, err)
		require.Len(t, interactions, 1)
		assert.Equal(t, model.InteractionTypeCall, interactions[0].Type)

		_, err = svc.AddInteraction(ctx, 99, nil, service.CreateInteractionParams{Type: model.InteractionTypeNote})
		assert.ErrorIs(t, err, apperr.LeadNotFoundErr)
	})
}
