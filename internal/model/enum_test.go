package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

func TestRole(t *testing.T) {
	t.Run("Should parse names case-insensitively", func(t *testing.T) {
		for _, role := range model.Roles() {
			got, err := model.ParseRole(role.String())
			require.NoError(t, err)
			assert.Equal(t, role, got)
		}

		got, err := model.ParseRole("cashier")
		require.NoError(t, err)
		assert.Equal(t, model.RoleCashier, got)
	})

	t.Run("Should reject unknown and empty names", func(t *testing.T) {
		_, err := model.ParseRole("Manager")
		assert.Error(t, err)

		_, err = model.ParseRole("")
		assert.Error(t, err)
	})

	t.Run("Should not validate the zero value", func(t *testing.T) {
		assert.Error(t, model.RoleUnspecified.Validate())
		assert.NoError(t, model.RoleAdmin.Validate())
	})

	t.Run("Should encode as JSON string", func(t *testing.T) {
		b, err := json.Marshal(struct {
			Role model.Role `json:"role"`
		}{model.RoleInventory})
		require.NoError(t, err)
		assert.JSONEq(t, `{"role":"Inventory"}`, string(b))
	})
}

func TestLeadStatus(t *testing.T) {
	t.Run("Should decode hyphenated status", func(t *testing.T) {
		var v struct {
			Status model.LeadStatus `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"status":"Follow-Up"}`), &v))
		assert.Equal(t, model.LeadStatusFollowUp, v.Status)
	})

	t.Run("Should mark converted and dropped as closed", func(t *testing.T) {
		for _, s := range model.LeadStatuses() {
			closed := s == model.LeadStatusConverted || s == model.LeadStatusDropped
			assert.Equal(t, closed, s.IsClosed(), s.String())
		}
	})
}

func TestOrderStatus(t *testing.T) {
	cases := []struct {
		from, to model.OrderStatus
		ok       bool
	}{
		{model.OrderStatusPending, model.OrderStatusCompleted, true},
		{model.OrderStatusPending, model.OrderStatusCancelled, true},
		{model.OrderStatusCompleted, model.OrderStatusCancelled, true},
		{model.OrderStatusCompleted, model.OrderStatusPending, false},
		{model.OrderStatusCancelled, model.OrderStatusCompleted, false},
		{model.OrderStatusCompleted, model.OrderStatusCompleted, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestProductStock(t *testing.T) {
	qty, threshold := 3, 3

	t.Run("Should flag low stock only when both values are set", func(t *testing.T) {
		assert.True(t, model.Product{Quantity: &qty, Threshold: &threshold}.IsLowStock())
		assert.False(t, model.Product{Quantity: &qty}.IsLowStock())
		assert.False(t, model.Product{Threshold: &threshold}.IsLowStock())
	})

	t.Run("Should treat missing quantity as zero stock", func(t *testing.T) {
		assert.Equal(t, 0, model.Product{}.Stock())
		assert.Equal(t, 3, model.Product{Quantity: &qty}.Stock())
	})
}
