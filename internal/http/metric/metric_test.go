package metric_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/bizsuite/internal/http/metric"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

func TestObserveCheckout(t *testing.T) {
	m := metric.New()

	m.ObserveCheckout(model.PaymentMethodCash, decimal.RequireFromString("344.00"))
	m.ObserveCheckout(model.PaymentMethodCash, decimal.RequireFromString("6.00"))
	m.ObserveCheckout(model.PaymentMethodUPI, decimal.RequireFromString("10.50"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.CheckoutsTotal.WithLabelValues("Cash")), 0)
	assert.InDelta(t, 350, testutil.ToFloat64(m.CheckoutRevenue.WithLabelValues("Cash")), 0.001)
	assert.InDelta(t, 10.5, testutil.ToFloat64(m.CheckoutRevenue.WithLabelValues("UPI")), 0.001)
}

func TestNewUsesPrivateRegistry(t *testing.T) {
	a, b := metric.New(), metric.New()
	assert.NotSame(t, a.Registry, b.Registry)
}
