package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncBookingTransition("EXPIRED", 3)
	m.IncBookingTransition("EXPIRED", 0)
	m.AddCommission("1", 10.5)
	m.AddCommission("1", 4.5)
	m.ObserveQuery("select", 0.01, errors.New("boom"))
	m.ObserveHTTP("GET", "/api/v1/bookings/{bookingId}", "200", 0.02)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("EXPIRED")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommissionPayouts.WithLabelValues("1")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.CommissionAmount.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/bookings/{bookingId}", "200")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncBookingTransition("CONFIRMED", 1)
		m.AddCommission("2", 1)
		m.ObserveQuery("exec", 0.1, nil)
		m.ObserveHTTP("POST", "/", "500", 0.1)
	})
}
