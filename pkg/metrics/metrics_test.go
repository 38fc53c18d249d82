package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveBookingCreated("created")
	m.ObserveBookingCreated("created")
	m.ObserveBookingCreated("conflict")
	m.ObserveTransition("approve", "ok")
	m.ObserveCompleted(3)
	m.ObserveCompleted(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("approve", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BookingsCompleted))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBookingCreated("created")
		m.ObserveTransition("deny", "ok")
		m.ObserveCompleted(1)
		m.ObserveSweep("ok")
	})
}
