package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/cart", 200, 25*time.Millisecond)
	m.Observe("GET", "/api/v1/cart", 200, 30*time.Millisecond)
	m.Observe("POST", "/api/v1/checkout", 500, time.Second)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/cart", "200")); got != 2 {
		t.Fatalf("expected 2 cart requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/checkout", "500")); got != 1 {
		t.Fatalf("expected 1 failed checkout, got %v", got)
	}
}

func TestObserveNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "", 200, 0)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "", 200, 0)
}
