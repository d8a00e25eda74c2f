package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.TicketsCreated("preventive", 3)
	m.TicketClosed("preventive")
	m.TicketsCreated("preventive", 1)
	m.CloseRejected("calibration", "future_close")
	m.SetOpenTickets("preventive", 3)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.ticketsCreated.WithLabelValues("preventive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticketsClosed.WithLabelValues("preventive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.closeRejected.WithLabelValues("calibration", "future_close")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.openTickets.WithLabelValues("preventive")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/tickets/:kind", 200, 15*time.Millisecond)
	m.SetOverdueTickets("calibration", 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `upkeep_http_request_duration_seconds_count{method="GET",route="/tickets/:kind",status="200"} 1`)
	assert.Contains(t, string(body), `upkeep_overdue_tickets{kind="calibration"} 2`)
}
