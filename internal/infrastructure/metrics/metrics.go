// Package metrics exposes ticket and HTTP metrics for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "upkeep"

// Recorder is what use cases report ticket activity through.
type Recorder interface {
	TicketsCreated(kind string, n int)
	TicketClosed(kind string)
	CloseRejected(kind, reason string)
	SetOpenTickets(kind string, n int64)
	SetOverdueTickets(kind string, n int)
}

type Metrics struct {
	registry *prometheus.Registry

	ticketsCreated *prometheus.CounterVec
	ticketsClosed  *prometheus.CounterVec
	closeRejected  *prometheus.CounterVec
	openTickets    *prometheus.GaugeVec
	overdueTickets *prometheus.GaugeVec
	httpDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticketsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Tickets created, including scheduled successors.",
		}, []string{"kind"}),
		ticketsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_closed_total",
			Help:      "Tickets closed.",
		}, []string{"kind"}),
		closeRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_close_rejected_total",
			Help:      "Close attempts that were refused.",
		}, []string{"kind", "reason"}),
		openTickets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_tickets",
			Help:      "Open recurring tickets.",
		}, []string{"kind"}),
		overdueTickets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_tickets",
			Help:      "Open recurring tickets past their scheduled date at the last scan.",
		}, []string{"kind"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.ticketsCreated,
		m.ticketsClosed,
		m.closeRejected,
		m.openTickets,
		m.overdueTickets,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) TicketsCreated(kind string, n int) {
	m.ticketsCreated.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) TicketClosed(kind string) {
	m.ticketsClosed.WithLabelValues(kind).Inc()
}

func (m *Metrics) CloseRejected(kind, reason string) {
	m.closeRejected.WithLabelValues(kind, reason).Inc()
}

func (m *Metrics) SetOpenTickets(kind string, n int64) {
	m.openTickets.WithLabelValues(kind).Set(float64(n))
}

func (m *Metrics) SetOverdueTickets(kind string, n int) {
	m.overdueTickets.WithLabelValues(kind).Set(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Nop discards everything. Tests use it where metrics are irrelevant.
type Nop struct{}

func (Nop) TicketsCreated(string, int)    {}
func (Nop) TicketClosed(string)           {}
func (Nop) CloseRejected(string, string)  {}
func (Nop) SetOpenTickets(string, int64)  {}
func (Nop) SetOverdueTickets(string, int) {}
