package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Ledger metrics
	CheckpointsAppended prometheus.Counter
	WeightQueries       *prometheus.CounterVec
	TokensMinted        prometheus.Counter
	TokensTransferred   prometheus.Counter
	TotalSupply         prometheus.Gauge
	CurrentStep         prometheus.Gauge

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Auth metrics
	AuthFailures *prometheus.CounterVec
}

// NewRegistry creates a metrics registry with all application metrics
// plus the Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		registry: reg,

		CheckpointsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voteledger_checkpoints_appended_total",
			Help: "Total number of checkpoints appended to account logs.",
		}),
		WeightQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voteledger_weight_queries_total",
			Help: "Total number of weight queries by kind.",
		}, []string{"kind"}),
		TokensMinted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voteledger_tokens_minted_total",
			Help: "Total number of tokens minted.",
		}),
		TokensTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voteledger_tokens_transferred_total",
			Help: "Total number of token transfers.",
		}),
		TotalSupply: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voteledger_supply",
			Help: "Number of tokens minted so far.",
		}),
		CurrentStep: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voteledger_current_step",
			Help: "Current value of the step clock.",
		}),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voteledger_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voteledger_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path"}),

		AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voteledger_auth_failures_total",
			Help: "Total number of rejected operator key presentations.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		r.CheckpointsAppended,
		r.WeightQueries,
		r.TokensMinted,
		r.TokensTransferred,
		r.TotalSupply,
		r.CurrentStep,
		r.RequestsTotal,
		r.RequestDuration,
		r.AuthFailures,
	)
	return r
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Prometheus returns the underlying registry, for components that
// register their own collectors (e.g. the Badger engine).
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Handler returns the /metrics HTTP handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Handler returns the /metrics handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// AddCheckpointsAppended records n appended checkpoints. A mint
// appends one, a transfer two.
func (r *Registry) AddCheckpointsAppended(n int) {
	r.CheckpointsAppended.Add(float64(n))
}

// RecordWeightQuery records a weight query ("current" or "at_step").
func (r *Registry) RecordWeightQuery(kind string) {
	r.WeightQueries.WithLabelValues(kind).Inc()
}

// IncTokenMinted records a committed mint.
func (r *Registry) IncTokenMinted() {
	r.TokensMinted.Inc()
}

// IncTokenTransferred records a committed transfer.
func (r *Registry) IncTokenTransferred() {
	r.TokensTransferred.Inc()
}

// SetTotalSupply records the minted supply.
func (r *Registry) SetTotalSupply(supply float64) {
	r.TotalSupply.Set(supply)
}

// SetCurrentStep records the step clock value.
func (r *Registry) SetCurrentStep(step float64) {
	r.CurrentStep.Set(step)
}

// RecordRequest records a completed HTTP request.
func (r *Registry) RecordRequest(method, path, status string) {
	r.RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveRequestDuration records HTTP request latency.
func (r *Registry) ObserveRequestDuration(method, path string, seconds float64) {
	r.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordAuthFailure records a rejected operator key presentation.
func (r *Registry) RecordAuthFailure(reason string) {
	r.AuthFailures.WithLabelValues(reason).Inc()
}
