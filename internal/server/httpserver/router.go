package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/voteledger-go/internal/core/service"
	"github.com/yndnr/voteledger-go/internal/server/httpserver/handler"
	"github.com/yndnr/voteledger-go/internal/storage"
	"github.com/yndnr/voteledger-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// WeightService answers the weight queries.
	WeightService *service.WeightService

	// TokenService handles mint and transfer.
	TokenService *service.TokenService

	// AuthService verifies operator keys.
	AuthService *service.AuthService

	// StepClock is the ledger's step clock.
	StepClock *storage.StepClock

	// KV is the storage engine (status and GC endpoints).
	KV storage.KVEngine

	// Metrics is the application metrics registry.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger *slog.Logger

	// RateLimit is the sustained requests/second per client IP.
	// Zero disables throttling.
	RateLimit float64

	// RateBurst is the burst allowance per client IP.
	RateBurst int
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := handler.New(&handler.Config{
		WeightService: cfg.WeightService,
		TokenService:  cfg.TokenService,
		StepClock:     cfg.StepClock,
		KV:            cfg.KV,
		Metrics:       cfg.Metrics,
		Logger:        logger,
	})

	// Shared middleware tails. Order: Recover runs outermost, then
	// request ID assignment, throttling, audit, auth.
	base := []Middleware{
		Recover(logger),
		RequestID(),
	}
	if cfg.RateLimit > 0 {
		base = append(base, RateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	base = append(base, Audit(logger, cfg.Metrics))

	publicHandler := Chain(h, base...)
	operatorHandler := Chain(h, append(base[:len(base):len(base)],
		OperatorAuth(cfg.AuthService, cfg.Metrics))...)

	mux := http.NewServeMux()

	// Health endpoints skip throttling and audit.
	probes := Chain(h, Recover(logger), RequestID())
	mux.Handle("GET /health", probes)
	mux.Handle("GET /ready", probes)

	// Metrics exposition (Prometheus format, no envelope).
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(logger), RequestID()))
	}

	// Read endpoints: open.
	mux.Handle("GET /v1/accounts/{id}/weight", publicHandler)
	mux.Handle("GET /v1/accounts/{id}/weight/at", publicHandler)
	mux.Handle("GET /v1/accounts/{id}/checkpoints", publicHandler)
	mux.Handle("GET /v1/tokens/{id}", publicHandler)
	mux.Handle("GET /v1/supply", publicHandler)

	// Transfer: caller identity from X-Account, no operator key.
	mux.Handle("POST /v1/tokens/{id}/transfer", publicHandler)

	// Mint and admin: operator key required.
	mux.Handle("POST /v1/tokens/mint", operatorHandler)
	mux.Handle("POST /admin/v1/step/advance", operatorHandler)
	mux.Handle("GET /admin/v1/status/summary", operatorHandler)
	mux.Handle("POST /admin/v1/gc/trigger", operatorHandler)

	return mux
}
