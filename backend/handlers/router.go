// ABOUTME: Router assembly wiring the route table to middleware and ServeMux
// ABOUTME: Applies logging, CORS, per-tier rate limits and metrics to every route

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/avi-sizing-calculator/backend/config"
	"github.com/markalston/avi-sizing-calculator/backend/metrics"
	"github.com/markalston/avi-sizing-calculator/backend/middleware"
)

// NewRouter registers every route on a new ServeMux. m may be nil to disable
// metrics; cfg must not be nil.
func NewRouter(h *Handler, cfg *config.Config, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	limiters := map[string]*middleware.RateLimiter{}
	if cfg.RateLimitEnabled {
		limiters[TierEstimate] = middleware.NewRateLimiter(cfg.RateLimitEstimate, time.Minute)
		limiters[TierDefault] = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	}

	cors := middleware.CORS(cfg.CORSAllowedOrigins)

	for _, rt := range h.Routes() {
		var limit middleware.Middleware
		if rl, ok := limiters[rt.RateLimit]; ok {
			limit = middleware.RateLimit(rl, middleware.ClientIP)
		}

		mux.HandleFunc(rt.Pattern(), middleware.Chain(rt.Handler,
			middleware.LogRequest,
			cors,
			limit,
			m.Instrument,
		))
	}

	// Preflight for any API path; CORS answers before reaching the handler
	mux.HandleFunc("OPTIONS /api/", middleware.Chain(http.NotFound, middleware.LogRequest, cors))

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	return mux
}
