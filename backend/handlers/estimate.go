// ABOUTME: HTTP handlers for quick and advanced sizing estimates
// ABOUTME: Validates input, memoizes advanced reports and strips traces unless asked

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/markalston/avi-sizing-calculator/backend/cache"
	"github.com/markalston/avi-sizing-calculator/backend/metrics"
	"github.com/markalston/avi-sizing-calculator/backend/middleware"
	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/backend/services"
)

// EstimateQuick returns the ratio-based SU estimate for a VCF core count.
func (h *Handler) EstimateQuick(w http.ResponseWriter, r *http.Request) {
	var req models.QuickRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.metrics.ObserveEstimate(metrics.KindQuick, metrics.OutcomeInvalid)
		h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return
	}

	estimate, err := h.calc.EstimateQuick(req.VCFCores)
	if err != nil {
		h.metrics.ObserveEstimate(metrics.KindQuick, metrics.OutcomeInvalid)
		h.writeValidationError(w, services.QuickFieldErrors(err))
		return
	}

	h.metrics.ObserveEstimate(metrics.KindQuick, metrics.OutcomeOK)
	h.writeJSON(w, http.StatusOK, estimate)
}

// advancedCacheKey is the part of a request that determines its report
type advancedCacheKey struct {
	Environments map[models.EnvironmentKey]map[models.Year]models.EnvironmentInput
	WAF          map[models.EnvironmentKey]bool
	GSLB         models.GSLBInput
	Architecture models.ArchitectureConfig
}

// EstimateAdvanced sizes every environment over three years and aggregates the result.
// Traces are included when the body sets "explain" or the query has explain=true.
func (h *Handler) EstimateAdvanced(w http.ResponseWriter, r *http.Request) {
	var req models.AdvancedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.metrics.ObserveEstimate(metrics.KindAdvanced, metrics.OutcomeInvalid)
		h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return
	}

	if fields := h.validator.ValidateAdvanced(req); len(fields) > 0 {
		h.metrics.ObserveEstimate(metrics.KindAdvanced, metrics.OutcomeInvalid)
		h.writeValidationError(w, fields)
		return
	}

	explain := req.Explain
	if q := r.URL.Query().Get("explain"); q != "" {
		if v, err := strconv.ParseBool(q); err == nil {
			explain = v
		}
	}

	envs, waf := req.Split()
	keyInput := advancedCacheKey{
		Environments: envs,
		WAF:          waf,
		GSLB:         req.GSLB.WithDefaults(),
		Architecture: req.Architecture.Resolve(),
	}

	report, cached, key := h.lookupReport(keyInput)
	if !cached {
		report = h.calc.EstimateAdvanced(keyInput.Environments, keyInput.WAF, keyInput.GSLB, keyInput.Architecture)
		if key != "" {
			h.cache.Set(key, report)
		}
	}

	outcome := metrics.OutcomeOK
	if cached {
		outcome = metrics.OutcomeCached
	}
	h.metrics.ObserveEstimate(metrics.KindAdvanced, outcome)
	h.metrics.ObservePeakSUs(report.PeakGrandTotal())

	if !explain {
		report = report.WithoutTrace()
	}

	resp := models.AdvancedResponse{
		Report: report,
		Metadata: models.ResponseMetadata{
			CalculationID: uuid.NewString(),
			Name:          req.Name,
			Timestamp:     time.Now().UTC(),
			Cached:        cached,
		},
	}

	slog.Info("Advanced estimate served",
		"request_id", middleware.RequestID(r.Context()),
		"calculation_id", resp.Metadata.CalculationID,
		"cached", cached,
		"peak_sus", report.PeakGrandTotal())

	h.writeJSON(w, http.StatusOK, resp)
}

// lookupReport returns a memoized report and the cache key it lives under.
// The key is empty when caching is disabled or the input cannot be hashed.
func (h *Handler) lookupReport(in advancedCacheKey) (models.AggregateReport, bool, string) {
	if h.cache == nil {
		return models.AggregateReport{}, false, ""
	}

	key, err := cache.Key("advanced", in)
	if err != nil {
		slog.Warn("Skipping report cache", "error", err)
		return models.AggregateReport{}, false, ""
	}

	report, ok := h.cache.Get(key)
	return report, ok, key
}
