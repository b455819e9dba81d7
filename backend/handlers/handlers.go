// ABOUTME: HTTP handlers for the sizing calculator API
// ABOUTME: Holds shared dependencies and JSON request/response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/markalston/avi-sizing-calculator/backend/cache"
	"github.com/markalston/avi-sizing-calculator/backend/config"
	"github.com/markalston/avi-sizing-calculator/backend/metrics"
	"github.com/markalston/avi-sizing-calculator/backend/models"
	"github.com/markalston/avi-sizing-calculator/backend/services"
)

// maxBodyBytes caps request bodies at 1 MiB
const maxBodyBytes = 1 << 20

// ReportCache memoizes advanced reports by request hash
type ReportCache = cache.Cache[models.AggregateReport]

type Handler struct {
	cfg       *config.Config
	cache     *ReportCache
	calc      *services.SizingCalculator
	validator *services.RequestValidator
	metrics   *metrics.Metrics
}

// Option customizes a Handler
type Option func(*Handler)

// WithMetrics records estimate metrics on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithCapacityModel replaces the default capacity model
func WithCapacityModel(model models.CapacityModel) Option {
	return func(h *Handler) { h.calc = services.NewSizingCalculator(model) }
}

// NewHandler creates handlers. cfg and c may be nil; a nil cache disables memoization.
func NewHandler(cfg *config.Config, c *ReportCache, opts ...Option) *Handler {
	h := &Handler{
		cfg:       cfg,
		cache:     c,
		calc:      services.NewSizingCalculator(models.DefaultCapacityModel()),
		validator: services.NewRequestValidator(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// writeJSON writes a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes a JSON error response.
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeErrorWithDetails writes a JSON error response carrying a detail message.
func (h *Handler) writeErrorWithDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// writeValidationError writes a 400 listing every rejected field.
func (h *Handler) writeValidationError(w http.ResponseWriter, fields []models.FieldError) {
	h.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Error:  "Validation failed",
		Fields: fields,
		Code:   http.StatusBadRequest,
	})
}

// decodeJSON reads a size-limited JSON body into dst, rejecting unknown fields
// and trailing content.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
