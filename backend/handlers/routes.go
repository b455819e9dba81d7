// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods, handlers and rate limit tiers

package handlers

import "net/http"

// Rate limit tiers a route can belong to
const (
	TierNone     = ""         // exempt
	TierEstimate = "estimate" // CPU-bound sizing endpoints
	TierDefault  = "default"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method    string           // HTTP method (GET, POST, etc.)
	Path      string           // URL path (e.g., "/api/v1/health")
	Handler   http.HandlerFunc // Handler function
	RateLimit string           // rate limit tier
}

// Pattern returns the ServeMux pattern for the route
func (rt Route) Pattern() string {
	return rt.Method + " " + rt.Path
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health, RateLimit: TierNone},
		{Method: http.MethodGet, Path: "/api/v1/capacity-model", Handler: h.CapacityModel, RateLimit: TierDefault},

		// Estimates
		{Method: http.MethodPost, Path: "/api/v1/estimate/quick", Handler: h.EstimateQuick, RateLimit: TierEstimate},
		{Method: http.MethodPost, Path: "/api/v1/estimate/advanced", Handler: h.EstimateAdvanced, RateLimit: TierEstimate},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec, RateLimit: TierDefault},
	}
}
