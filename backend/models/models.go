// ABOUTME: API envelope models shared by handlers and clients
// ABOUTME: Health, error and validation response structures

package models

import "time"

// HealthResponse reports service status
type HealthResponse struct {
	Status        string      `json:"status"`
	CapacityModel string      `json:"capacity_model"`
	CacheStatus   CacheStatus `json:"cache_status"`
	Timestamp     time.Time   `json:"timestamp"`
}

// CacheStatus describes the memoized report cache
type CacheStatus struct {
	Entries    int `json:"entries"`
	TTLSeconds int `json:"ttl_seconds"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	Code    int          `json:"code"`
}

// FieldError names one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
