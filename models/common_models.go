// models/common_models.go
package models

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error" example:"Email is required"`
}

// HealthResponse reports liveness and how lookups will be served.
type HealthResponse struct {
	Status             string `json:"status" example:"UP"`
	UpstreamConfigured bool   `json:"upstream_configured"`
	SimulationFallback bool   `json:"simulation_fallback"`
	PendingHandoffs    int    `json:"pending_handoffs"`
}
