package handler

import "github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// PingResponse is the body of the ping endpoint
// @Description Liveness probe answer
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp int64  `json:"timestamp"`
}

// HealthResponse is the body of the health endpoint
// @Description Service health with per-dependency status
type HealthResponse struct {
	Status  string            `json:"status" example:"healthy"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}
