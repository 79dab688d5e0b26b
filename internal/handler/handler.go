// Package handler provides HTTP request handlers for the REST API.
package handler

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Field help texts returned for missing or malformed required fields.
const (
	helpPriceRequired   = "This field cannot be left blank!"
	helpStoreIDRequired = "Every item needs a store id."
	helpFieldRequired   = "This field cannot be blank."
)
