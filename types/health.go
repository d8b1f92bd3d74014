package types

// Health statuses reported by the health endpoints.
const (
	HealthStatusUp   = "up"
	HealthStatusDown = "down"
)

// HealthResponse is the payload of the health endpoints. Components maps a
// dependency name to its status and is only populated by the readiness check.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}
