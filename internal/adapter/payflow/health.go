package payflow

import "context"

// HealthCheck implements ports.HealthChecker against the PayFlow service.
type HealthCheck struct {
	client *Client
}

// NewHealthCheck creates a PayFlow health checker.
func NewHealthCheck(client *Client) *HealthCheck {
	return &HealthCheck{client: client}
}

// Ping hits the wallet service health endpoint.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.client.HealthCheck(ctx)
	return err
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "payflow"
}
