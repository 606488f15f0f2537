package ports

import "context"

// Health states reported for upstream dependencies.
const (
	StatusOperational = "operational"
	StatusDegraded    = "degraded"
	StatusUnreachable = "unreachable"
)

// Prober performs a best-effort liveness check against an upstream
// service and maps the outcome onto the three health states.
type Prober interface {
	Probe(ctx context.Context) string
}
