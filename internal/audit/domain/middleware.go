package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pendergraft/sentinel/internal/observability/metrics"
)

// auditService is the interface required for logging middleware.
type auditService interface {
	Audit(ctx context.Context, address string) (*RiskAssessment, error)
}

// LoggingMiddleware returns a service middleware that logs every audit with
// a per-audit trace id and records the outcome metric.
func LoggingMiddleware(logger *slog.Logger) func(auditService) *loggingMiddleware {
	return func(next auditService) *loggingMiddleware {
		return &loggingMiddleware{
			next:   next,
			logger: logger,
		}
	}
}

type loggingMiddleware struct {
	next   auditService
	logger *slog.Logger
}

func (m *loggingMiddleware) Audit(ctx context.Context, address string) (*RiskAssessment, error) {
	start := time.Now()
	auditID := uuid.NewString()

	assessment, err := m.next.Audit(ctx, address)

	outcome := classifyOutcome(assessment, err)
	metrics.AuditRequest(outcome)

	m.logger.Info("Audit",
		"audit_id", auditID,
		"address", address,
		"outcome", outcome,
		"duration", time.Since(start),
		"error", err,
	)
	return assessment, err
}

// classifyOutcome buckets an audit result for logs and metrics.
func classifyOutcome(assessment *RiskAssessment, err error) string {
	switch {
	case errors.Is(err, ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, ErrModelInvocation):
		return "model_failure"
	case err != nil:
		return "error"
	case assessment == nil:
		return "error"
	case assessment.RiskLevel == RiskSystemError:
		return "system_error"
	case assessment.RiskLevel == RiskUnknown:
		return "unverified"
	default:
		return "scored"
	}
}
