package gate

// #region imports
import (
	"context"
	"log/slog"
)

// #endregion

// #region derive
// Derive resolves a tenant's execution mode from an in-memory status.
// Guards run in order and short-circuit to baseline at the first
// failure; ambiguity always resolves toward the least-capable mode.
func Derive(status *SystemStatus) ExecutionMode {
	return DeriveWithReason(status).Mode
}

// DeriveWithReason is Derive plus the guard that decided the outcome.
func DeriveWithReason(status *SystemStatus) Decision {
	// 1. Missing status
	if status == nil {
		return Decision{Mode: ModeBaseline, Reason: "no system status"}
	}

	// 2. Score still seeded
	if status.ScoreOrigin != OriginComputed {
		return Decision{Mode: ModeBaseline, Reason: "score origin is not computed"}
	}

	// 3. No efficiency metrics yet
	if !status.HasEfficiencyMetrics {
		return Decision{Mode: ModeBaseline, Reason: "efficiency metrics not available"}
	}

	// 4. No integration actively reporting
	active := false
	for _, integ := range status.ConnectedIntegrations {
		if integ.MetricsState == MetricsActive {
			active = true
			break
		}
	}
	if !active {
		return Decision{Mode: ModeBaseline, Reason: "no integration with active metrics"}
	}

	return Decision{Mode: ModeComputed, Reason: "score computed with active metrics"}
}

// #endregion derive

// #region status-source
// StatusSource loads a tenant's persisted status. The store package
// implements it over the tenant score tables.
type StatusSource interface {
	TenantStatus(ctx context.Context, tenantID string) (*SystemStatus, error)
}

// #endregion status-source

// #region derive-for-tenant
// DeriveForTenant is the database-backed variant. Every failure mode --
// missing tenant id, query error, absent score record -- resolves to
// baseline, never to computed.
func DeriveForTenant(ctx context.Context, src StatusSource, tenantID string, logger *slog.Logger) ExecutionMode {
	if tenantID == "" {
		logger.Debug("execution mode fell closed", "reason", "missing tenant id")
		return ModeBaseline
	}

	status, err := src.TenantStatus(ctx, tenantID)
	if err != nil {
		logger.Warn("execution mode fell closed", "tenant", tenantID, "error", err)
		return ModeBaseline
	}

	decision := DeriveWithReason(status)
	logger.Debug("execution mode resolved",
		"tenant", tenantID, "mode", string(decision.Mode), "reason", decision.Reason)
	return decision.Mode
}

// #endregion derive-for-tenant
