package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/authority"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/gate"
)

// #region tenant-score
// UpsertTenantScore persists a tenant's score state. Written by the
// upstream metric-collection jobs; this core only reads it back.
func (s *Store) UpsertTenantScore(ctx context.Context, tenantID string, score int, origin gate.ScoreOrigin, health string, hasEfficiency bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tenant_scores (tenant_id, global_fusion_score, score_origin, system_health, has_efficiency_metrics)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(tenant_id) DO UPDATE SET
			global_fusion_score = excluded.global_fusion_score,
			score_origin = excluded.score_origin,
			system_health = excluded.system_health,
			has_efficiency_metrics = excluded.has_efficiency_metrics`,
		tenantID, score, string(origin), health, boolToInt(hasEfficiency),
	)
	if err != nil {
		return fmt.Errorf("upsert tenant score for %s: %w", tenantID, err)
	}
	return nil
}

// AddTenantIntegration attaches an integration to a tenant.
func (s *Store) AddTenantIntegration(ctx context.Context, tenantID, name string, state gate.MetricsState) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tenant_integrations (tenant_id, name, metrics_state) VALUES (?, ?, ?)`,
		tenantID, name, string(state),
	)
	if err != nil {
		return fmt.Errorf("add tenant integration for %s: %w", tenantID, err)
	}
	return nil
}

// #endregion tenant-score

// #region tenant-status
// TenantStatus assembles a tenant's SystemStatus from the score and
// integration tables. A missing score record returns a nil status, not
// an error; the gate resolves both toward baseline.
func (s *Store) TenantStatus(ctx context.Context, tenantID string) (*gate.SystemStatus, error) {
	var status gate.SystemStatus
	var origin string
	var hasEfficiency int
	err := s.db.QueryRowContext(ctx,
		`SELECT global_fusion_score, score_origin, system_health, has_efficiency_metrics
		 FROM tenant_scores WHERE tenant_id = ?`, tenantID,
	).Scan(&status.GlobalFusionScore, &origin, &status.SystemHealth, &hasEfficiency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query tenant score for %s: %w", tenantID, err)
	}
	status.ScoreOrigin = gate.ScoreOrigin(origin)
	status.HasEfficiencyMetrics = hasEfficiency != 0

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, metrics_state FROM tenant_integrations WHERE tenant_id = ? ORDER BY name`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tenant integrations for %s: %w", tenantID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var integ gate.ConnectedIntegration
		var state string
		if err := rows.Scan(&integ.Name, &state); err != nil {
			return nil, fmt.Errorf("scan tenant integration row: %w", err)
		}
		integ.MetricsState = gate.MetricsState(state)
		status.ConnectedIntegrations = append(status.ConnectedIntegrations, integ)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &status, nil
}

// #endregion tenant-status

// #region counters
// UpsertCounters persists the maturity counters the collection jobs
// accumulate for a tenant.
func (s *Store) UpsertCounters(ctx context.Context, tenantID string, c authority.Counters) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO maturity_counters (tenant_id, metrics_count, active_integrations,
			days_since_first_integration, successful_poll_cycles,
			fusion_score_recalculations, variance_stability_percent, system_health_stable_days)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(tenant_id) DO UPDATE SET
			metrics_count = excluded.metrics_count,
			active_integrations = excluded.active_integrations,
			days_since_first_integration = excluded.days_since_first_integration,
			successful_poll_cycles = excluded.successful_poll_cycles,
			fusion_score_recalculations = excluded.fusion_score_recalculations,
			variance_stability_percent = excluded.variance_stability_percent,
			system_health_stable_days = excluded.system_health_stable_days`,
		tenantID, c.MetricsCount, c.ActiveIntegrations, c.DaysSinceFirstIntegration,
		c.SuccessfulPollCycles, c.FusionScoreRecalculations,
		c.VarianceStabilityPercent, c.SystemHealthStableDays,
	)
	if err != nil {
		return fmt.Errorf("upsert counters for %s: %w", tenantID, err)
	}
	return nil
}

// CountersForTenant loads a tenant's maturity counters. A missing row
// is zero counters, which classifies as locked.
func (s *Store) CountersForTenant(ctx context.Context, tenantID string) (authority.Counters, error) {
	var c authority.Counters
	err := s.db.QueryRowContext(ctx,
		`SELECT metrics_count, active_integrations, days_since_first_integration,
			successful_poll_cycles, fusion_score_recalculations,
			variance_stability_percent, system_health_stable_days
		 FROM maturity_counters WHERE tenant_id = ?`, tenantID,
	).Scan(&c.MetricsCount, &c.ActiveIntegrations, &c.DaysSinceFirstIntegration,
		&c.SuccessfulPollCycles, &c.FusionScoreRecalculations,
		&c.VarianceStabilityPercent, &c.SystemHealthStableDays)
	if errors.Is(err, sql.ErrNoRows) {
		return authority.Counters{}, nil
	}
	if err != nil {
		return authority.Counters{}, fmt.Errorf("query counters for %s: %w", tenantID, err)
	}
	return c, nil
}

// #endregion counters
