package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/authority"
)

// #region current-phase
// CurrentPhase reads a tenant's persisted phase. The bool is false when
// no phase has ever been recorded.
func (s *Store) CurrentPhase(ctx context.Context, tenantID string) (authority.InsightPhase, bool, error) {
	var phase string
	err := s.db.QueryRowContext(ctx,
		`SELECT phase FROM phase_state WHERE tenant_id = ?`, tenantID,
	).Scan(&phase)
	if errors.Is(err, sql.ErrNoRows) {
		return authority.PhaseLocked, false, nil
	}
	if err != nil {
		return authority.PhaseLocked, false, fmt.Errorf("query phase for %s: %w", tenantID, err)
	}
	return authority.InsightPhase(phase), true, nil
}

// #endregion current-phase

// #region set-phase
// SetPhase records a tenant's phase. Callers go through the classifier
// ratchet or the audited demotion override, never directly.
func (s *Store) SetPhase(ctx context.Context, tenantID string, phase authority.InsightPhase) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO phase_state (tenant_id, phase, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(tenant_id) DO UPDATE SET phase = excluded.phase, updated_at = excluded.updated_at`,
		tenantID, string(phase), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set phase for %s: %w", tenantID, err)
	}
	return nil
}

// #endregion set-phase

// #region phase-audit
// AppendPhaseAudit writes one row to the append-only phase audit log.
func (s *Store) AppendPhaseAudit(ctx context.Context, entry authority.PhaseAudit) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO phase_audit (tenant_id, from_phase, to_phase, actor, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.TenantID, string(entry.FromPhase), string(entry.ToPhase),
		entry.Actor, entry.Reason, entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append phase audit for %s: %w", entry.TenantID, err)
	}
	return nil
}

// PhaseAuditHistory returns a tenant's phase transitions, newest first.
func (s *Store) PhaseAuditHistory(ctx context.Context, tenantID string, limit int) ([]authority.PhaseAudit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tenant_id, from_phase, to_phase, actor, reason, created_at
		 FROM phase_audit WHERE tenant_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		tenantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("phase audit history for %s: %w", tenantID, err)
	}
	defer rows.Close()

	var out []authority.PhaseAudit
	for rows.Next() {
		var e authority.PhaseAudit
		var from, to, createdStr string
		if err := rows.Scan(&e.TenantID, &from, &to, &e.Actor, &e.Reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan phase audit row: %w", err)
		}
		e.FromPhase = authority.InsightPhase(from)
		e.ToPhase = authority.InsightPhase(to)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion phase-audit
