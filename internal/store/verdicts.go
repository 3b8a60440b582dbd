package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/readiness"
)

// #region verdict-row
// VerdictRow is one persisted readiness verdict with its row identity.
type VerdictRow struct {
	ID    string
	RunID string
	readiness.Verdict
}

// #endregion verdict-row

// #region append-verdict
// AppendVerdict inserts one verdict row. Rows are never updated or
// deleted; concurrent evaluators for the same key just produce more
// audit rows.
func (s *Store) AppendVerdict(ctx context.Context, runID string, v readiness.Verdict) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO integration_readiness (id, run_id, integration_key, eligible, reason, evaluated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, v.IntegrationKey,
		boolToInt(v.Eligible), v.Reason, v.EvaluatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append verdict for %s: %w", v.IntegrationKey, err)
	}
	return nil
}

// #endregion append-verdict

// #region list-verdicts
// ListVerdicts returns the most recent verdict rows across integrations.
func (s *Store) ListVerdicts(ctx context.Context, limit int) ([]VerdictRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, integration_key, eligible, reason, evaluated_at
		 FROM integration_readiness ORDER BY evaluated_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list verdicts: %w", err)
	}
	defer rows.Close()
	return scanVerdicts(rows)
}

// VerdictHistory returns one integration's verdicts, newest first,
// for trend analysis.
func (s *Store) VerdictHistory(ctx context.Context, key string, limit int) ([]VerdictRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, integration_key, eligible, reason, evaluated_at
		 FROM integration_readiness WHERE integration_key = ?
		 ORDER BY evaluated_at DESC, id LIMIT ?`, key, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("verdict history for %s: %w", key, err)
	}
	defer rows.Close()
	return scanVerdicts(rows)
}

// #endregion list-verdicts

// #region helpers

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanVerdicts(rows rowScanner) ([]VerdictRow, error) {
	var out []VerdictRow
	for rows.Next() {
		var r VerdictRow
		var eligible int
		var evaluatedStr string
		if err := rows.Scan(&r.ID, &r.RunID, &r.IntegrationKey, &eligible, &r.Reason, &evaluatedStr); err != nil {
			return nil, fmt.Errorf("scan verdict row: %w", err)
		}
		r.Eligible = eligible != 0
		t, err := time.Parse(time.RFC3339Nano, evaluatedStr)
		if err != nil {
			return nil, fmt.Errorf("parse verdict time %q: %w", evaluatedStr, err)
		}
		r.EvaluatedAt = t
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
