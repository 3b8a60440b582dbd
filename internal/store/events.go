package store

import (
	"context"
	"fmt"
	"time"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/readiness"
)

// #region insert-event
// InsertEvent appends one raw activity record to an integration's log.
// Called by ingestion jobs and seed tooling.
func (s *Store) InsertEvent(ctx context.Context, key, eventType string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO integration_events (integration_key, event_type, created_at)
		 VALUES (?, ?, ?)`,
		key, eventType, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// #endregion insert-event

// #region events-by-integration
// EventsByIntegration returns an integration's full event history,
// ordered by time. No upper bound; readiness evaluates over history.
func (s *Store) EventsByIntegration(ctx context.Context, key string) ([]readiness.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_type, created_at FROM integration_events
		 WHERE integration_key = ? ORDER BY created_at`, key,
	)
	if err != nil {
		return nil, fmt.Errorf("query events for %s: %w", key, err)
	}
	defer rows.Close()

	var events []readiness.Event
	for rows.Next() {
		var ev readiness.Event
		var createdStr string
		if err := rows.Scan(&ev.Type, &createdStr); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		ev.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parse event time %q: %w", createdStr, err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// #endregion events-by-integration

// #region integration-keys
// IntegrationKeys lists every integration key observed in the event log.
func (s *Store) IntegrationKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT integration_key FROM integration_events ORDER BY integration_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("query integration keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key row: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// #endregion integration-keys

// #region telemetry
// InsertTelemetrySignal records a secondary telemetry signal for a
// service. Service names need not match integration keys exactly.
func (s *Store) InsertTelemetrySignal(ctx context.Context, serviceName string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO telemetry_signals (service_name, created_at) VALUES (?, ?)`,
		serviceName, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert telemetry signal: %w", err)
	}
	return nil
}

// HasSignals reports whether any telemetry signal fuzzily matches the
// integration key, in either containment direction.
func (s *Store) HasSignals(ctx context.Context, key string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM telemetry_signals
		 WHERE instr(lower(service_name), lower(?)) > 0
		    OR instr(lower(?), lower(service_name)) > 0`,
		key, key,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query telemetry signals for %s: %w", key, err)
	}
	return count > 0, nil
}

// #endregion telemetry

// #region maturity
// SetMaturityState records an integration's lifecycle stage. Promotion
// decisions happen outside this core; the evaluator only reads.
func (s *Store) SetMaturityState(ctx context.Context, key, state string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO integration_maturity (integration_key, state) VALUES (?, ?)
		 ON CONFLICT(integration_key) DO UPDATE SET state = excluded.state`,
		key, state,
	)
	if err != nil {
		return fmt.Errorf("set maturity for %s: %w", key, err)
	}
	return nil
}

// ConnectedIntegrations lists integrations in the "connected" stage.
func (s *Store) ConnectedIntegrations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT integration_key FROM integration_maturity
		 WHERE state = 'connected' ORDER BY integration_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("query connected integrations: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan maturity row: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// #endregion maturity
