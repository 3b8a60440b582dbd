package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS integration_events (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	integration_key  TEXT NOT NULL,
	event_type       TEXT NOT NULL,
	created_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_integration_events_key
	ON integration_events(integration_key, created_at);

CREATE TABLE IF NOT EXISTS telemetry_signals (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	service_name  TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS integration_maturity (
	integration_key  TEXT PRIMARY KEY,
	state            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS integration_readiness (
	id               TEXT PRIMARY KEY,
	run_id           TEXT NOT NULL,
	integration_key  TEXT NOT NULL,
	eligible         INTEGER NOT NULL,
	reason           TEXT NOT NULL,
	evaluated_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tenant_scores (
	tenant_id               TEXT PRIMARY KEY,
	global_fusion_score     INTEGER NOT NULL,
	score_origin            TEXT NOT NULL,
	system_health           TEXT NOT NULL,
	has_efficiency_metrics  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tenant_integrations (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	tenant_id      TEXT NOT NULL,
	name           TEXT NOT NULL,
	metrics_state  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS maturity_counters (
	tenant_id                     TEXT PRIMARY KEY,
	metrics_count                 INTEGER NOT NULL DEFAULT 0,
	active_integrations           INTEGER NOT NULL DEFAULT 0,
	days_since_first_integration  INTEGER NOT NULL DEFAULT 0,
	successful_poll_cycles        INTEGER NOT NULL DEFAULT 0,
	fusion_score_recalculations   INTEGER NOT NULL DEFAULT 0,
	variance_stability_percent    REAL NOT NULL DEFAULT 0,
	system_health_stable_days     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS phase_state (
	tenant_id   TEXT PRIMARY KEY,
	phase       TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS phase_audit (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	tenant_id   TEXT NOT NULL,
	from_phase  TEXT NOT NULL,
	to_phase    TEXT NOT NULL,
	actor       TEXT NOT NULL,
	reason      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store manages gating state in SQLite: the integration event log, the
// append-only readiness verdict log, persisted tenant status, and the
// phase ratchet with its audit trail.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for ad-hoc inspection tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor
