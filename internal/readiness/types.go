package readiness

// #region imports
import (
	"context"
	"time"
)

// #endregion

// #region event
// Event is one raw activity record from an integration's event log.
type Event struct {
	Type      string
	CreatedAt time.Time
}

// #endregion event

// #region metric-sample
// MetricSample aggregates one integration's event log for a single
// evaluation run. Immutable per run, recomputed each cycle.
type MetricSample struct {
	IntegrationKey string
	EventCount     int
	FirstEventAt   time.Time
	LastEventAt    time.Time
	DataTypes      []string // sorted, deduplicated
}

// TimeSpanDays is the floor of the sampled window in days; 0 with fewer
// than 2 events or degenerate timestamps.
func (s MetricSample) TimeSpanDays() int {
	if s.EventCount < 2 || !s.LastEventAt.After(s.FirstEventAt) {
		return 0
	}
	return int(s.LastEventAt.Sub(s.FirstEventAt).Hours() / 24)
}

// #endregion metric-sample

// #region verdict
// Verdict is the per-integration, per-cycle eligibility record.
// Rows are append-only; history is retained for audit.
type Verdict struct {
	IntegrationKey string
	Eligible       bool
	Reason         string
	EvaluatedAt    time.Time
}

// BatchResult summarizes one evaluate-all run.
type BatchResult struct {
	RunID     string
	Evaluated int
	Results   []Verdict
}

// #endregion verdict

// #region thresholds
// Thresholds holds the three independent eligibility knobs.
type Thresholds struct {
	MinEventCount   int
	MinTimeSpanDays int
	MinDataTypes    int
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinEventCount:   10,
		MinTimeSpanDays: 7,
		MinDataTypes:    1,
	}
}

// #endregion thresholds

// #region sources
// EventSource reads an integration's raw event log.
type EventSource interface {
	EventsByIntegration(ctx context.Context, key string) ([]Event, error)
	IntegrationKeys(ctx context.Context) ([]string, error)
}

// TelemetrySource reports whether a secondary telemetry signal exists
// for an integration, matched fuzzily by service name.
type TelemetrySource interface {
	HasSignals(ctx context.Context, key string) (bool, error)
}

// MaturitySource enumerates integrations in the "connected" lifecycle
// stage. Promotion out of that stage happens elsewhere.
type MaturitySource interface {
	ConnectedIntegrations(ctx context.Context) ([]string, error)
}

// VerdictSink appends verdict rows. Append-only by contract.
type VerdictSink interface {
	AppendVerdict(ctx context.Context, runID string, v Verdict) error
}

// #endregion sources
