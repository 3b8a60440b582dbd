package gate

// #region execution-mode
// ExecutionMode is the binary gate controlling whether any generative
// call may occur for a tenant. Derived per request, never cached.
type ExecutionMode string

const (
	ModeBaseline ExecutionMode = "baseline"
	ModeComputed ExecutionMode = "computed"
)

// #endregion execution-mode

// #region score-origin
// ScoreOrigin records whether a tenant's fusion score was computed from
// real activity or is still the seeded baseline value.
type ScoreOrigin string

const (
	OriginBaseline ScoreOrigin = "baseline"
	OriginComputed ScoreOrigin = "computed"
)

// #endregion score-origin

// #region metrics-state
// MetricsState is an integration's metric-collection lifecycle stage.
type MetricsState string

const (
	MetricsObserving MetricsState = "observing"
	MetricsActive    MetricsState = "active"
)

// #endregion metrics-state

// #region system-status
// ConnectedIntegration is one integration attached to a tenant.
type ConnectedIntegration struct {
	Name         string
	MetricsState MetricsState
}

// SystemStatus is the per-tenant snapshot the resolver derives from.
// Mutated by upstream metric-collection jobs; read-only here.
type SystemStatus struct {
	GlobalFusionScore     int
	ScoreOrigin           ScoreOrigin
	SystemHealth          string // "observing" | "active"
	HasEfficiencyMetrics  bool
	ConnectedIntegrations []ConnectedIntegration
}

// #endregion system-status

// #region decision
// Decision pairs the derived mode with the guard that produced it,
// for structured logging and audit.
type Decision struct {
	Mode   ExecutionMode
	Reason string
}

// #endregion decision
