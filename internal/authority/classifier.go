package authority

// #region imports
import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// #endregion

// #region counters

// Counters aggregates the maturity signals the readiness pipeline
// accumulates per tenant. Recomputed from source data each time it is
// needed, never persisted as source of truth.
type Counters struct {
	MetricsCount              int
	ActiveIntegrations        int
	DaysSinceFirstIntegration int
	SuccessfulPollCycles      int
	FusionScoreRecalculations int
	VarianceStabilityPercent  float64
	SystemHealthStableDays    int
}

// AccrualRate carries recent per-day accumulation rates used to
// extrapolate how long until the next phase unlocks. Zero rates disable
// the estimate for that axis.
type AccrualRate struct {
	MetricsPerDay    float64
	PollCyclesPerDay float64
	RecalcsPerDay    float64
}

// #endregion counters

// #region metadata

// Metadata explains the current phase to the end user and to callers
// deciding what vocabulary is legal. Derived, never persisted.
type Metadata struct {
	CurrentPhase            InsightPhase
	PhaseReason             string
	NextPhase               InsightPhase
	NextPhaseRequirements   []string
	DaysUntilUnlockEstimate int // -1 when no estimate is possible
	Counters                Counters
}

// #endregion metadata

// #region requirements

// phasePrereqs holds the thresholds a tenant must meet before a phase
// unlocks. A zero field means the axis is not required for that phase.
type phasePrereqs struct {
	MetricsCount              int
	ActiveIntegrations        int
	DaysSinceFirstIntegration int
	SuccessfulPollCycles      int
	FusionScoreRecalculations int
	VarianceStabilityPercent  float64
	SystemHealthStableDays    int
}

var prereqs = map[InsightPhase]phasePrereqs{
	PhaseDescriptive: {
		MetricsCount:              100,
		ActiveIntegrations:        1,
		DaysSinceFirstIntegration: 7,
		SuccessfulPollCycles:      10,
	},
	PhaseDiagnostic: {
		MetricsCount:              500,
		ActiveIntegrations:        2,
		DaysSinceFirstIntegration: 21,
		SuccessfulPollCycles:      50,
		FusionScoreRecalculations: 5,
	},
	PhasePrescriptive: {
		MetricsCount:              2000,
		DaysSinceFirstIntegration: 45,
		FusionScoreRecalculations: 20,
		VarianceStabilityPercent:  70,
	},
	PhasePredictive: {
		MetricsCount:              5000,
		DaysSinceFirstIntegration: 90,
		VarianceStabilityPercent:  85,
		SystemHealthStableDays:    30,
	},
}

// meets reports whether the counters satisfy every non-zero prerequisite.
func (c Counters) meets(p phasePrereqs) bool {
	return c.MetricsCount >= p.MetricsCount &&
		c.ActiveIntegrations >= p.ActiveIntegrations &&
		c.DaysSinceFirstIntegration >= p.DaysSinceFirstIntegration &&
		c.SuccessfulPollCycles >= p.SuccessfulPollCycles &&
		c.FusionScoreRecalculations >= p.FusionScoreRecalculations &&
		c.VarianceStabilityPercent >= p.VarianceStabilityPercent &&
		c.SystemHealthStableDays >= p.SystemHealthStableDays
}

// #endregion requirements

// #region classify

// Classify picks the highest phase whose prerequisites are all met and
// returns metadata explaining the choice, including the literal deltas
// to the next phase and a linear unlock ETA in days.
func Classify(c Counters, rate AccrualRate) (InsightPhase, Metadata) {
	current := PhaseLocked
	for _, ph := range phaseOrder[1:] {
		if c.meets(prereqs[ph]) {
			current = ph
		} else {
			break
		}
	}

	meta := Metadata{
		CurrentPhase: current,
		PhaseReason:  phaseReason(current, c),
		NextPhase:    current.Next(),
		Counters:     c,
	}

	if current == PhasePredictive {
		meta.NextPhase = PhasePredictive
		meta.DaysUntilUnlockEstimate = -1
		return current, meta
	}

	next := prereqs[meta.NextPhase]
	meta.NextPhaseRequirements = requirementDeltas(c, next)
	meta.DaysUntilUnlockEstimate = estimateUnlockDays(c, next, rate)
	return current, meta
}

// #endregion classify

// #region reason

func phaseReason(p InsightPhase, c Counters) string {
	switch p {
	case PhaseLocked:
		return fmt.Sprintf("insufficient history: %d metrics, %d active integrations, %d days",
			c.MetricsCount, c.ActiveIntegrations, c.DaysSinceFirstIntegration)
	case PhasePredictive:
		return fmt.Sprintf("full history available: %d metrics over %d days, variance stability %.0f%%",
			c.MetricsCount, c.DaysSinceFirstIntegration, c.VarianceStabilityPercent)
	default:
		return fmt.Sprintf("prerequisites met through %s: %d metrics, %d active integrations, %d days",
			p, c.MetricsCount, c.ActiveIntegrations, c.DaysSinceFirstIntegration)
	}
}

// requirementDeltas renders the literal gap between current counters and
// the next phase's thresholds. Axes already satisfied are omitted.
func requirementDeltas(c Counters, p phasePrereqs) []string {
	var reqs []string
	if c.MetricsCount < p.MetricsCount {
		reqs = append(reqs, fmt.Sprintf("metrics_count %d/%d (need %d more)",
			c.MetricsCount, p.MetricsCount, p.MetricsCount-c.MetricsCount))
	}
	if c.ActiveIntegrations < p.ActiveIntegrations {
		reqs = append(reqs, fmt.Sprintf("active_integrations %d/%d (need %d more)",
			c.ActiveIntegrations, p.ActiveIntegrations, p.ActiveIntegrations-c.ActiveIntegrations))
	}
	if c.DaysSinceFirstIntegration < p.DaysSinceFirstIntegration {
		reqs = append(reqs, fmt.Sprintf("days_since_first_integration %d/%d (need %d more)",
			c.DaysSinceFirstIntegration, p.DaysSinceFirstIntegration, p.DaysSinceFirstIntegration-c.DaysSinceFirstIntegration))
	}
	if c.SuccessfulPollCycles < p.SuccessfulPollCycles {
		reqs = append(reqs, fmt.Sprintf("successful_poll_cycles %d/%d (need %d more)",
			c.SuccessfulPollCycles, p.SuccessfulPollCycles, p.SuccessfulPollCycles-c.SuccessfulPollCycles))
	}
	if c.FusionScoreRecalculations < p.FusionScoreRecalculations {
		reqs = append(reqs, fmt.Sprintf("fusion_score_recalculations %d/%d (need %d more)",
			c.FusionScoreRecalculations, p.FusionScoreRecalculations, p.FusionScoreRecalculations-c.FusionScoreRecalculations))
	}
	if c.VarianceStabilityPercent < p.VarianceStabilityPercent {
		reqs = append(reqs, fmt.Sprintf("variance_stability_percent %.0f/%.0f",
			c.VarianceStabilityPercent, p.VarianceStabilityPercent))
	}
	if c.SystemHealthStableDays < p.SystemHealthStableDays {
		reqs = append(reqs, fmt.Sprintf("system_health_stable_days %d/%d (need %d more)",
			c.SystemHealthStableDays, p.SystemHealthStableDays, p.SystemHealthStableDays-c.SystemHealthStableDays))
	}
	return reqs
}

// #endregion reason

// #region eta

// estimateUnlockDays projects how many days until every lagging counter
// crosses its threshold, using a simple linear extrapolation from recent
// accrual rates. The estimate shrinks monotonically as counters grow.
// Elapsed-time axes advance one day per day. Returns -1 when a lagging
// axis has no usable rate (variance stability has no accrual model).
func estimateUnlockDays(c Counters, p phasePrereqs, rate AccrualRate) int {
	// Variance stability and active integrations have no accrual rate;
	// if they lag, no honest day estimate exists.
	if c.VarianceStabilityPercent < p.VarianceStabilityPercent ||
		c.ActiveIntegrations < p.ActiveIntegrations {
		return -1
	}

	var worst float64
	known := true
	axis := func(current, required int, perDay float64) {
		if current >= required {
			return
		}
		if perDay <= 0 {
			known = false
			return
		}
		if d := float64(required-current) / perDay; d > worst {
			worst = d
		}
	}

	axis(c.MetricsCount, p.MetricsCount, rate.MetricsPerDay)
	axis(c.SuccessfulPollCycles, p.SuccessfulPollCycles, rate.PollCyclesPerDay)
	axis(c.FusionScoreRecalculations, p.FusionScoreRecalculations, rate.RecalcsPerDay)
	// Calendar axes accrue at exactly one per day.
	axis(c.DaysSinceFirstIntegration, p.DaysSinceFirstIntegration, 1)
	axis(c.SystemHealthStableDays, p.SystemHealthStableDays, 1)

	if !known {
		return -1
	}
	return int(math.Ceil(worst))
}

// #endregion eta

// #region ratchet

// PhaseStore persists the per-tenant phase ratchet and its audit trail.
type PhaseStore interface {
	CurrentPhase(ctx context.Context, tenantID string) (InsightPhase, bool, error)
	SetPhase(ctx context.Context, tenantID string, phase InsightPhase) error
	AppendPhaseAudit(ctx context.Context, entry PhaseAudit) error
}

// PhaseAudit is one row in the append-only phase audit log.
type PhaseAudit struct {
	TenantID  string
	FromPhase InsightPhase
	ToPhase   InsightPhase
	Actor     string
	Reason    string
	CreatedAt time.Time
}

// ClassifyWithRatchet classifies the tenant's counters and applies the
// one-way ratchet: a transient metric dip never demotes a tenant. When
// the computed phase exceeds the persisted one, the promotion is
// persisted and audited. Missing persisted state counts as locked.
func ClassifyWithRatchet(ctx context.Context, store PhaseStore, tenantID string, c Counters, rate AccrualRate) (InsightPhase, Metadata, error) {
	computed, meta := Classify(c, rate)

	persisted, found, err := store.CurrentPhase(ctx, tenantID)
	if err != nil {
		return PhaseLocked, Metadata{}, fmt.Errorf("load phase for %s: %w", tenantID, err)
	}
	if !found {
		persisted = PhaseLocked
	}

	if computed.AtLeast(persisted) {
		if computed.Rank() > persisted.Rank() {
			if err := store.SetPhase(ctx, tenantID, computed); err != nil {
				return PhaseLocked, Metadata{}, fmt.Errorf("persist phase for %s: %w", tenantID, err)
			}
			audit := PhaseAudit{
				TenantID:  tenantID,
				FromPhase: persisted,
				ToPhase:   computed,
				Actor:     "classifier",
				Reason:    meta.PhaseReason,
				CreatedAt: time.Now().UTC(),
			}
			if err := store.AppendPhaseAudit(ctx, audit); err != nil {
				return PhaseLocked, Metadata{}, fmt.Errorf("audit promotion for %s: %w", tenantID, err)
			}
		}
		return computed, meta, nil
	}

	// Ratchet holds: report the persisted phase, keep the metadata's
	// counters but note the hold in the reason.
	meta.CurrentPhase = persisted
	meta.PhaseReason = fmt.Sprintf("ratchet holds at %s despite counters computing %s", persisted, computed)
	meta.NextPhase = persisted.Next()
	return persisted, meta, nil
}

// Demote is the explicit, audited override that lowers a tenant's phase.
// It is the only path down the ladder; actor and reason are mandatory.
func Demote(ctx context.Context, store PhaseStore, tenantID string, target InsightPhase, actor, reason string) error {
	if strings.TrimSpace(actor) == "" || strings.TrimSpace(reason) == "" {
		return fmt.Errorf("demote %s: actor and reason are required", tenantID)
	}
	if !target.Valid() {
		return fmt.Errorf("demote %s: unknown phase %q", tenantID, target)
	}

	current, found, err := store.CurrentPhase(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load phase for %s: %w", tenantID, err)
	}
	if !found {
		current = PhaseLocked
	}
	if target.AtLeast(current) && target != current {
		return fmt.Errorf("demote %s: %s is not below current phase %s", tenantID, target, current)
	}

	if err := store.SetPhase(ctx, tenantID, target); err != nil {
		return fmt.Errorf("persist demotion for %s: %w", tenantID, err)
	}
	return store.AppendPhaseAudit(ctx, PhaseAudit{
		TenantID:  tenantID,
		FromPhase: current,
		ToPhase:   target,
		Actor:     actor,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	})
}

// #endregion ratchet
