package readiness

// #region imports
import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// #endregion

// #region evaluator
// Evaluator computes per-integration readiness verdicts. Stateless
// across runs; safe for concurrent use.
type Evaluator struct {
	events     EventSource
	telemetry  TelemetrySource
	maturity   MaturitySource
	verdicts   VerdictSink
	thresholds Thresholds
	workers    int
	logger     *slog.Logger
}

// NewEvaluator wires an evaluator over its data sources. A workers
// value below 1 falls back to serial evaluation.
func NewEvaluator(events EventSource, telemetry TelemetrySource, maturity MaturitySource, verdicts VerdictSink, thresholds Thresholds, workers int, logger *slog.Logger) *Evaluator {
	if workers < 1 {
		workers = 1
	}
	return &Evaluator{
		events:     events,
		telemetry:  telemetry,
		maturity:   maturity,
		verdicts:   verdicts,
		thresholds: thresholds,
		workers:    workers,
		logger:     logger,
	}
}

// #endregion evaluator

// #region evaluate
// Evaluate computes one integration's verdict over its full event
// history. Internal errors never escape: they produce an ineligible
// verdict with the error embedded in the reason.
func (e *Evaluator) Evaluate(ctx context.Context, key string) Verdict {
	now := time.Now().UTC()

	events, err := e.events.EventsByIntegration(ctx, key)
	if err != nil {
		return Verdict{
			IntegrationKey: key,
			Eligible:       false,
			Reason:         fmt.Sprintf("evaluation failed: %v", err),
			EvaluatedAt:    now,
		}
	}

	hasTelemetry, err := e.telemetry.HasSignals(ctx, key)
	if err != nil {
		// The secondary signal can only add a tag; losing it is the
		// conservative direction, so the evaluation continues without it.
		e.logger.Warn("telemetry lookup failed", "integration", key, "error", err)
		hasTelemetry = false
	}

	sample := buildSample(key, events, hasTelemetry)
	eligible, reason := e.judge(sample)

	return Verdict{
		IntegrationKey: key,
		Eligible:       eligible,
		Reason:         reason,
		EvaluatedAt:    now,
	}
}

// judge applies the three independent thresholds. Every failing
// criterion lands in the reason so operators see all gaps at once.
func (e *Evaluator) judge(sample MetricSample) (bool, string) {
	span := sample.TimeSpanDays()

	var failures []string
	if sample.EventCount < e.thresholds.MinEventCount {
		failures = append(failures, fmt.Sprintf("Event count (%d) below threshold (%d)",
			sample.EventCount, e.thresholds.MinEventCount))
	}
	if span < e.thresholds.MinTimeSpanDays {
		failures = append(failures, fmt.Sprintf("Time span (%d days) below threshold (%d days)",
			span, e.thresholds.MinTimeSpanDays))
	}
	if len(sample.DataTypes) < e.thresholds.MinDataTypes {
		failures = append(failures, fmt.Sprintf("Data types (%d) below threshold (%d)",
			len(sample.DataTypes), e.thresholds.MinDataTypes))
	}

	if len(failures) > 0 {
		return false, strings.Join(failures, "; ")
	}
	return true, fmt.Sprintf("Eligible: %d events over %d days, data types: %s",
		sample.EventCount, span, strings.Join(sample.DataTypes, ", "))
}

// #endregion evaluate

// #region evaluate-all
// EvaluateAll evaluates every integration in "connected" maturity state
// plus every key seen in the event log, deduplicated. Per-integration
// failures are isolated: one bad integration never suppresses the
// readiness signal for the others. Idempotent to re-run; each run
// appends fresh verdict rows.
func (e *Evaluator) EvaluateAll(ctx context.Context) (BatchResult, error) {
	connected, err := e.maturity.ConnectedIntegrations(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("enumerate connected integrations: %w", err)
	}
	observed, err := e.events.IntegrationKeys(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("enumerate event log keys: %w", err)
	}

	keys := dedupe(append(connected, observed...))
	runID := uuid.New().String()

	results := make([]Verdict, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			results[i] = e.evaluateIsolated(gctx, runID, key)
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes.
	_ = g.Wait()

	eligible := 0
	for _, v := range results {
		if v.Eligible {
			eligible++
		}
	}
	e.logger.Info("readiness batch complete",
		"run_id", runID, "evaluated", len(results), "eligible", eligible)

	return BatchResult{RunID: runID, Evaluated: len(results), Results: results}, nil
}

// evaluateIsolated runs one evaluation with panic isolation and
// persists the verdict. Persistence failures are logged, not fatal.
func (e *Evaluator) evaluateIsolated(ctx context.Context, runID, key string) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			verdict = Verdict{
				IntegrationKey: key,
				Eligible:       false,
				Reason:         fmt.Sprintf("evaluation failed: panic: %v", r),
				EvaluatedAt:    time.Now().UTC(),
			}
			e.logger.Error("evaluation panicked", "integration", key, "panic", r)
		}
		if err := e.verdicts.AppendVerdict(ctx, runID, verdict); err != nil {
			e.logger.Error("verdict append failed", "integration", key, "error", err)
		}
	}()

	return e.Evaluate(ctx, key)
}

// #endregion evaluate-all

// #region helpers
func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	var out []string
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// #endregion helpers
