package authority

import (
	"context"
	"strings"
	"testing"
)

func descriptiveCounters() Counters {
	return Counters{
		MetricsCount:              150,
		ActiveIntegrations:        1,
		DaysSinceFirstIntegration: 10,
		SuccessfulPollCycles:      12,
	}
}

func TestClassifyLockedOnEmptyCounters(t *testing.T) {
	phase, meta := Classify(Counters{}, AccrualRate{})
	if phase != PhaseLocked {
		t.Fatalf("expected locked, got %s", phase)
	}
	if meta.NextPhase != PhaseDescriptive {
		t.Fatalf("expected next phase descriptive, got %s", meta.NextPhase)
	}
	if len(meta.NextPhaseRequirements) == 0 {
		t.Fatal("expected literal requirement deltas")
	}
}

func TestClassifyPicksHighestSatisfiedPhase(t *testing.T) {
	phase, meta := Classify(descriptiveCounters(), AccrualRate{})
	if phase != PhaseDescriptive {
		t.Fatalf("expected descriptive, got %s", phase)
	}
	if meta.NextPhase != PhaseDiagnostic {
		t.Fatalf("expected next phase diagnostic, got %s", meta.NextPhase)
	}
}

func TestClassifyPredictiveAtFullMaturity(t *testing.T) {
	c := Counters{
		MetricsCount:              6000,
		ActiveIntegrations:        3,
		DaysSinceFirstIntegration: 120,
		SuccessfulPollCycles:      500,
		FusionScoreRecalculations: 60,
		VarianceStabilityPercent:  90,
		SystemHealthStableDays:    45,
	}
	phase, meta := Classify(c, AccrualRate{})
	if phase != PhasePredictive {
		t.Fatalf("expected predictive, got %s", phase)
	}
	if meta.DaysUntilUnlockEstimate != -1 {
		t.Fatalf("top phase has no unlock estimate, got %d", meta.DaysUntilUnlockEstimate)
	}
}

func TestClassifyDoesNotSkipGaps(t *testing.T) {
	// Diagnostic prereqs unmet but prescriptive metric volume present:
	// the ladder stops at the first unmet phase.
	c := Counters{
		MetricsCount:              3000,
		ActiveIntegrations:        1, // diagnostic needs 2
		DaysSinceFirstIntegration: 60,
		SuccessfulPollCycles:      100,
		FusionScoreRecalculations: 30,
		VarianceStabilityPercent:  80,
	}
	phase, _ := Classify(c, AccrualRate{})
	if phase != PhaseDescriptive {
		t.Fatalf("expected descriptive, got %s", phase)
	}
}

func TestRequirementDeltasAreLiteral(t *testing.T) {
	c := Counters{MetricsCount: 450, ActiveIntegrations: 2, DaysSinceFirstIntegration: 30, SuccessfulPollCycles: 60, FusionScoreRecalculations: 5}
	_, meta := Classify(c, AccrualRate{})

	found := false
	for _, r := range meta.NextPhaseRequirements {
		if strings.Contains(r, "metrics_count 450/500") && strings.Contains(r, "need 50 more") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected metrics_count 450/500 delta, got %v", meta.NextPhaseRequirements)
	}
}

func TestUnlockEstimateShrinksAsCountersGrow(t *testing.T) {
	rate := AccrualRate{MetricsPerDay: 10, PollCyclesPerDay: 2, RecalcsPerDay: 1}

	low := Counters{MetricsCount: 100, ActiveIntegrations: 2, DaysSinceFirstIntegration: 30, SuccessfulPollCycles: 60, FusionScoreRecalculations: 10}
	high := low
	high.MetricsCount = 400

	_, lowMeta := Classify(low, rate)
	_, highMeta := Classify(high, rate)

	if lowMeta.DaysUntilUnlockEstimate < 0 || highMeta.DaysUntilUnlockEstimate < 0 {
		t.Fatalf("expected estimates, got %d and %d", lowMeta.DaysUntilUnlockEstimate, highMeta.DaysUntilUnlockEstimate)
	}
	if highMeta.DaysUntilUnlockEstimate > lowMeta.DaysUntilUnlockEstimate {
		t.Fatalf("estimate must not grow as counters grow: %d -> %d",
			lowMeta.DaysUntilUnlockEstimate, highMeta.DaysUntilUnlockEstimate)
	}
}

func TestUnlockEstimateUnknownWithoutRate(t *testing.T) {
	c := Counters{ActiveIntegrations: 1, DaysSinceFirstIntegration: 10, SuccessfulPollCycles: 12}
	_, meta := Classify(c, AccrualRate{}) // metrics lag, no metrics rate
	if meta.DaysUntilUnlockEstimate != -1 {
		t.Fatalf("expected -1 without accrual rate, got %d", meta.DaysUntilUnlockEstimate)
	}
}

// #region fake-store

type fakePhaseStore struct {
	phases map[string]InsightPhase
	audits []PhaseAudit
	err    error
}

func newFakePhaseStore() *fakePhaseStore {
	return &fakePhaseStore{phases: make(map[string]InsightPhase)}
}

func (f *fakePhaseStore) CurrentPhase(_ context.Context, tenantID string) (InsightPhase, bool, error) {
	if f.err != nil {
		return PhaseLocked, false, f.err
	}
	p, ok := f.phases[tenantID]
	return p, ok, nil
}

func (f *fakePhaseStore) SetPhase(_ context.Context, tenantID string, phase InsightPhase) error {
	f.phases[tenantID] = phase
	return nil
}

func (f *fakePhaseStore) AppendPhaseAudit(_ context.Context, entry PhaseAudit) error {
	f.audits = append(f.audits, entry)
	return nil
}

// #endregion fake-store

func TestRatchetPromotesAndAudits(t *testing.T) {
	store := newFakePhaseStore()
	ctx := context.Background()

	phase, _, err := ClassifyWithRatchet(ctx, store, "tenant-1", descriptiveCounters(), AccrualRate{})
	if err != nil {
		t.Fatalf("ClassifyWithRatchet: %v", err)
	}
	if phase != PhaseDescriptive {
		t.Fatalf("expected descriptive, got %s", phase)
	}
	if store.phases["tenant-1"] != PhaseDescriptive {
		t.Fatal("promotion not persisted")
	}
	if len(store.audits) != 1 || store.audits[0].Actor != "classifier" {
		t.Fatalf("expected one classifier audit row, got %v", store.audits)
	}
}

func TestRatchetNeverDemotesOnDip(t *testing.T) {
	store := newFakePhaseStore()
	store.phases["tenant-1"] = PhaseDiagnostic
	ctx := context.Background()

	phase, meta, err := ClassifyWithRatchet(ctx, store, "tenant-1", Counters{}, AccrualRate{})
	if err != nil {
		t.Fatalf("ClassifyWithRatchet: %v", err)
	}
	if phase != PhaseDiagnostic {
		t.Fatalf("ratchet must hold at diagnostic, got %s", phase)
	}
	if store.phases["tenant-1"] != PhaseDiagnostic {
		t.Fatal("persisted phase must not change on a dip")
	}
	if len(store.audits) != 0 {
		t.Fatal("a held ratchet is not an audited transition")
	}
	if !strings.Contains(meta.PhaseReason, "ratchet") {
		t.Fatalf("reason should note the ratchet hold, got %q", meta.PhaseReason)
	}
}

func TestDemoteRequiresActorAndReason(t *testing.T) {
	store := newFakePhaseStore()
	store.phases["tenant-1"] = PhaseDiagnostic

	if err := Demote(context.Background(), store, "tenant-1", PhaseDescriptive, "", "dip"); err == nil {
		t.Fatal("expected error without actor")
	}
	if err := Demote(context.Background(), store, "tenant-1", PhaseDescriptive, "ops", ""); err == nil {
		t.Fatal("expected error without reason")
	}
}

func TestDemoteLowersPhaseWithAudit(t *testing.T) {
	store := newFakePhaseStore()
	store.phases["tenant-1"] = PhasePrescriptive

	err := Demote(context.Background(), store, "tenant-1", PhaseDescriptive, "ops", "variance regression after migration")
	if err != nil {
		t.Fatalf("Demote: %v", err)
	}
	if store.phases["tenant-1"] != PhaseDescriptive {
		t.Fatalf("expected descriptive, got %s", store.phases["tenant-1"])
	}
	if len(store.audits) != 1 || store.audits[0].ToPhase != PhaseDescriptive {
		t.Fatalf("expected audited demotion, got %v", store.audits)
	}
}

func TestDemoteRejectsUpwardMove(t *testing.T) {
	store := newFakePhaseStore()
	store.phases["tenant-1"] = PhaseDescriptive

	if err := Demote(context.Background(), store, "tenant-1", PhasePredictive, "ops", "nope"); err == nil {
		t.Fatal("demote must not move a tenant up the ladder")
	}
}
