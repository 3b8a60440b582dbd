package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/logging"
)

func qualifiedStatus() *SystemStatus {
	return &SystemStatus{
		GlobalFusionScore:    72,
		ScoreOrigin:          OriginComputed,
		SystemHealth:         "active",
		HasEfficiencyMetrics: true,
		ConnectedIntegrations: []ConnectedIntegration{
			{Name: "slack", MetricsState: MetricsActive},
		},
	}
}

func TestDeriveComputedOnFullyQualifiedStatus(t *testing.T) {
	if mode := Derive(qualifiedStatus()); mode != ModeComputed {
		t.Fatalf("expected computed, got %s", mode)
	}
}

func TestDeriveBaselineOnNilStatus(t *testing.T) {
	if mode := Derive(nil); mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", mode)
	}
}

func TestDeriveBaselineOnBaselineOrigin(t *testing.T) {
	status := qualifiedStatus()
	status.ScoreOrigin = OriginBaseline
	if mode := Derive(status); mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", mode)
	}
}

func TestDeriveBaselineOnUnknownOrigin(t *testing.T) {
	status := qualifiedStatus()
	status.ScoreOrigin = "experimental"
	if mode := Derive(status); mode != ModeBaseline {
		t.Fatalf("unknown origin must fail closed, got %s", mode)
	}
}

func TestDeriveBaselineWithoutEfficiencyMetrics(t *testing.T) {
	status := qualifiedStatus()
	status.HasEfficiencyMetrics = false
	if mode := Derive(status); mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", mode)
	}
}

func TestDeriveBaselineWithOnlyObservingIntegrations(t *testing.T) {
	status := qualifiedStatus()
	status.ConnectedIntegrations = []ConnectedIntegration{
		{Name: "slack", MetricsState: MetricsObserving},
		{Name: "teams", MetricsState: MetricsObserving},
	}
	if mode := Derive(status); mode != ModeBaseline {
		t.Fatalf("observing-only integrations must fail closed, got %s", mode)
	}
}

func TestDeriveBaselineWithNoIntegrations(t *testing.T) {
	status := qualifiedStatus()
	status.ConnectedIntegrations = nil
	if mode := Derive(status); mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", mode)
	}
}

func TestDeriveFailClosedTotality(t *testing.T) {
	// Sweep every single-field degradation of the qualified status; only
	// the fully-qualified positive case yields computed.
	degrade := []func(*SystemStatus){
		func(s *SystemStatus) { s.ScoreOrigin = OriginBaseline },
		func(s *SystemStatus) { s.ScoreOrigin = "" },
		func(s *SystemStatus) { s.HasEfficiencyMetrics = false },
		func(s *SystemStatus) { s.ConnectedIntegrations = nil },
		func(s *SystemStatus) {
			for i := range s.ConnectedIntegrations {
				s.ConnectedIntegrations[i].MetricsState = MetricsObserving
			}
		},
	}
	for i, mutate := range degrade {
		status := qualifiedStatus()
		mutate(status)
		if mode := Derive(status); mode != ModeBaseline {
			t.Fatalf("degradation %d: expected baseline, got %s", i, mode)
		}
	}
}

func TestDeriveWithReasonNamesGuard(t *testing.T) {
	status := qualifiedStatus()
	status.HasEfficiencyMetrics = false
	d := DeriveWithReason(status)
	if d.Mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", d.Mode)
	}
	if d.Reason != "efficiency metrics not available" {
		t.Fatalf("unexpected reason: %q", d.Reason)
	}
}

// #region fake-source

type fakeStatusSource struct {
	statuses map[string]*SystemStatus
	err      error
}

func (f *fakeStatusSource) TenantStatus(_ context.Context, tenantID string) (*SystemStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.statuses[tenantID], nil
}

// #endregion fake-source

func TestDeriveForTenantComputed(t *testing.T) {
	src := &fakeStatusSource{statuses: map[string]*SystemStatus{"t1": qualifiedStatus()}}
	mode := DeriveForTenant(context.Background(), src, "t1", logging.Discard())
	if mode != ModeComputed {
		t.Fatalf("expected computed, got %s", mode)
	}
}

func TestDeriveForTenantFailsClosedOnEmptyID(t *testing.T) {
	src := &fakeStatusSource{statuses: map[string]*SystemStatus{}}
	if mode := DeriveForTenant(context.Background(), src, "", logging.Discard()); mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", mode)
	}
}

func TestDeriveForTenantFailsClosedOnQueryError(t *testing.T) {
	src := &fakeStatusSource{err: errors.New("connection reset")}
	if mode := DeriveForTenant(context.Background(), src, "t1", logging.Discard()); mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", mode)
	}
}

func TestDeriveForTenantFailsClosedOnMissingRecord(t *testing.T) {
	src := &fakeStatusSource{statuses: map[string]*SystemStatus{}}
	if mode := DeriveForTenant(context.Background(), src, "t-unknown", logging.Discard()); mode != ModeBaseline {
		t.Fatalf("expected baseline, got %s", mode)
	}
}
