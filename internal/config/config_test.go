package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.MinEventCount != 10 {
		t.Errorf("expected MinEventCount 10, got %d", cfg.MinEventCount)
	}
	if cfg.MinTimeSpanDays != 7 {
		t.Errorf("expected MinTimeSpanDays 7, got %d", cfg.MinTimeSpanDays)
	}
	if cfg.MinDataTypes != 1 {
		t.Errorf("expected MinDataTypes 1, got %d", cfg.MinDataTypes)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected Workers 4, got %d", cfg.Workers)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("READINESS_MIN_EVENT_COUNT", "25")
	t.Setenv("CORE314_DB", "/tmp/other.db")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.MinEventCount != 25 {
		t.Errorf("expected MinEventCount 25, got %d", cfg.MinEventCount)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("expected overridden DB path, got %s", cfg.DBPath)
	}
}
