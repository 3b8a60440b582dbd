// readiness-worker runs one readiness evaluation batch and exits.
// Invoked on a schedule (cron); safe to re-run at any time.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/config"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/logging"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/readiness"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/store"
)

// #region main
func main() {
	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	logger := logging.New("readiness-worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	thresholds := readiness.Thresholds{
		MinEventCount:   cfg.MinEventCount,
		MinTimeSpanDays: cfg.MinTimeSpanDays,
		MinDataTypes:    cfg.MinDataTypes,
	}
	evaluator := readiness.NewEvaluator(st, st, st, st, thresholds, cfg.Workers, logger)

	result, err := evaluator.EvaluateAll(ctx)
	if err != nil {
		log.Fatalf("batch failed: %v", err)
	}

	eligible := 0
	for _, v := range result.Results {
		if v.Eligible {
			eligible++
		}
	}
	fmt.Printf("run %s: evaluated %d integrations, %d eligible\n",
		result.RunID, result.Evaluated, eligible)
}

// #endregion main
