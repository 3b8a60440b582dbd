// gatectl is the operator CLI for the authority gating core: run
// readiness batches, review verdicts, resolve execution modes, inspect
// phase metadata, and print baseline payloads.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/config"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/logging"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/store"
)

// #region main
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// #endregion main

// #region root
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gatectl",
		Short:         "Operate the Core314 AI authority gating core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newReadinessCmd(),
		newVerdictsCmd(),
		newModeCmd(),
		newPhaseCmd(),
		newDemoteCmd(),
		newBaselineCmd(),
	)
	return root
}

// #endregion root

// #region helpers
func openStore() (config.Config, *store.Store, error) {
	cfg, err := config.Parse()
	if err != nil {
		return config.Config{}, nil, err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("open store: %w", err)
	}
	return cfg, st, nil
}

// #endregion helpers
