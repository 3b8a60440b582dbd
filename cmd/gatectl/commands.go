package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/core314system-lgtm/core314-platform-sub005/internal/authority"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/baseline"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/gate"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/logging"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/readiness"
	"github.com/core314system-lgtm/core314-platform-sub005/internal/store"
)

// #region readiness-cmd
func newReadinessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readiness",
		Short: "Run one readiness evaluation batch over all integrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			thresholds := readiness.Thresholds{
				MinEventCount:   cfg.MinEventCount,
				MinTimeSpanDays: cfg.MinTimeSpanDays,
				MinDataTypes:    cfg.MinDataTypes,
			}
			evaluator := readiness.NewEvaluator(st, st, st, st, thresholds, cfg.Workers, logging.New("readiness"))

			result, err := evaluator.EvaluateAll(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range result.Results {
				status := "ineligible"
				if v.Eligible {
					status = "eligible"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-10s %s\n", v.IntegrationKey, status, v.Reason)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d evaluated\n", result.RunID, result.Evaluated)
			return nil
		},
	}
}

// #endregion readiness-cmd

// #region verdicts-cmd
func newVerdictsCmd() *cobra.Command {
	var limit int
	var key string
	cmd := &cobra.Command{
		Use:   "verdicts",
		Short: "List recent readiness verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			var rows []store.VerdictRow
			if key != "" {
				rows, err = st.VerdictHistory(cmd.Context(), key, limit)
			} else {
				rows, err = st.ListVerdicts(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			for _, r := range rows {
				status := "ineligible"
				if r.Eligible {
					status = "eligible"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %-10s %s\n",
					r.EvaluatedAt.Format("2006-01-02 15:04:05"), r.IntegrationKey, status, r.Reason)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to show")
	cmd.Flags().StringVar(&key, "integration", "", "restrict to one integration key")
	return cmd
}

// #endregion verdicts-cmd

// #region mode-cmd
func newModeCmd() *cobra.Command {
	var tenantID string
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Resolve a tenant's execution mode (fail-closed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			mode := gate.DeriveForTenant(cmd.Context(), st, tenantID, logging.New("gate"))
			fmt.Fprintln(cmd.OutOrStdout(), string(mode))
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id")
	return cmd
}

// #endregion mode-cmd

// #region phase-cmd
func newPhaseCmd() *cobra.Command {
	var tenantID string
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Show a tenant's authority phase and unlock progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tenantID == "" {
				return fmt.Errorf("--tenant is required")
			}
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			counters, err := st.CountersForTenant(cmd.Context(), tenantID)
			if err != nil {
				return err
			}
			phase, meta, err := authority.ClassifyWithRatchet(cmd.Context(), st, tenantID, counters, authority.AccrualRate{})
			if err != nil {
				return err
			}

			contract := authority.GetContract(phase)
			fmt.Fprintf(cmd.OutOrStdout(), "phase: %s (max inference depth: %s)\n", phase, contract.MaxInferenceDepth)
			fmt.Fprintf(cmd.OutOrStdout(), "reason: %s\n", meta.PhaseReason)
			if phase != authority.PhasePredictive {
				fmt.Fprintf(cmd.OutOrStdout(), "next: %s\n", meta.NextPhase)
				for _, req := range meta.NextPhaseRequirements {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", req)
				}
				if meta.DaysUntilUnlockEstimate >= 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "estimated unlock: %d days\n", meta.DaysUntilUnlockEstimate)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id")
	return cmd
}

// #endregion phase-cmd

// #region demote-cmd
func newDemoteCmd() *cobra.Command {
	var tenantID, target, actor, reason string
	cmd := &cobra.Command{
		Use:   "demote",
		Short: "Explicitly lower a tenant's phase (audited override)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			err = authority.Demote(cmd.Context(), st, tenantID, authority.InsightPhase(target), actor, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tenant %s demoted to %s\n", tenantID, target)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&target, "to", "", "target phase")
	cmd.Flags().StringVar(&actor, "actor", "", "who authorized the demotion")
	cmd.Flags().StringVar(&reason, "reason", "", "why the tenant is being demoted")
	return cmd
}

// #endregion demote-cmd

// #region baseline-cmd
func newBaselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "baseline <surface>",
		Short:     "Print the fixed baseline payload for an AI surface",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"chat", "generic", "scenarios", "insights", "admin", "optimization", "prediction", "governance", "support", "anomaly", "decision"},
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := baselinePayload(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
}

func baselinePayload(surface string) (any, error) {
	switch surface {
	case "chat":
		return baseline.ChatResponse(), nil
	case "generic":
		return baseline.GenericResponse(), nil
	case "scenarios":
		return baseline.ScenariosResponse(), nil
	case "insights":
		return baseline.InsightsResponse(), nil
	case "admin":
		return baseline.AdminResponse(), nil
	case "optimization":
		return baseline.OptimizationResponse(), nil
	case "prediction":
		return baseline.PredictionResponse(), nil
	case "governance":
		return baseline.GovernanceResponse(), nil
	case "support":
		return baseline.SupportResponse(), nil
	case "anomaly":
		return baseline.AnomalyResponse(), nil
	case "decision":
		return baseline.DecisionResponse(), nil
	default:
		return nil, fmt.Errorf("unknown surface %q", surface)
	}
}

// #endregion baseline-cmd
