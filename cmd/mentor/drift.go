package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/analysis"
	"github.com/jonathan/career-mentor/internal/drift"
	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/types"
)

var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Run a data drift check against the matcher",
	Long:  "Send a known skill batch to the backend's drift detector. The baseline mode should report no drift; the out-of-domain mode should report drift. Use 'analyze --drift' to check the skills of an uploaded resume.",
	RunE:  runDrift,
}

var driftMode string

func init() {
	driftCmd.Flags().StringVarP(&driftMode, "mode", "m", "baseline", "Skill batch to send: baseline or out-of-domain")

	rootCmd.AddCommand(driftCmd)
}

func runDrift(cmd *cobra.Command, args []string) error {
	mode, err := parseDriftMode(driftMode)
	if err != nil {
		return err
	}
	if mode == drift.ModeFromCurrentAnalysis {
		return fmt.Errorf("the resume mode needs an uploaded resume; use 'mentor analyze --drift' instead")
	}

	_, _, gateway, err := requireGateway()
	if err != nil {
		return err
	}

	result, err := runDriftCheck(cmd, gateway, analysis.NewStore(), mode)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintDriftResult(result)
	return nil
}

// parseDriftMode maps the --mode flag to a drift mode.
func parseDriftMode(value string) (drift.Mode, error) {
	switch value {
	case "baseline":
		return drift.ModeBaseline, nil
	case "out-of-domain":
		return drift.ModeOutOfDomain, nil
	case "resume":
		return drift.ModeFromCurrentAnalysis, nil
	default:
		return 0, fmt.Errorf("unknown drift mode %q (want baseline, out-of-domain, or resume)", value)
	}
}

// runDriftCheck starts a simulation and blocks until it settles.
func runDriftCheck(cmd *cobra.Command, caller drift.Caller, store *analysis.Store, mode drift.Mode) (*types.DriftCheckResult, error) {
	coord := drift.NewCoordinator(cmd.Context(), caller, store)

	done := make(chan drift.State, 1)
	coord.Subscribe(func(state drift.State) {
		if state.Terminal() {
			select {
			case done <- state:
			default:
			}
		}
	})

	if err := coord.Simulate(mode); err != nil {
		return nil, err
	}

	select {
	case state := <-done:
		if state == drift.StateFailed {
			return nil, fmt.Errorf("drift check failed (%s mode)", mode)
		}
	case <-cmd.Context().Done():
		return nil, cmd.Context().Err()
	}

	result, ok := coord.Result()
	if !ok {
		return nil, fmt.Errorf("drift check produced no result")
	}
	return result, nil
}
