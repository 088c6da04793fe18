package controller

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"shift_buddy_go/config"
	"shift_buddy_go/tools/report"
	"shift_buddy_go/tools/shift_search"
)

// SearchCommand returns the "search" subcommand: greedy mutation search
// toward a target absorption maximum.
func SearchCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find mutations that shift the absorption maximum toward a target",
		Example: `  shift_buddy search --model opsin.yaml --wild_type MKT... --target 610
  shift_buddy search --config run.yaml --set threshold=2 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") && cfg.Search.Target == 0 {
				return fmt.Errorf("target is required: use --target or set search.target")
			}
			lin, wt, err := loadInputs(cfg)
			if err != nil {
				return err
			}
			noPredict, _ := cmd.Flags().GetBool("no_predict")

			p := params(cfg)
			slog.Info("Running greedy shift search",
				"positions", lin.Positions(), "target", p.Target, "wt_wavelength", p.WTWavelength, "threshold", p.Threshold)

			res, err := shift_search.Search(lin.Coefficients, wt, p)
			if err != nil {
				return err
			}

			out := report.NewSearch(res, wt, p)
			if !noPredict {
				if err := out.AttachPrediction(lin); err != nil {
					return err
				}
			}
			slog.Info("Search finished", "run_id", out.RunID, "converged", res.Converged, "mutations", len(res.Path))
			return report.WriteSearch(cmd.OutOrStdout(), out, cfg.Format)
		},
	}
	inputFlags(cmd)
	searchFlags(cmd)
	cmd.Flags().Bool("no_predict", false, "Skip the model's direct prediction for the final mutant")
	return cmd
}
