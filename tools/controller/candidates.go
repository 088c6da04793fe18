package controller

import (
	"log/slog"

	"github.com/spf13/cobra"

	"shift_buddy_go/config"
	"shift_buddy_go/tools/report"
	"shift_buddy_go/tools/shift_search"
)

// CandidatesCommand returns the "candidates" subcommand, which lists every
// mutation the search may choose from with its shift relative to wild type.
func CandidatesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "List candidate mutations and their wild-type relative shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			lin, wt, err := loadInputs(cfg)
			if err != nil {
				return err
			}
			minShift, _ := cmd.Flags().GetFloat64("min_shift")

			cands, err := shift_search.Candidates(lin.Coefficients, wt)
			if err != nil {
				return err
			}
			slog.Debug("Derived candidates", "count", len(cands))
			return report.WriteCandidates(cmd.OutOrStdout(), cands, minShift, cfg.Format)
		},
	}
	inputFlags(cmd)
	cmd.Flags().Float64("min_shift", 0, "Hide candidates whose |shift| is below this value (nm)")
	return cmd
}
