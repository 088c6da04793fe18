package controller

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"shift_buddy_go/config"
	"shift_buddy_go/tools/model"
	"shift_buddy_go/tools/mutant"
	"shift_buddy_go/tools/report"
)

// Prediction is one row of "predict" output.
type Prediction struct {
	Mutant     string  `json:"mutant" yaml:"mutant"`
	Wavelength float64 `json:"wavelength" yaml:"wavelength"`
	Shift      float64 `json:"shift" yaml:"shift"`
}

// PredictCommand returns the "predict" subcommand: the model's absorption
// maximum for each mutant string given as an argument.
func PredictCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "predict [mutant ...]",
		Short:   "Predict the absorption maximum of mutants such as Q108K:K40L",
		Example: "  shift_buddy predict --model opsin.yaml --wild_type MKT... Q108K:K40L T51V",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			lin, wt, err := loadInputs(cfg)
			if err != nil {
				return err
			}
			strict, _ := cmd.Flags().GetBool("strict")

			base, err := model.PredictNewMaximum(lin, wt, "")
			if err != nil {
				return err
			}
			rows := []Prediction{{Mutant: "WT", Wavelength: base}}
			for _, m := range args {
				if strict {
					muts, err := mutant.Parse(m)
					if err != nil {
						return err
					}
					if err := mutant.Check(wt, muts); err != nil {
						return err
					}
				}
				y, err := model.PredictNewMaximum(lin, wt, m)
				if err != nil {
					return fmt.Errorf("%s: %w", m, err)
				}
				rows = append(rows, Prediction{Mutant: m, Wavelength: y, Shift: y - base})
			}
			return writePredictions(cmd, rows, cfg.Format)
		},
	}
	inputFlags(cmd)
	cmd.Flags().Bool("strict", false, "Reject malformed mutation tokens and wild-type mismatches")
	return cmd
}

func writePredictions(cmd *cobra.Command, rows []Prediction, format string) error {
	w := cmd.OutOrStdout()
	switch format {
	case report.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case report.YAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	}
	fmt.Fprintf(w, "Mutant\tMaximum (nm)\tShift (nm)\n")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t\t%+.2f\n", r.Mutant, r.Wavelength, r.Shift)
	}
	return nil
}
