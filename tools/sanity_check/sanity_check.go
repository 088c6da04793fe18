package sanity_check

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"shift_buddy_go/config" // Version control file
	"shift_buddy_go/tools/residues"
	"shift_buddy_go/tools/shift_search"
)

// Command returns the "check" subcommand. It runs a one-position search
// against a built-in matrix to make sure Shift Buddy is working, then prints
// the version number.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run diagnostic test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := Run(); err != nil {
				return fmt.Errorf("sanity check failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully running Shift Buddy! (%s)\n", config.Main_version)
			return nil
		},
	}
}

// Run searches a single-position matrix where K at position 1 shifts the
// maximum by +10 nm and expects exactly that mutation back.
func Run() error {
	coef := mat.NewDense(1, residues.Size, nil)
	coef.Set(0, 8, 10)
	res, err := shift_search.Search(coef, "A", shift_search.DefaultParams(586))
	if err != nil {
		return err
	}
	if got := res.MutationString(); got != "A1K" || res.Wavelength != 586 {
		return fmt.Errorf("expected A1K at 586 nm, got %q at %.1f nm", got, res.Wavelength)
	}
	return nil
}
