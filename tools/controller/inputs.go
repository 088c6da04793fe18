// Package controller wires the shift_buddy subcommands to the search,
// model and report packages.
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shift_buddy_go/config"
	"shift_buddy_go/tools/model"
	"shift_buddy_go/tools/shift_search"
)

var (
	ErrNoModel    = errors.New("no model given: use --model or set model_path")
	ErrNoWildType = errors.New("no wild type given: use --wild_type or set wild_type")

	ErrLengthMismatch = errors.New("wild type length does not match model")
)

// inputFlags are shared by every subcommand that needs a model.
func inputFlags(cmd *cobra.Command) {
	cmd.Flags().String("model", "", "YAML model file (overrides model_path)")
	cmd.Flags().String("wild_type", "", "Wild-type protein sequence (overrides wild_type)")
	cmd.Flags().String("format", "", "Output format: text, json or yaml (overrides format)")
}

// searchFlags are the greedy search parameters.
func searchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("target", 0, "Target absorption maximum (nm)")
	cmd.Flags().Float64("wt_wavelength", shift_search.DefaultWTWavelength, "Wild-type absorption maximum (nm)")
	cmd.Flags().Float64("threshold", shift_search.DefaultThreshold, "Accept the mutant once within this many nm of target")
}

// applyFlags copies explicitly set flags over cfg and re-validates it.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("model") {
		cfg.ModelPath, _ = fs.GetString("model")
	}
	if fs.Changed("wild_type") {
		wt, _ := fs.GetString("wild_type")
		cfg.WildType = strings.ToUpper(wt)
	}
	if fs.Changed("format") {
		f, _ := fs.GetString("format")
		cfg.Format = strings.ToLower(f)
	}
	if fs.Lookup("target") != nil {
		if fs.Changed("target") {
			cfg.Search.Target, _ = fs.GetFloat64("target")
		}
		if fs.Changed("wt_wavelength") {
			cfg.Search.WTWavelength, _ = fs.GetFloat64("wt_wavelength")
		}
		if fs.Changed("threshold") {
			cfg.Search.Threshold, _ = fs.GetFloat64("threshold")
		}
	}
	return cfg.Validate()
}

// loadInputs reads the model and wild type named by cfg.
func loadInputs(cfg *config.Config) (*model.Linear, string, error) {
	if cfg.ModelPath == "" {
		return nil, "", ErrNoModel
	}
	if cfg.WildType == "" {
		return nil, "", ErrNoWildType
	}
	lin, err := model.Load(cfg.ModelPath)
	if err != nil {
		return nil, "", err
	}
	wt := strings.ToUpper(cfg.WildType)
	if len(wt) != lin.Positions() {
		return nil, "", fmt.Errorf("%w: wild type has %d residues, model covers %d positions", ErrLengthMismatch, len(wt), lin.Positions())
	}
	return lin, wt, nil
}

func params(cfg *config.Config) shift_search.Params {
	return shift_search.Params{
		Target:       cfg.Search.Target,
		WTWavelength: cfg.Search.WTWavelength,
		Threshold:    cfg.Search.Threshold,
	}
}
