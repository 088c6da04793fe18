// Package report renders search results and candidate tables as text, JSON
// or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"shift_buddy_go/tools/model"
	"shift_buddy_go/tools/shift_search"
)

// Output formats.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// Step is one selected mutation and the wavelength after applying it.
type Step struct {
	Mutation   string  `json:"mutation" yaml:"mutation"`
	Shift      float64 `json:"shift" yaml:"shift"`
	Wavelength float64 `json:"wavelength" yaml:"wavelength"`
}

// Search is the serialisable form of a shift_search.Result.
type Search struct {
	RunID      string              `json:"run_id" yaml:"run_id"`
	WildType   string              `json:"wild_type" yaml:"wild_type"`
	Params     shift_search.Params `json:"params" yaml:"params"`
	Converged  bool                `json:"converged" yaml:"converged"`
	Mutations  string              `json:"mutations" yaml:"mutations"`
	Annotated  string              `json:"annotated" yaml:"annotated"`
	Wavelength float64             `json:"wavelength" yaml:"wavelength"`
	Predicted  *float64            `json:"predicted,omitempty" yaml:"predicted,omitempty"`
	Steps      []Step              `json:"steps" yaml:"steps"`
}

// NewSearch builds a report for res with a fresh run id.
func NewSearch(res shift_search.Result, wildType string, p shift_search.Params) Search {
	r := Search{
		RunID:      uuid.NewString(),
		WildType:   wildType,
		Params:     p,
		Converged:  res.Converged,
		Mutations:  res.MutationString(),
		Annotated:  res.Annotated(),
		Wavelength: res.Wavelength,
		Steps:      make([]Step, 0, len(res.Path)),
	}
	current := p.WTWavelength
	for _, c := range res.Path {
		current += c.Shift
		r.Steps = append(r.Steps, Step{Mutation: c.String(), Shift: c.Shift, Wavelength: current})
	}
	return r
}

// AttachPrediction asks pred for the absorption maximum of the reported
// mutant. Nothing is attached when the search did not converge.
func (r *Search) AttachPrediction(pred model.Predictor) error {
	if !r.Converged {
		return nil
	}
	y, err := model.PredictNewMaximum(pred, r.WildType, r.Mutations)
	if err != nil {
		return fmt.Errorf("failed to predict %q: %w", r.Mutations, err)
	}
	r.Predicted = &y
	return nil
}

// WriteSearch writes r to w in the given format.
func WriteSearch(w io.Writer, r Search, format string) error {
	switch format {
	case JSON:
		return writeJSON(w, r)
	case YAML:
		return writeYAML(w, r)
	case Text, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if !r.Converged {
		_, err := fmt.Fprintf(w, "No path found!\nTarget:\t%.1f nm\nThreshold:\t%.1f nm\n", r.Params.Target, r.Params.Threshold)
		return err
	}
	fmt.Fprintf(w, "Run:\t\t%s\n", r.RunID)
	fmt.Fprintf(w, "Target:\t\t%.1f nm (+/- %.1f)\n", r.Params.Target, r.Params.Threshold)
	fmt.Fprintf(w, "Wild type:\t%.1f nm\n", r.Params.WTWavelength)
	if len(r.Steps) > 0 {
		fmt.Fprintf(w, "\n#\tMutation\tShift (nm)\tWavelength (nm)\n")
		for i, s := range r.Steps {
			fmt.Fprintf(w, "%d\t%s\t%+.2f\t\t%.2f\n", i+1, s.Mutation, s.Shift, s.Wavelength)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Mutant:\t\t%s\n", r.Mutations)
	fmt.Fprintf(w, "Contributions:\t%s\n", r.Annotated)
	fmt.Fprintf(w, "Final:\t\t%.2f nm\n", r.Wavelength)
	if r.Predicted != nil {
		_, err := fmt.Fprintf(w, "Model:\t\t%.2f nm\n", *r.Predicted)
		return err
	}
	return nil
}

// Summary describes the distribution of candidate shifts.
type Summary struct {
	Count     int     `json:"count" yaml:"count"`
	Positions int     `json:"positions" yaml:"positions"`
	Mean      float64 `json:"mean" yaml:"mean"`
	StdDev    float64 `json:"std_dev" yaml:"std_dev"`
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
}

// Summarize computes shift statistics over cands.
func Summarize(cands []shift_search.Candidate) Summary {
	s := Summary{Count: len(cands)}
	if len(cands) == 0 {
		return s
	}
	shifts := make([]float64, len(cands))
	positions := map[int]bool{}
	for i, c := range cands {
		shifts[i] = c.Shift
		positions[c.Position] = true
	}
	s.Positions = len(positions)
	s.Mean = stat.Mean(shifts, nil)
	if len(shifts) > 1 {
		s.StdDev = stat.StdDev(shifts, nil)
	}
	s.Min = floats.Min(shifts)
	s.Max = floats.Max(shifts)
	return s
}

// CandidateRow is one line of the candidate table.
type CandidateRow struct {
	Mutation string  `json:"mutation" yaml:"mutation"`
	Position int     `json:"position" yaml:"position"`
	Shift    float64 `json:"shift" yaml:"shift"`
}

type candidateTable struct {
	Summary    Summary        `json:"summary" yaml:"summary"`
	Candidates []CandidateRow `json:"candidates" yaml:"candidates"`
}

// WriteCandidates writes the candidate table and its summary. Only
// candidates with |shift| >= minShift are listed; the summary covers all.
func WriteCandidates(w io.Writer, cands []shift_search.Candidate, minShift float64, format string) error {
	table := candidateTable{Summary: Summarize(cands), Candidates: []CandidateRow{}}
	for _, c := range cands {
		if math.Abs(c.Shift) < minShift {
			continue
		}
		table.Candidates = append(table.Candidates, CandidateRow{Mutation: c.String(), Position: c.Position + 1, Shift: c.Shift})
	}

	switch format {
	case JSON:
		return writeJSON(w, table)
	case YAML:
		return writeYAML(w, table)
	case Text, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintf(w, "Mutation\tPosition\tShift (nm)\n")
	for _, row := range table.Candidates {
		fmt.Fprintf(w, "%s\t%d\t\t%+.2f\n", row.Mutation, row.Position, row.Shift)
	}
	s := table.Summary
	_, err := fmt.Fprintf(w, "\nCandidates:\t%d across %d positions\nMean shift:\t%.2f nm (sd %.2f)\nRange:\t\t%.2f to %.2f nm\n",
		s.Count, s.Positions, s.Mean, s.StdDev, s.Min, s.Max)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
