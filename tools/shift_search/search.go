// Package shift_search finds a set of point mutations whose summed
// wavelength shifts move a protein's absorption maximum toward a target.
//
// Every (position, residue) pair with a non-zero shift relative to the wild
// type is a candidate. Two candidates are compatible only when they sit at
// different positions, so the candidate set is kept grouped by position and
// a whole position is dropped once one of its residues has been picked.
package shift_search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"shift_buddy_go/tools/mutant"
	"shift_buddy_go/tools/residues"
)

// Defaults used when the caller has no measured wild-type maximum.
const (
	DefaultWTWavelength = 576.0
	DefaultThreshold    = 5.0
)

var ErrBadInput = errors.New("invalid search input")

// Params controls a single search.
type Params struct {
	Target       float64 `json:"target" yaml:"target"`
	WTWavelength float64 `json:"wt_wavelength" yaml:"wt_wavelength"`
	Threshold    float64 `json:"threshold" yaml:"threshold"`
}

// DefaultParams returns Params for target with the default wild-type
// maximum and convergence threshold.
func DefaultParams(target float64) Params {
	return Params{Target: target, WTWavelength: DefaultWTWavelength, Threshold: DefaultThreshold}
}

// Candidate is one possible substitution and its shift relative to the wild type.
type Candidate struct {
	Position int // 0-indexed
	WildType byte
	Residue  byte
	Shift    float64
}

// Mutation converts c to its 1-indexed mutation form.
func (c Candidate) Mutation() mutant.Mutation {
	return mutant.Mutation{Original: c.WildType, Position: c.Position + 1, Residue: c.Residue}
}

func (c Candidate) String() string {
	return c.Mutation().String()
}

// Annotated renders c with its shift rounded half-to-even, e.g. "Q108K(12nm)".
func (c Candidate) Annotated() string {
	return fmt.Sprintf("%s(%dnm)", c, int(math.RoundToEven(c.Shift)))
}

// Candidates derives the candidate list from coef (positions x residues) and
// wildType. Only positions with at least one non-zero coefficient are
// considered. At each such position the wild-type residue's coefficient is
// subtracted from every non-zero entry; entries that end up zero, including
// the wild type itself, are not candidates. coef is not modified.
//
// The result is ordered by position, then by residue alphabet index.
func Candidates(coef mat.Matrix, wildType string) ([]Candidate, error) {
	rows, cols := coef.Dims()
	if cols != residues.Size {
		return nil, fmt.Errorf("%w: coefficient matrix has %d columns, want %d", ErrBadInput, cols, residues.Size)
	}
	if len(wildType) < rows {
		return nil, fmt.Errorf("%w: wild type has %d residues, coefficients cover %d positions", ErrBadInput, len(wildType), rows)
	}

	shifts := mat.DenseCopyOf(coef)
	var out []Candidate
	for p := 0; p < rows; p++ {
		row := shifts.RawRowView(p)
		for r, v := range row {
			if !finite(v) {
				return nil, fmt.Errorf("%w: coefficient at position %d residue %c is %v", ErrBadInput, p+1, residues.Alphabet[r], v)
			}
		}
		if !anyNonZero(row) {
			continue
		}
		wt, err := residues.Index(wildType[p])
		if err != nil {
			return nil, fmt.Errorf("%w: wild type position %d: %v", ErrBadInput, p+1, err)
		}
		base := row[wt]
		for r := range row {
			if row[r] != 0 {
				row[r] -= base
			}
		}
		for r, shift := range row {
			if shift == 0 {
				continue
			}
			out = append(out, Candidate{
				Position: p,
				WildType: wildType[p],
				Residue:  residues.Alphabet[r],
				Shift:    shift,
			})
		}
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func anyNonZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return true
		}
	}
	return false
}

// Result is the outcome of Search. When Converged is false the path is empty
// and Wavelength is 0.
type Result struct {
	Path       []Candidate
	Wavelength float64
	Converged  bool
}

// MutationString joins the path as "<wt><pos><res>:..." in selection order.
func (r Result) MutationString() string {
	return mutant.Join(r.Mutations())
}

// Annotated joins the path as "<wt><pos><res>(<shift>nm); ...".
func (r Result) Annotated() string {
	tokens := make([]string, len(r.Path))
	for i, c := range r.Path {
		tokens[i] = c.Annotated()
	}
	return strings.Join(tokens, "; ")
}

// Mutations returns the path as 1-indexed mutations.
func (r Result) Mutations() []mutant.Mutation {
	muts := make([]mutant.Mutation, len(r.Path))
	for i, c := range r.Path {
		muts[i] = c.Mutation()
	}
	return muts
}

// Search greedily picks substitutions until the running wavelength, starting
// at p.WTWavelength, is within p.Threshold of p.Target. At each step the
// remaining candidate whose shift lands closest to the target is taken, and
// every other candidate at its position is discarded. Ties go to the lowest
// position, then the lowest residue index.
//
// If candidates run out before the target is reached, Search returns a
// Result with an empty path, Wavelength 0 and Converged false. An error is
// returned only for malformed input, including non-finite params or
// coefficients.
func Search(coef mat.Matrix, wildType string, p Params) (Result, error) {
	if p.Threshold < 0 || !finite(p.Threshold) {
		return Result{}, fmt.Errorf("%w: threshold %v", ErrBadInput, p.Threshold)
	}
	if !finite(p.Target) || !finite(p.WTWavelength) {
		return Result{}, fmt.Errorf("%w: target %v, wild-type maximum %v", ErrBadInput, p.Target, p.WTWavelength)
	}
	cands, err := Candidates(coef, wildType)
	if err != nil {
		return Result{}, err
	}
	return searchCandidates(cands, p), nil
}

func searchCandidates(cands []Candidate, p Params) Result {
	remaining := append([]Candidate(nil), cands...)
	current := p.WTWavelength
	var path []Candidate

	for math.Abs(current-p.Target) > p.Threshold {
		if len(remaining) == 0 {
			slog.Warn("No path found", "target", p.Target, "reached", current, "steps", len(path))
			return Result{}
		}

		best := 0
		bestDist := math.Abs(current + remaining[0].Shift - p.Target)
		for i := 1; i < len(remaining); i++ {
			if d := math.Abs(current + remaining[i].Shift - p.Target); d < bestDist {
				best, bestDist = i, d
			}
		}

		chosen := remaining[best]
		path = append(path, chosen)
		current += chosen.Shift
		slog.Debug("Selected mutation", "mutation", chosen.String(), "shift", chosen.Shift, "wavelength", current)

		kept := remaining[:0]
		for _, c := range remaining {
			if c.Position != chosen.Position {
				kept = append(kept, c)
			}
		}
		remaining = kept
	}

	return Result{Path: path, Wavelength: current, Converged: true}
}
