// Package model wraps a trained linear shift model: an intercept plus one
// coefficient per (position, residue) pair of the one-hot encoded sequence.
package model

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"shift_buddy_go/tools/mutant"
	"shift_buddy_go/tools/residues"
)

var (
	ErrFeatureLength = errors.New("feature vector length does not match model")
	ErrNotFinite     = errors.New("model value is not finite")
)

// Predictor is anything that maps a flattened one-hot feature vector to an
// absorption maximum.
type Predictor interface {
	Predict(x mat.Vector) (float64, error)
}

// Linear is a fitted linear model. Coefficients has one row per sequence
// position and one column per residue in residues.Alphabet order.
type Linear struct {
	Intercept    float64
	Coefficients *mat.Dense
}

// NewLinear checks the shape of coef and returns the model.
func NewLinear(intercept float64, coef *mat.Dense) (*Linear, error) {
	if coef == nil {
		return nil, fmt.Errorf("nil coefficient matrix")
	}
	if _, c := coef.Dims(); c != residues.Size {
		return nil, fmt.Errorf("coefficient matrix has %d columns, want %d", c, residues.Size)
	}
	return &Linear{Intercept: intercept, Coefficients: coef}, nil
}

// Positions is the sequence length the model was trained on.
func (l *Linear) Positions() int {
	r, _ := l.Coefficients.Dims()
	return r
}

// Predict returns intercept + coef . x, where x is laid out like
// residues.EncodeSequence output.
func (l *Linear) Predict(x mat.Vector) (float64, error) {
	rows, cols := l.Coefficients.Dims()
	if x.Len() != rows*cols {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureLength, x.Len(), rows*cols)
	}
	y := l.Intercept
	for p := 0; p < rows; p++ {
		for c := 0; c < cols; c++ {
			if v := x.AtVec(p*cols + c); v != 0 {
				y += v * l.Coefficients.At(p, c)
			}
		}
	}
	return y, nil
}

// PredictNewMaximum builds the mutant described by mutationString, encodes it
// and asks p for the predicted absorption maximum.
func PredictNewMaximum(p Predictor, wildType, mutationString string) (float64, error) {
	seq, err := mutant.GetSeq(wildType, mutationString)
	if err != nil {
		return 0, err
	}
	x, err := residues.EncodeSequence(seq)
	if err != nil {
		return 0, err
	}
	return p.Predict(x)
}

// file is the on-disk layout of a model.
type file struct {
	Intercept    float64     `yaml:"intercept"`
	Alphabet     string      `yaml:"alphabet,omitempty"`
	Coefficients [][]float64 `yaml:"coefficients"`
}

// Decode reads a YAML model from r.
func Decode(r io.Reader) (*Linear, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if f.Alphabet != "" && f.Alphabet != residues.Alphabet {
		return nil, fmt.Errorf("model alphabet %q does not match %q", f.Alphabet, residues.Alphabet)
	}
	if len(f.Coefficients) == 0 {
		return nil, fmt.Errorf("model has no coefficients")
	}
	if math.IsNaN(f.Intercept) || math.IsInf(f.Intercept, 0) {
		return nil, fmt.Errorf("%w: intercept %v", ErrNotFinite, f.Intercept)
	}
	data := make([]float64, 0, len(f.Coefficients)*residues.Size)
	for i, row := range f.Coefficients {
		if len(row) != residues.Size {
			return nil, fmt.Errorf("coefficient row %d has %d values, want %d", i+1, len(row), residues.Size)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: coefficient row %d column %c is %v", ErrNotFinite, i+1, residues.Alphabet[j], v)
			}
		}
		data = append(data, row...)
	}
	return NewLinear(f.Intercept, mat.NewDense(len(f.Coefficients), residues.Size, data))
}

// Load reads a YAML model file.
func Load(path string) (*Linear, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes l in the format read by Decode.
func Encode(w io.Writer, l *Linear) error {
	rows, _ := l.Coefficients.Dims()
	f := file{Intercept: l.Intercept, Alphabet: residues.Alphabet, Coefficients: make([][]float64, rows)}
	for p := 0; p < rows; p++ {
		f.Coefficients[p] = mat.Row(nil, p, l.Coefficients)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(f)
}
