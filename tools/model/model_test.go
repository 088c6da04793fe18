package model

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"shift_buddy_go/tools/residues"
)

// twoSiteModel has coefficients at A/C on position 1 and K on position 2.
func twoSiteModel(t *testing.T) *Linear {
	t.Helper()
	coef := mat.NewDense(2, residues.Size, nil)
	coef.Set(0, 0, 3)  // A
	coef.Set(0, 1, -2) // C
	coef.Set(1, 8, 10) // K
	l, err := NewLinear(500, coef)
	require.NoError(t, err)
	return l
}

func TestNewLinear_Shape(t *testing.T) {
	_, err := NewLinear(0, mat.NewDense(3, 19, nil))
	assert.Error(t, err)
	_, err = NewLinear(0, nil)
	assert.Error(t, err)
}

func TestPredict(t *testing.T) {
	l := twoSiteModel(t)

	x, err := residues.EncodeSequence("AK")
	require.NoError(t, err)
	y, err := l.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, 513.0, y, 1e-9)

	_, err = l.Predict(mat.NewVecDense(residues.Size, nil))
	assert.ErrorIs(t, err, ErrFeatureLength)
}

func TestPredictNewMaximum(t *testing.T) {
	l := twoSiteModel(t)

	wt, err := PredictNewMaximum(l, "AG", "")
	require.NoError(t, err)
	assert.InDelta(t, 503.0, wt, 1e-9)

	mut, err := PredictNewMaximum(l, "AG", "A1C:G2K")
	require.NoError(t, err)
	assert.InDelta(t, 508.0, mut, 1e-9)

	_, err = PredictNewMaximum(l, "AG", "A1B")
	assert.ErrorIs(t, err, residues.ErrUnknownResidue)
}

func TestDecode(t *testing.T) {
	row := func(i int, v string) string {
		vals := make([]string, residues.Size)
		for j := range vals {
			vals[j] = "0"
		}
		vals[i] = v
		return "  - [" + strings.Join(vals, ", ") + "]\n"
	}
	doc := "intercept: 576\ncoefficients:\n" + row(0, "1.5") + row(19, "-4")

	l, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 576.0, l.Intercept)
	assert.Equal(t, 2, l.Positions())
	assert.Equal(t, 1.5, l.Coefficients.At(0, 0))
	assert.Equal(t, -4.0, l.Coefficients.At(1, 19))
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":          "intercept: 1\n",
		"short row":      "coefficients:\n  - [1, 2]\n",
		"wrong alphabet": "alphabet: ACGT\ncoefficients:\n  - [1, 2, 3, 4]\n",
		"not yaml":       "coefficients: [[",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecode_NonFinite(t *testing.T) {
	zeros := strings.TrimSuffix(strings.Repeat("0, ", residues.Size-1), ", ")
	tests := map[string]string{
		"nan coefficient": "coefficients:\n  - [.nan, " + zeros + "]\n",
		"inf coefficient": "coefficients:\n  - [" + zeros + ", -.inf]\n",
		"nan intercept":   "intercept: .nan\ncoefficients:\n  - [1, " + zeros + "]\n",
		"inf intercept":   "intercept: .inf\ncoefficients:\n  - [1, " + zeros + "]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrNotFinite)
		})
	}
}

func TestEncodeLoad_RoundTrip(t *testing.T) {
	l := twoSiteModel(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, l))

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, l.Intercept, got.Intercept)
	assert.True(t, mat.Equal(l.Coefficients, got.Coefficients))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
