// Package residues holds the 20-letter amino acid alphabet used by the
// shift model and the one-hot encodings built from it.
package residues

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Alphabet is the column order of every coefficient matrix and feature vector.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// Size is the number of residue classes (columns per position).
const Size = len(Alphabet)

var (
	ErrUnknownResidue = errors.New("residue not in alphabet")
	ErrEmptySequence  = errors.New("empty sequence")
)

var index = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < Size; i++ {
		idx[Alphabet[i]] = int8(i)
		idx[Alphabet[i]+('a'-'A')] = int8(i) // Case insensitivity
	}
	return idx
}()

// Index returns the alphabet column of r.
func Index(r byte) (int, error) {
	i := index[r]
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownResidue, r)
	}
	return int(i), nil
}

// Valid reports whether r is one of the 20 standard residues.
func Valid(r byte) bool {
	return index[r] >= 0
}

// OneHotEncode returns a unit vector of length Size with a 1 at r's index.
func OneHotEncode(r byte) (*mat.VecDense, error) {
	i, err := Index(r)
	if err != nil {
		return nil, err
	}
	v := mat.NewVecDense(Size, nil)
	v.SetVec(i, 1)
	return v, nil
}

// EncodeSequence one-hot encodes every residue of seq and flattens the
// result position by position into a single vector of length Size*len(seq).
func EncodeSequence(seq string) (*mat.VecDense, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	data := make([]float64, Size*len(seq))
	for pos := 0; pos < len(seq); pos++ {
		i, err := Index(seq[pos])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", pos+1, err)
		}
		data[pos*Size+i] = 1
	}
	return mat.NewVecDense(len(data), data), nil
}
