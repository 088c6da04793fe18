package residues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneHotEncode_EveryResidue(t *testing.T) {
	for want := 0; want < Size; want++ {
		r := Alphabet[want]
		v, err := OneHotEncode(r)
		require.NoError(t, err)
		require.Equal(t, Size, v.Len())

		for i := 0; i < Size; i++ {
			if i == want {
				assert.Equal(t, 1.0, v.AtVec(i), "residue %c", r)
			} else {
				assert.Zero(t, v.AtVec(i), "residue %c index %d", r, i)
			}
		}
	}
}

func TestOneHotEncode_Unknown(t *testing.T) {
	for _, r := range []byte{'B', 'X', 'Z', '*', '-', '1'} {
		_, err := OneHotEncode(r)
		assert.ErrorIs(t, err, ErrUnknownResidue, "residue %c", r)
	}
}

func TestIndex_CaseInsensitive(t *testing.T) {
	upper, err := Index('Q')
	require.NoError(t, err)
	lower, err := Index('q')
	require.NoError(t, err)
	assert.Equal(t, 13, upper)
	assert.Equal(t, upper, lower)
	assert.True(t, Valid('w'))
	assert.False(t, Valid('O'))
}

func TestEncodeSequence(t *testing.T) {
	v, err := EncodeSequence("AY")
	require.NoError(t, err)
	require.Equal(t, 2*Size, v.Len())

	ones := 0
	for i := 0; i < v.Len(); i++ {
		ones += int(v.AtVec(i))
	}
	assert.Equal(t, 2, ones)
	assert.Equal(t, 1.0, v.AtVec(0))       // A at position 1
	assert.Equal(t, 1.0, v.AtVec(Size+19)) // Y at position 2
}

func TestEncodeSequence_Errors(t *testing.T) {
	_, err := EncodeSequence("")
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = EncodeSequence("ACBD")
	require.ErrorIs(t, err, ErrUnknownResidue)
	assert.Contains(t, err.Error(), "position 3")
}
