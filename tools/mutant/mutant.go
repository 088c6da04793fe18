// Package mutant reads and writes point-mutation strings of the form
// <original><position><new>, joined by ':' (e.g. "Q108K:K40L").
// Positions are 1-indexed.
package mutant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shift_buddy_go/tools/residues"
)

// Separator joins mutations in a mutation string.
const Separator = ":"

var (
	ErrMalformedToken = errors.New("malformed mutation token")
	ErrOutOfRange     = errors.New("mutation position out of range")
)

// Mutation is a single substitution.
type Mutation struct {
	Original byte
	Position int // 1-indexed
	Residue  byte
}

func (m Mutation) String() string {
	return fmt.Sprintf("%c%d%c", m.Original, m.Position, m.Residue)
}

// Join renders muts as a colon-separated mutation string.
func Join(muts []Mutation) string {
	tokens := make([]string, len(muts))
	for i, m := range muts {
		tokens[i] = m.String()
	}
	return strings.Join(tokens, Separator)
}

// GetSeq applies mutationString to a copy of wildType and returns the result.
//
// A token whose position is not an integer ends parsing: the sequence built
// so far is returned without error. Callers that need to know about bad
// tokens should validate with Parse first. A numeric position that falls
// outside the sequence is reported as ErrOutOfRange.
func GetSeq(wildType, mutationString string) (string, error) {
	seq := []byte(wildType)
	for _, tok := range strings.Split(mutationString, Separator) {
		if len(tok) < 2 {
			break
		}
		pos, err := strconv.Atoi(strings.TrimSpace(tok[1 : len(tok)-1]))
		if err != nil {
			break
		}
		if pos < 1 || pos > len(seq) {
			return "", fmt.Errorf("%w: %q (sequence length %d)", ErrOutOfRange, tok, len(seq))
		}
		seq[pos-1] = tok[len(tok)-1]
	}
	return string(seq), nil
}

// Parse strictly parses a mutation string. An empty string yields no mutations.
func Parse(mutationString string) ([]Mutation, error) {
	if mutationString == "" {
		return nil, nil
	}
	tokens := strings.Split(mutationString, Separator)
	muts := make([]Mutation, 0, len(tokens))
	for _, tok := range tokens {
		m, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		muts = append(muts, m)
	}
	return muts, nil
}

func parseToken(tok string) (Mutation, error) {
	if len(tok) < 3 {
		return Mutation{}, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
	}
	orig, res := tok[0], tok[len(tok)-1]
	if !residues.Valid(orig) || !residues.Valid(res) {
		return Mutation{}, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
	}
	pos, err := strconv.Atoi(tok[1 : len(tok)-1])
	if err != nil || pos < 1 {
		return Mutation{}, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
	}
	return Mutation{Original: orig, Position: pos, Residue: res}, nil
}

// Check verifies that every mutation's original residue matches wildType.
func Check(wildType string, muts []Mutation) error {
	for _, m := range muts {
		if m.Position > len(wildType) {
			return fmt.Errorf("%w: %s (sequence length %d)", ErrOutOfRange, m, len(wildType))
		}
		if wt := wildType[m.Position-1]; wt != m.Original {
			return fmt.Errorf("%s: wild type has %c at position %d", m, wt, m.Position)
		}
	}
	return nil
}
