package lhe

import (
	"fmt"
	"math/big"
)

// Level tags the homomorphic state of a ciphertext. The supported
// transitions form a small state machine: addition preserves the level of
// its (equal-level) operands, Multiply moves L1 x L1 to L2, and
// BoostedMultiply moves L2 x L2 to L4. Level 4 is the ceiling.
type Level uint8

const (
	// Level1 is a freshly encrypted ciphertext: additive, and one
	// pairing multiplication away from Level2.
	Level1 Level = 1
	// Level2 is the target-group shape after one multiplication (or a
	// lift): additive, and one boosted multiplication away from Level4.
	Level2 Level = 2
	// Level4 is the boosted shape: additive only.
	Level4 Level = 4
)

// Ciphertext is the level-tagged variant every public operation works
// with. Exactly one of the three shape fields is set, matching Level.
// Operations never mutate their operands; sharing a ciphertext across
// goroutines is safe.
type Ciphertext struct {
	Level   Level
	Fresh   *FreshCiphertext
	Paired  *PairedCiphertext
	Boosted *BoostedCiphertext
}

// Evaluator combines ciphertexts on behalf of a party that holds only
// public material. It tracks levels and rejects any transition the scheme
// does not define, so an unsupported combination fails deterministically
// instead of producing an undecryptable result.
type Evaluator struct {
	scheme *Scheme
	ek     *EvaluationKey
}

// NewEvaluator returns an evaluator bound to an evaluation key. The key
// is required only by BoostedMultiply; a nil key yields an evaluator for
// the additive and level-2 operations.
func (s *Scheme) NewEvaluator(ek *EvaluationKey) *Evaluator {
	return &Evaluator{scheme: s, ek: ek}
}

// Add combines two ciphertexts of the same level; the result stays at
// that level and decrypts to the sum of the plaintexts.
func (e *Evaluator) Add(x, y *Ciphertext) (*Ciphertext, error) {
	if x.Level != y.Level {
		return nil, fmt.Errorf("%w: cannot add level %d to level %d", ErrLevelExceeded, x.Level, y.Level)
	}
	switch x.Level {
	case Level1:
		return &Ciphertext{Level: Level1, Fresh: e.scheme.freshAdd(x.Fresh, y.Fresh)}, nil
	case Level2:
		return &Ciphertext{Level: Level2, Paired: e.scheme.pairedAdd(x.Paired, y.Paired)}, nil
	case Level4:
		return &Ciphertext{Level: Level4, Boosted: e.scheme.boostedAdd(x.Boosted, y.Boosted)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown ciphertext level %d", ErrLevelExceeded, x.Level)
	}
}

// ScalarMul multiplies a ciphertext by a cleartext integer scalar; the
// level is preserved.
func (e *Evaluator) ScalarMul(x *Ciphertext, k *big.Int) (*Ciphertext, error) {
	switch x.Level {
	case Level1:
		return &Ciphertext{Level: Level1, Fresh: e.scheme.freshScalarMul(x.Fresh, k)}, nil
	case Level2:
		return &Ciphertext{Level: Level2, Paired: e.scheme.pairedScalarMul(x.Paired, k)}, nil
	case Level4:
		return &Ciphertext{Level: Level4, Boosted: e.scheme.boostedScalarMul(x.Boosted, k)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown ciphertext level %d", ErrLevelExceeded, x.Level)
	}
}

// Multiply applies the pairing to two level-1 ciphertexts, producing a
// level-2 ciphertext of the product. Any other operand levels are
// rejected: the target group supports no further pairing.
func (e *Evaluator) Multiply(x, y *Ciphertext) (*Ciphertext, error) {
	if x.Level != Level1 || y.Level != Level1 {
		return nil, fmt.Errorf("%w: Multiply requires two level-1 operands, got %d and %d",
			ErrLevelExceeded, x.Level, y.Level)
	}
	return &Ciphertext{Level: Level2, Paired: e.scheme.multiply(x.Fresh, y.Fresh)}, nil
}

// BoostedMultiply multiplies two level-2 ciphertexts using the public
// evaluation key, producing a level-4 ciphertext. Level-1 operands must
// be promoted explicitly with Lift first; level-4 operands are beyond the
// supported degree.
func (e *Evaluator) BoostedMultiply(x, y *Ciphertext) (*Ciphertext, error) {
	if x.Level != Level2 || y.Level != Level2 {
		return nil, fmt.Errorf("%w: BoostedMultiply requires two level-2 operands, got %d and %d",
			ErrLevelExceeded, x.Level, y.Level)
	}
	if e.ek == nil {
		return nil, fmt.Errorf("lhe: evaluator has no evaluation key for BoostedMultiply")
	}
	return &Ciphertext{Level: Level4, Boosted: e.scheme.boostedMultiply(x.Paired, y.Paired, e.ek)}, nil
}

// Lift promotes a ciphertext by exactly one step without multiplying:
// level 1 becomes level 2 through the deterministic pairing against a
// trivial encryption of one, and level 2 becomes a degenerate level 4.
// This is the canonical promotion path; applying Lift repeatedly brings
// any ciphertext to the level an addition partner requires. Lifting a
// level-4 ciphertext is rejected.
func (e *Evaluator) Lift(x *Ciphertext) (*Ciphertext, error) {
	switch x.Level {
	case Level1:
		return &Ciphertext{Level: Level2, Paired: e.scheme.liftFresh(x.Fresh)}, nil
	case Level2:
		return &Ciphertext{Level: Level4, Boosted: e.scheme.liftPaired(x.Paired)}, nil
	default:
		return nil, fmt.Errorf("%w: cannot lift a level-%d ciphertext", ErrLevelExceeded, x.Level)
	}
}

// InnerProduct computes the encrypted inner product of level-1
// ciphertexts with a cleartext weight vector, a common aggregation step
// in private scoring. The result stays at level 1.
func (e *Evaluator) InnerProduct(cts []*Ciphertext, weights []*big.Int) (*Ciphertext, error) {
	if len(cts) == 0 || len(cts) != len(weights) {
		return nil, fmt.Errorf("lhe: inner product needs equally sized non-empty inputs, got %d and %d",
			len(cts), len(weights))
	}
	acc, err := e.ScalarMul(cts[0], weights[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(cts); i++ {
		term, err := e.ScalarMul(cts[i], weights[i])
		if err != nil {
			return nil, err
		}
		acc, err = e.Add(acc, term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
