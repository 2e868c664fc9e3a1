// Package lhe implements homomorphic encryption for polynomials of degree
// up to four over a bounded integer domain. The base layer is a lifted
// ElGamal scheme on a bilinear pairing group: ciphertexts add freely and
// support one multiplication through the pairing. A Catalano-Fiore style
// boosting layer lifts the result once more, so an evaluator holding only
// public material can multiply two already-multiplied ciphertexts, at the
// price of correction terms that the key holder removes during decryption.
//
// Plaintexts live in [0, Bound); decryption recovers the exponent of a
// group element by a baby-step giant-step search, so the bound must stay
// small enough for that search to be tractable.
package lhe

import (
	"fmt"
	"math/big"

	"github.com/fentec-project/gofe/sample"

	"github.com/nthparty/lhe/group"
	"github.com/nthparty/lhe/internal/dlog"
)

// Scheme binds the pairing triple, the randomness source and the
// discrete-log tables for one choice of parameters. A Scheme is immutable
// after construction and safe for concurrent use; the decode tables are
// built lazily, at most once each.
type Scheme struct {
	params  *Params
	pairing group.Pairing
	sampler sample.Sampler

	sourceCalc *dlog.Calc // base g1, plaintext exponents of fresh ciphertexts
	targetCalc *dlog.Calc // base e(g1,g2), exponents after pairing
}

// NewScheme returns a scheme over the bn256 pairing with uniform scalar
// sampling. Nil params select DefaultParams.
func NewScheme(params *Params) *Scheme {
	if params == nil {
		params = DefaultParams()
	}
	pairing := group.BN256()
	return &Scheme{
		params:     params,
		pairing:    pairing,
		sampler:    sample.NewUniform(pairing.Source1().Order()),
		sourceCalc: dlog.NewCalc(pairing.Source1(), params.Bound),
		targetCalc: dlog.NewCalc(pairing.Target(), params.Bound),
	}
}

// Params returns the scheme parameters.
func (s *Scheme) Params() *Params { return s.params }

// Pairing returns the pairing triple the scheme operates on.
func (s *Scheme) Pairing() group.Pairing { return s.pairing }

// sampleScalar draws one uniform scalar from [0, order).
func (s *Scheme) sampleScalar() (*big.Int, error) {
	r, err := s.sampler.Sample()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return r, nil
}

// Decrypt recovers the plaintext of a ciphertext at any level. The
// evaluation key is required for level-4 ciphertexts, whose blinding it
// carries; it may be nil otherwise.
func (s *Scheme) Decrypt(sk *SecretKey, ek *EvaluationKey, ct *Ciphertext) (*big.Int, error) {
	switch ct.Level {
	case Level1:
		return s.decryptFresh(sk, ct.Fresh)
	case Level2:
		return s.decryptPaired(sk, ct.Paired)
	case Level4:
		if ek == nil {
			return nil, fmt.Errorf("lhe: evaluation key required to decrypt a level-4 ciphertext")
		}
		return s.decryptBoosted(sk, ek, ct.Boosted)
	default:
		return nil, fmt.Errorf("%w: unknown ciphertext level %d", ErrLevelExceeded, ct.Level)
	}
}

// decodeSource recovers m from g1^m.
func (s *Scheme) decodeSource(e group.Element) (*big.Int, error) {
	m, err := s.sourceCalc.BabyStepGiantStep(e, s.pairing.Source1().Generator())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return m, nil
}

// decodeTarget recovers m from e(g1,g2)^m. Negative exponents down to
// -Bound are admitted when neg is set; the boosting layer produces blinded
// residuals in (-Bound, Bound).
func (s *Scheme) decodeTarget(e group.Element, neg bool) (*big.Int, error) {
	calc := s.targetCalc
	if neg {
		calc = calc.WithNeg()
	}
	m, err := calc.BabyStepGiantStep(e, s.pairing.Target().Generator())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return m, nil
}
