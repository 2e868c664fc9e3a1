package lhe

import (
	"fmt"
	"math/big"

	"github.com/fentec-project/gofe/sample"

	"github.com/nthparty/lhe/group"
)

// SecretKey is the single secret scalar of a key pair. It is held only by
// the decrypting party and is never part of any serialized public
// material.
type SecretKey struct {
	S *big.Int
}

// PublicKey carries the secret-derived public element of each source
// group: P1 = g1^s and P2 = g2^s. It is shared with every party that
// encrypts or evaluates.
type PublicKey struct {
	P1 group.Element
	P2 group.Element
}

// EvaluationKey is the public material the boosting layer needs. The two
// blinding scalars sampled at key generation are published only as
// level-1 encryptions: the evaluator combines them homomorphically
// without learning them, while the key holder recovers them by
// decryption. The key is generated once per key pair and never changes.
type EvaluationKey struct {
	MaskA *FreshCiphertext // encryption of the first blinding scalar
	MaskB *FreshCiphertext // encryption of the second blinding scalar
}

// KeyGen samples a fresh key triple: the secret scalar, its public
// elements in both source groups, and the evaluation key with two
// blinding scalars drawn from the plaintext domain. It fails only when
// the randomness source is unavailable.
func (s *Scheme) KeyGen() (*SecretKey, *PublicKey, *EvaluationKey, error) {
	sec, err := s.sampleScalar()
	if err != nil {
		return nil, nil, nil, err
	}

	sk := &SecretKey{S: sec}
	pk := &PublicKey{
		P1: s.pairing.Source1().ScalarBaseMul(sec),
		P2: s.pairing.Source2().ScalarBaseMul(sec),
	}

	// Blinding scalars stay inside the message domain so that blinded
	// residuals remain decodable.
	maskSampler := sample.NewUniform(s.params.Bound)
	betaA, err := maskSampler.Sample()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	betaB, err := maskSampler.Sample()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}

	maskA, err := s.encryptFresh(pk, betaA)
	if err != nil {
		return nil, nil, nil, err
	}
	maskB, err := s.encryptFresh(pk, betaB)
	if err != nil {
		return nil, nil, nil, err
	}

	return sk, pk, &EvaluationKey{MaskA: maskA, MaskB: maskB}, nil
}

// blindingScalars recovers the two blinding scalars from the evaluation
// key. Only the secret-key holder can do this; the scalars are needed to
// compute the correction during boosted decryption.
func (s *Scheme) blindingScalars(sk *SecretKey, ek *EvaluationKey) (*big.Int, *big.Int, error) {
	betaA, err := s.decryptFresh(sk, ek.MaskA)
	if err != nil {
		return nil, nil, err
	}
	betaB, err := s.decryptFresh(sk, ek.MaskB)
	if err != nil {
		return nil, nil, err
	}
	return betaA, betaB, nil
}
