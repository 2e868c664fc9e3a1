package lhe

import (
	"math/big"
)

// BoostedPair is one blinded product inside a level-4 ciphertext: two
// paired ciphertexts whose underlying plaintexts are multiplied during
// decryption, scaled by a cleartext coefficient. Both members carry the
// evaluation-key blinding, so neither decrypts to an unblinded partial
// product on its own.
type BoostedPair struct {
	A *PairedCiphertext
	B *PairedCiphertext
	K *big.Int
}

// BoostedCiphertext is the level-4 shape: an additive paired slot T plus
// a list of blinded pairs. A value lifted without multiplication has an
// empty pair list; a boosted multiplication contributes one pair; adding
// level-4 ciphertexts combines the T slots and concatenates the lists.
// No further multiplication is defined at this level.
type BoostedCiphertext struct {
	T     *PairedCiphertext
	Pairs []BoostedPair
}

// boostedMultiply multiplies two paired ciphertexts using only public
// evaluation-key material. Each operand is blinded by subtracting the
// lifted encryption of one blinding scalar, so the emitted pair encrypts
// the residuals u - betaA and v - betaB. The blinding contributes an
// additive term that is linear in the blinding scalars; the key holder
// reconstructs and removes it during decryption.
func (s *Scheme) boostedMultiply(x, y *PairedCiphertext, ek *EvaluationKey) *BoostedCiphertext {
	pa := s.pairedSub(x, s.liftFresh(ek.MaskA))
	pb := s.pairedSub(y, s.liftFresh(ek.MaskB))
	return &BoostedCiphertext{
		T:     s.zeroPaired(),
		Pairs: []BoostedPair{{A: pa, B: pb, K: big.NewInt(1)}},
	}
}

// liftPaired wraps a paired ciphertext as a degenerate level-4 value with
// an empty correction list, so later additions are well-defined whether
// operands arrived via multiplication or lifting.
func (s *Scheme) liftPaired(x *PairedCiphertext) *BoostedCiphertext {
	return &BoostedCiphertext{T: x, Pairs: nil}
}

func (s *Scheme) boostedAdd(x, y *BoostedCiphertext) *BoostedCiphertext {
	pairs := make([]BoostedPair, 0, len(x.Pairs)+len(y.Pairs))
	pairs = append(pairs, x.Pairs...)
	pairs = append(pairs, y.Pairs...)
	return &BoostedCiphertext{T: s.pairedAdd(x.T, y.T), Pairs: pairs}
}

// boostedScalarMul scales the additive slot and every pair coefficient.
// The pair members themselves are never scaled: the correction identity
// holds only for unscaled residuals.
func (s *Scheme) boostedScalarMul(x *BoostedCiphertext, k *big.Int) *BoostedCiphertext {
	pairs := make([]BoostedPair, len(x.Pairs))
	for i, p := range x.Pairs {
		pairs[i] = BoostedPair{A: p.A, B: p.B, K: new(big.Int).Mul(p.K, k)}
	}
	return &BoostedCiphertext{T: s.pairedScalarMul(x.T, k), Pairs: pairs}
}

// decryptBoosted decrypts the additive slot, then every blinded pair. For
// a pair with residuals u-betaA and v-betaB the product
//
//	u*v = (u-betaA)*(v-betaB) + betaB*(u-betaA) + betaA*(v-betaB) + betaA*betaB
//
// is reassembled from the decoded residuals and the blinding scalars
// recovered from the evaluation key. A final result outside [0, Bound)
// means the correction did not cancel, which signals a malformed or
// tampered ciphertext.
func (s *Scheme) decryptBoosted(sk *SecretKey, ek *EvaluationKey, ct *BoostedCiphertext) (*big.Int, error) {
	betaA, betaB, err := s.blindingScalars(sk, ek)
	if err != nil {
		return nil, err
	}

	total, err := s.decryptPaired(sk, ct.T)
	if err != nil {
		return nil, err
	}
	total = new(big.Int).Set(total)

	for _, p := range ct.Pairs {
		u, err := s.decryptPairedSigned(sk, p.A)
		if err != nil {
			return nil, err
		}
		v, err := s.decryptPairedSigned(sk, p.B)
		if err != nil {
			return nil, err
		}

		// u*v + betaB*u + betaA*v + betaA*betaB == (u+betaA)*(v+betaB)
		part := new(big.Int).Mul(u, v)
		part.Add(part, new(big.Int).Mul(betaB, u))
		part.Add(part, new(big.Int).Mul(betaA, v))
		part.Add(part, new(big.Int).Mul(betaA, betaB))
		part.Mul(part, p.K)

		total.Add(total, part)
	}

	if total.Sign() < 0 || total.Cmp(s.params.Bound) >= 0 {
		return nil, ErrCorrectionMismatch
	}
	return total, nil
}
