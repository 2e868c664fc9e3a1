package lhe

import (
	"math/big"

	"github.com/nthparty/lhe/group"
)

// PairedCiphertext is the level-2 shape: four target-group components
// produced by pairing the cross terms of two fresh ciphertexts,
//
//	C1 = e(A1, A2'), C2 = e(A1, B2'), C3 = e(B1, A2'), C4 = e(B1, B2').
//
// It decrypts to the product of the two source plaintexts. The target
// group has no pairing of its own, so a paired ciphertext supports
// addition, scalar multiplication and decryption, but no further pairing.
type PairedCiphertext struct {
	C1, C2, C3, C4 group.Element
}

// multiply pairs the G1 half of x against the G2 half of y. This is the
// single multiplication the base scheme supports.
func (s *Scheme) multiply(x, y *FreshCiphertext) *PairedCiphertext {
	return &PairedCiphertext{
		C1: s.pairing.Pair(x.A1, y.A2),
		C2: s.pairing.Pair(x.A1, y.B2),
		C3: s.pairing.Pair(x.B1, y.A2),
		C4: s.pairing.Pair(x.B1, y.B2),
	}
}

// liftFresh promotes a fresh ciphertext to the paired shape without
// multiplying, by pairing its G1 half against the constant G2 pair
// (identity, g2), a zero-randomness encryption of one. The operation is
// deterministic and exact: the result decrypts to the same plaintext.
func (s *Scheme) liftFresh(x *FreshCiphertext) *PairedCiphertext {
	id2 := s.pairing.Source2().Identity()
	gen2 := s.pairing.Source2().Generator()
	return &PairedCiphertext{
		C1: s.pairing.Pair(x.A1, id2),
		C2: s.pairing.Pair(x.A1, gen2),
		C3: s.pairing.Pair(x.B1, id2),
		C4: s.pairing.Pair(x.B1, gen2),
	}
}

// zeroPaired is the paired encryption of zero with zero randomness: all
// components are the target-group identity.
func (s *Scheme) zeroPaired() *PairedCiphertext {
	id := s.pairing.Target().Identity()
	return &PairedCiphertext{C1: id, C2: id, C3: id, C4: id}
}

func (s *Scheme) pairedAdd(x, y *PairedCiphertext) *PairedCiphertext {
	gt := s.pairing.Target()
	return &PairedCiphertext{
		C1: gt.Combine(x.C1, y.C1),
		C2: gt.Combine(x.C2, y.C2),
		C3: gt.Combine(x.C3, y.C3),
		C4: gt.Combine(x.C4, y.C4),
	}
}

// pairedSub subtracts y from x componentwise; the plaintext exponents
// subtract. Used by the boosting layer to blind operands.
func (s *Scheme) pairedSub(x, y *PairedCiphertext) *PairedCiphertext {
	gt := s.pairing.Target()
	return &PairedCiphertext{
		C1: gt.Combine(x.C1, gt.Invert(y.C1)),
		C2: gt.Combine(x.C2, gt.Invert(y.C2)),
		C3: gt.Combine(x.C3, gt.Invert(y.C3)),
		C4: gt.Combine(x.C4, gt.Invert(y.C4)),
	}
}

func (s *Scheme) pairedScalarMul(x *PairedCiphertext, k *big.Int) *PairedCiphertext {
	gt := s.pairing.Target()
	return &PairedCiphertext{
		C1: gt.ScalarMul(x.C1, k),
		C2: gt.ScalarMul(x.C2, k),
		C3: gt.ScalarMul(x.C3, k),
		C4: gt.ScalarMul(x.C4, k),
	}
}

// decryptPaired recovers e(g1,g2)^m as C1^(s^2) * C2^(-s) * C3^(-s) * C4
// and decodes m against the target-group table.
func (s *Scheme) decryptPaired(sk *SecretKey, ct *PairedCiphertext) (*big.Int, error) {
	return s.decodeTarget(s.unblindPaired(sk, ct), false)
}

// decryptPairedSigned is decryptPaired with negative exponents admitted;
// the boosting layer uses it for blinded residuals.
func (s *Scheme) decryptPairedSigned(sk *SecretKey, ct *PairedCiphertext) (*big.Int, error) {
	return s.decodeTarget(s.unblindPaired(sk, ct), true)
}

func (s *Scheme) unblindPaired(sk *SecretKey, ct *PairedCiphertext) group.Element {
	gt := s.pairing.Target()
	s2 := new(big.Int).Mul(sk.S, sk.S)

	e := gt.ScalarMul(ct.C1, s2)
	e = gt.Combine(e, gt.Invert(gt.ScalarMul(ct.C2, sk.S)))
	e = gt.Combine(e, gt.Invert(gt.ScalarMul(ct.C3, sk.S)))
	e = gt.Combine(e, ct.C4)
	return e
}
