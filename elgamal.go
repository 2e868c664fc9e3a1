package lhe

import (
	"math/big"

	"github.com/fentec-project/gofe/data"

	"github.com/nthparty/lhe/group"
)

// FreshCiphertext is a level-1 lifted-ElGamal ciphertext. The pairing is
// asymmetric, so the same plaintext is encrypted in both source groups
// under independent randomness:
//
//	A1 = g1^r1, B1 = g1^m * P1^r1    (in G1)
//	A2 = g2^r2, B2 = g2^m * P2^r2    (in G2)
//
// Carrying both halves makes multiplication total on any two fresh
// ciphertexts: the pairing consumes the G1 half of one operand and the G2
// half of the other. Ciphertexts are immutable; every operation returns a
// new value.
type FreshCiphertext struct {
	A1, B1 group.Element
	A2, B2 group.Element
}

// Encrypt encrypts a plaintext from [0, Bound) under pk at level 1.
func (s *Scheme) Encrypt(pk *PublicKey, m *big.Int) (*Ciphertext, error) {
	ct, err := s.encryptFresh(pk, m)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{Level: Level1, Fresh: ct}, nil
}

// EncryptVector encrypts every entry of a plaintext vector, preserving
// order. It is a convenience for batched inputs such as feature vectors.
func (s *Scheme) EncryptVector(pk *PublicKey, v data.Vector) ([]*Ciphertext, error) {
	cts := make([]*Ciphertext, len(v))
	for i, m := range v {
		ct, err := s.Encrypt(pk, m)
		if err != nil {
			return nil, err
		}
		cts[i] = ct
	}
	return cts, nil
}

func (s *Scheme) encryptFresh(pk *PublicKey, m *big.Int) (*FreshCiphertext, error) {
	if m.Sign() < 0 || m.Cmp(s.params.Bound) >= 0 {
		return nil, ErrDomain
	}

	r1, err := s.sampleScalar()
	if err != nil {
		return nil, err
	}
	r2, err := s.sampleScalar()
	if err != nil {
		return nil, err
	}

	g1, g2 := s.pairing.Source1(), s.pairing.Source2()
	return &FreshCiphertext{
		A1: g1.ScalarBaseMul(r1),
		B1: g1.Combine(g1.ScalarBaseMul(m), g1.ScalarMul(pk.P1, r1)),
		A2: g2.ScalarBaseMul(r2),
		B2: g2.Combine(g2.ScalarBaseMul(m), g2.ScalarMul(pk.P2, r2)),
	}, nil
}

// decryptFresh recovers g1^m = B1 / A1^s from the G1 half and decodes m
// against the generator table.
func (s *Scheme) decryptFresh(sk *SecretKey, ct *FreshCiphertext) (*big.Int, error) {
	g1 := s.pairing.Source1()
	lifted := g1.Combine(ct.B1, g1.Invert(g1.ScalarMul(ct.A1, sk.S)))
	return s.decodeSource(lifted)
}

// freshAdd combines two fresh ciphertexts componentwise; the plaintext
// exponents add.
func (s *Scheme) freshAdd(x, y *FreshCiphertext) *FreshCiphertext {
	g1, g2 := s.pairing.Source1(), s.pairing.Source2()
	return &FreshCiphertext{
		A1: g1.Combine(x.A1, y.A1),
		B1: g1.Combine(x.B1, y.B1),
		A2: g2.Combine(x.A2, y.A2),
		B2: g2.Combine(x.B2, y.B2),
	}
}

// freshScalarMul raises every component to a cleartext scalar k,
// equivalent to encrypting k*m with randomness k*r.
func (s *Scheme) freshScalarMul(x *FreshCiphertext, k *big.Int) *FreshCiphertext {
	g1, g2 := s.pairing.Source1(), s.pairing.Source2()
	return &FreshCiphertext{
		A1: g1.ScalarMul(x.A1, k),
		B1: g1.ScalarMul(x.B1, k),
		A2: g2.ScalarMul(x.A2, k),
		B2: g2.ScalarMul(x.B2, k),
	}
}
