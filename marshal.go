package lhe

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/nthparty/lhe/group"
)

// Serialized forms are concatenations of fixed-width group-element
// encodings in a documented field order. Every ciphertext frame starts
// with a tag byte identifying its level, so a receiver can never mistake
// one shape for another.
const (
	tagFresh   byte = 0x01
	tagPaired  byte = 0x02
	tagBoosted byte = 0x04

	scalarSize = 32

	// coefficient encoding: 1 sign byte + 32-byte magnitude
	coeffSize = 1 + scalarSize
)

// MarshalSecretKey encodes the secret scalar as 32 big-endian bytes.
func (s *Scheme) MarshalSecretKey(sk *SecretKey) []byte {
	out := make([]byte, scalarSize)
	sk.S.FillBytes(out)
	return out
}

// UnmarshalSecretKey decodes a secret key produced by MarshalSecretKey.
func (s *Scheme) UnmarshalSecretKey(b []byte) (*SecretKey, error) {
	if len(b) != scalarSize {
		return nil, fmt.Errorf("lhe: secret key must be %d bytes, got %d", scalarSize, len(b))
	}
	return &SecretKey{S: new(big.Int).SetBytes(b)}, nil
}

// MarshalPublicKey encodes P1 then P2.
func (s *Scheme) MarshalPublicKey(pk *PublicKey) []byte {
	g1, g2 := s.pairing.Source1(), s.pairing.Source2()
	return append(g1.Marshal(pk.P1), g2.Marshal(pk.P2)...)
}

// UnmarshalPublicKey decodes a public key produced by MarshalPublicKey.
func (s *Scheme) UnmarshalPublicKey(b []byte) (*PublicKey, error) {
	g1, g2 := s.pairing.Source1(), s.pairing.Source2()
	if len(b) != g1.ElementSize()+g2.ElementSize() {
		return nil, fmt.Errorf("lhe: public key must be %d bytes, got %d",
			g1.ElementSize()+g2.ElementSize(), len(b))
	}
	p1, err := g1.Unmarshal(b[:g1.ElementSize()])
	if err != nil {
		return nil, fmt.Errorf("lhe: public key: %w", err)
	}
	p2, err := g2.Unmarshal(b[g1.ElementSize():])
	if err != nil {
		return nil, fmt.Errorf("lhe: public key: %w", err)
	}
	return &PublicKey{P1: p1, P2: p2}, nil
}

// MarshalEvaluationKey encodes the two mask encryptions, MaskA then MaskB.
func (s *Scheme) MarshalEvaluationKey(ek *EvaluationKey) []byte {
	out := s.marshalFresh(ek.MaskA)
	return append(out, s.marshalFresh(ek.MaskB)...)
}

// UnmarshalEvaluationKey decodes a key produced by MarshalEvaluationKey.
func (s *Scheme) UnmarshalEvaluationKey(b []byte) (*EvaluationKey, error) {
	size := s.freshSize()
	if len(b) != 2*size {
		return nil, fmt.Errorf("lhe: evaluation key must be %d bytes, got %d", 2*size, len(b))
	}
	maskA, err := s.unmarshalFresh(b[:size])
	if err != nil {
		return nil, fmt.Errorf("lhe: evaluation key: %w", err)
	}
	maskB, err := s.unmarshalFresh(b[size:])
	if err != nil {
		return nil, fmt.Errorf("lhe: evaluation key: %w", err)
	}
	return &EvaluationKey{MaskA: maskA, MaskB: maskB}, nil
}

// MarshalCiphertext encodes a ciphertext of any level behind its tag byte.
func (s *Scheme) MarshalCiphertext(ct *Ciphertext) ([]byte, error) {
	switch ct.Level {
	case Level1:
		return append([]byte{tagFresh}, s.marshalFresh(ct.Fresh)...), nil
	case Level2:
		return append([]byte{tagPaired}, s.marshalPaired(ct.Paired)...), nil
	case Level4:
		body, err := s.marshalBoosted(ct.Boosted)
		if err != nil {
			return nil, err
		}
		return append([]byte{tagBoosted}, body...), nil
	default:
		return nil, fmt.Errorf("%w: unknown ciphertext level %d", ErrLevelExceeded, ct.Level)
	}
}

// UnmarshalCiphertext decodes a level-tagged frame produced by
// MarshalCiphertext. A tag/length mismatch is rejected before any group
// decoding happens.
func (s *Scheme) UnmarshalCiphertext(b []byte) (*Ciphertext, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("lhe: empty ciphertext frame")
	}
	tag, body := b[0], b[1:]
	switch tag {
	case tagFresh:
		if len(body) != s.freshSize() {
			return nil, fmt.Errorf("lhe: level-1 body must be %d bytes, got %d", s.freshSize(), len(body))
		}
		ct, err := s.unmarshalFresh(body)
		if err != nil {
			return nil, err
		}
		return &Ciphertext{Level: Level1, Fresh: ct}, nil
	case tagPaired:
		if len(body) != s.pairedSize() {
			return nil, fmt.Errorf("lhe: level-2 body must be %d bytes, got %d", s.pairedSize(), len(body))
		}
		ct, err := s.unmarshalPaired(body)
		if err != nil {
			return nil, err
		}
		return &Ciphertext{Level: Level2, Paired: ct}, nil
	case tagBoosted:
		ct, err := s.unmarshalBoosted(body)
		if err != nil {
			return nil, err
		}
		return &Ciphertext{Level: Level4, Boosted: ct}, nil
	default:
		return nil, fmt.Errorf("lhe: unknown ciphertext tag 0x%02x", tag)
	}
}

func (s *Scheme) freshSize() int {
	return 2*s.pairing.Source1().ElementSize() + 2*s.pairing.Source2().ElementSize()
}

func (s *Scheme) pairedSize() int {
	return 4 * s.pairing.Target().ElementSize()
}

// marshalFresh encodes A1 | B1 | A2 | B2.
func (s *Scheme) marshalFresh(ct *FreshCiphertext) []byte {
	g1, g2 := s.pairing.Source1(), s.pairing.Source2()
	out := make([]byte, 0, s.freshSize())
	out = append(out, g1.Marshal(ct.A1)...)
	out = append(out, g1.Marshal(ct.B1)...)
	out = append(out, g2.Marshal(ct.A2)...)
	out = append(out, g2.Marshal(ct.B2)...)
	return out
}

func (s *Scheme) unmarshalFresh(b []byte) (*FreshCiphertext, error) {
	g1, g2 := s.pairing.Source1(), s.pairing.Source2()
	n1, n2 := g1.ElementSize(), g2.ElementSize()

	a1, err := g1.Unmarshal(b[:n1])
	if err != nil {
		return nil, err
	}
	b1, err := g1.Unmarshal(b[n1 : 2*n1])
	if err != nil {
		return nil, err
	}
	a2, err := g2.Unmarshal(b[2*n1 : 2*n1+n2])
	if err != nil {
		return nil, err
	}
	b2, err := g2.Unmarshal(b[2*n1+n2:])
	if err != nil {
		return nil, err
	}
	return &FreshCiphertext{A1: a1, B1: b1, A2: a2, B2: b2}, nil
}

// marshalPaired encodes C1 | C2 | C3 | C4.
func (s *Scheme) marshalPaired(ct *PairedCiphertext) []byte {
	gt := s.pairing.Target()
	out := make([]byte, 0, s.pairedSize())
	out = append(out, gt.Marshal(ct.C1)...)
	out = append(out, gt.Marshal(ct.C2)...)
	out = append(out, gt.Marshal(ct.C3)...)
	out = append(out, gt.Marshal(ct.C4)...)
	return out
}

func (s *Scheme) unmarshalPaired(b []byte) (*PairedCiphertext, error) {
	gt := s.pairing.Target()
	n := gt.ElementSize()

	elems := make([]group.Element, 4)
	for i := range elems {
		e, err := gt.Unmarshal(b[i*n : (i+1)*n])
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	return &PairedCiphertext{C1: elems[0], C2: elems[1], C3: elems[2], C4: elems[3]}, nil
}

// marshalBoosted encodes T | uint32 pair count | pairs, each pair being
// A | B | coefficient. Coefficients are signed: one sign byte (0x00
// non-negative, 0x01 negative) then a 32-byte big-endian magnitude.
func (s *Scheme) marshalBoosted(ct *BoostedCiphertext) ([]byte, error) {
	out := s.marshalPaired(ct.T)
	out = binary.BigEndian.AppendUint32(out, uint32(len(ct.Pairs)))

	for _, p := range ct.Pairs {
		out = append(out, s.marshalPaired(p.A)...)
		out = append(out, s.marshalPaired(p.B)...)

		coeff := make([]byte, coeffSize)
		if p.K.Sign() < 0 {
			coeff[0] = 0x01
		}
		mag := new(big.Int).Abs(p.K)
		if mag.BitLen() > 8*scalarSize {
			return nil, fmt.Errorf("lhe: pair coefficient exceeds %d bytes", scalarSize)
		}
		mag.FillBytes(coeff[1:])
		out = append(out, coeff...)
	}
	return out, nil
}

func (s *Scheme) unmarshalBoosted(b []byte) (*BoostedCiphertext, error) {
	ps := s.pairedSize()
	if len(b) < ps+4 {
		return nil, fmt.Errorf("lhe: level-4 body too short: %d bytes", len(b))
	}

	t, err := s.unmarshalPaired(b[:ps])
	if err != nil {
		return nil, err
	}

	count := int(binary.BigEndian.Uint32(b[ps : ps+4]))
	rest := b[ps+4:]
	pairSize := 2*ps + coeffSize
	if len(rest) != count*pairSize {
		return nil, fmt.Errorf("lhe: level-4 body declares %d pairs but carries %d bytes", count, len(rest))
	}

	pairs := make([]BoostedPair, count)
	for i := 0; i < count; i++ {
		chunk := rest[i*pairSize : (i+1)*pairSize]

		a, err := s.unmarshalPaired(chunk[:ps])
		if err != nil {
			return nil, err
		}
		bb, err := s.unmarshalPaired(chunk[ps : 2*ps])
		if err != nil {
			return nil, err
		}

		coeff := chunk[2*ps:]
		k := new(big.Int).SetBytes(coeff[1:])
		if coeff[0] == 0x01 {
			k.Neg(k)
		}
		pairs[i] = BoostedPair{A: a, B: bb, K: k}
	}
	return &BoostedCiphertext{T: t, Pairs: pairs}, nil
}
