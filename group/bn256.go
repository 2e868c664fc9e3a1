package group

import (
	"bytes"
	"fmt"
	"math/big"
	"sync"

	"github.com/fentec-project/bn256"
)

// Marshalled element sizes of the bn256 groups, in bytes.
const (
	SizeG1 = 64
	// fentec-project/bn256 prefixes G2 encodings with a one-byte
	// infinity flag, so elements are 1 + 4*32 bytes.
	SizeG2 = 129
	SizeGT = 384
)

var (
	bn256Once sync.Once
	bn256Inst *bn256Pairing
)

// BN256 returns the pairing triple backed by the Barreto-Naehrig curve of
// github.com/fentec-project/bn256. The returned value is a process-wide
// singleton and safe for concurrent use.
func BN256() Pairing {
	bn256Once.Do(func() {
		bn256Inst = &bn256Pairing{
			g1: bnG1{},
			g2: bnG2{},
			gt: bnGT{gen: bn256.Pair(
				new(bn256.G1).ScalarBaseMult(big.NewInt(1)),
				new(bn256.G2).ScalarBaseMult(big.NewInt(1)),
			)},
		}
	})
	return bn256Inst
}

type bn256Pairing struct {
	g1 bnG1
	g2 bnG2
	gt bnGT
}

func (p *bn256Pairing) Source1() Group { return p.g1 }
func (p *bn256Pairing) Source2() Group { return p.g2 }
func (p *bn256Pairing) Target() Group  { return p.gt }

func (p *bn256Pairing) Pair(a, b Element) Element {
	return bn256.Pair(a.(*bn256.G1), b.(*bn256.G2))
}

// reduce maps k into [0, Order), so that negative scalars act as the
// corresponding inverse exponent.
func reduce(k *big.Int) *big.Int {
	if k.Sign() >= 0 && k.Cmp(bn256.Order) < 0 {
		return k
	}
	return new(big.Int).Mod(k, bn256.Order)
}

// G1

type bnG1 struct{}

func (bnG1) Name() string       { return "bn256.G1" }
func (bnG1) Order() *big.Int    { return bn256.Order }
func (bnG1) ElementSize() int   { return SizeG1 }
func (bnG1) Identity() Element  { return new(bn256.G1).ScalarBaseMult(big.NewInt(0)) }
func (bnG1) Generator() Element { return new(bn256.G1).ScalarBaseMult(big.NewInt(1)) }

func (bnG1) ScalarBaseMul(k *big.Int) Element {
	return new(bn256.G1).ScalarBaseMult(reduce(k))
}

func (bnG1) ScalarMul(e Element, k *big.Int) Element {
	return new(bn256.G1).ScalarMult(e.(*bn256.G1), reduce(k))
}

func (bnG1) Combine(a, b Element) Element {
	return new(bn256.G1).Add(a.(*bn256.G1), b.(*bn256.G1))
}

func (bnG1) Invert(e Element) Element {
	return new(bn256.G1).Neg(e.(*bn256.G1))
}

func (g bnG1) Equal(a, b Element) bool {
	return bytes.Equal(g.Marshal(a), g.Marshal(b))
}

func (bnG1) Marshal(e Element) []byte {
	return e.(*bn256.G1).Marshal()
}

func (bnG1) Unmarshal(data []byte) (Element, error) {
	if len(data) != SizeG1 {
		return nil, fmt.Errorf("bn256.G1: expected %d bytes, got %d", SizeG1, len(data))
	}
	e := new(bn256.G1)
	if _, err := e.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("bn256.G1: %w", err)
	}
	return e, nil
}

// G2

type bnG2 struct{}

func (bnG2) Name() string       { return "bn256.G2" }
func (bnG2) Order() *big.Int    { return bn256.Order }
func (bnG2) ElementSize() int   { return SizeG2 }
func (bnG2) Identity() Element  { return new(bn256.G2).ScalarBaseMult(big.NewInt(0)) }
func (bnG2) Generator() Element { return new(bn256.G2).ScalarBaseMult(big.NewInt(1)) }

func (bnG2) ScalarBaseMul(k *big.Int) Element {
	return new(bn256.G2).ScalarBaseMult(reduce(k))
}

func (bnG2) ScalarMul(e Element, k *big.Int) Element {
	return new(bn256.G2).ScalarMult(e.(*bn256.G2), reduce(k))
}

func (bnG2) Combine(a, b Element) Element {
	return new(bn256.G2).Add(a.(*bn256.G2), b.(*bn256.G2))
}

func (bnG2) Invert(e Element) Element {
	return new(bn256.G2).Neg(e.(*bn256.G2))
}

func (g bnG2) Equal(a, b Element) bool {
	return bytes.Equal(g.Marshal(a), g.Marshal(b))
}

func (bnG2) Marshal(e Element) []byte {
	return e.(*bn256.G2).Marshal()
}

func (bnG2) Unmarshal(data []byte) (Element, error) {
	if len(data) != SizeG2 {
		return nil, fmt.Errorf("bn256.G2: expected %d bytes, got %d", SizeG2, len(data))
	}
	e := new(bn256.G2)
	if _, err := e.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("bn256.G2: %w", err)
	}
	return e, nil
}

// GT

type bnGT struct {
	// gen is the pairing of the two source generators, the base against
	// which target-group exponents are decoded.
	gen *bn256.GT
}

func (bnGT) Name() string         { return "bn256.GT" }
func (bnGT) Order() *big.Int      { return bn256.Order }
func (bnGT) ElementSize() int     { return SizeGT }
func (bnGT) Identity() Element    { return new(bn256.GT).ScalarBaseMult(big.NewInt(0)) }
func (g bnGT) Generator() Element { return g.gen }

func (g bnGT) ScalarBaseMul(k *big.Int) Element {
	return new(bn256.GT).ScalarMult(g.gen, reduce(k))
}

func (bnGT) ScalarMul(e Element, k *big.Int) Element {
	return new(bn256.GT).ScalarMult(e.(*bn256.GT), reduce(k))
}

func (bnGT) Combine(a, b Element) Element {
	return new(bn256.GT).Add(a.(*bn256.GT), b.(*bn256.GT))
}

func (bnGT) Invert(e Element) Element {
	return new(bn256.GT).Neg(e.(*bn256.GT))
}

func (g bnGT) Equal(a, b Element) bool {
	return bytes.Equal(g.Marshal(a), g.Marshal(b))
}

func (bnGT) Marshal(e Element) []byte {
	return e.(*bn256.GT).Marshal()
}

func (bnGT) Unmarshal(data []byte) (Element, error) {
	if len(data) != SizeGT {
		return nil, fmt.Errorf("bn256.GT: expected %d bytes, got %d", SizeGT, len(data))
	}
	e := new(bn256.GT)
	if _, err := e.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("bn256.GT: %w", err)
	}
	return e, nil
}
