// Package group defines the pairing-group contract consumed by the
// encryption core. The core never assumes a concrete curve; it only relies
// on a cyclic group of known prime order with one bilinear pairing between
// two source groups, exposed through the interfaces below.
package group

import "math/big"

// Element is an opaque group element. Elements are owned by the Group that
// produced them and must not be passed to a different Group.
type Element interface{}

// Group is one cyclic group of a pairing-friendly triple. Implementations
// must be safe for concurrent use and must treat elements as immutable:
// every operation returns a fresh element.
type Group interface {
	// Name identifies the group, e.g. "bn256.G1".
	Name() string

	// Order returns the prime order shared by all three groups.
	Order() *big.Int

	// Identity returns the neutral element.
	Identity() Element

	// Generator returns the fixed generator.
	Generator() Element

	// ScalarBaseMul returns Generator^k. Negative k is reduced mod Order.
	ScalarBaseMul(k *big.Int) Element

	// ScalarMul returns e^k. Negative k is reduced mod Order.
	ScalarMul(e Element, k *big.Int) Element

	// Combine returns the group operation applied to a and b.
	Combine(a, b Element) Element

	// Invert returns the inverse of e.
	Invert(e Element) Element

	// Equal reports whether a and b are the same group element.
	Equal(a, b Element) bool

	// Marshal encodes e into its fixed-width byte form.
	Marshal(e Element) []byte

	// Unmarshal decodes a fixed-width byte form produced by Marshal.
	Unmarshal(data []byte) (Element, error)

	// ElementSize returns the byte length of a marshalled element.
	ElementSize() int
}

// Pairing is a bilinear triple (G1, G2, GT) with the map
// Pair: G1 x G2 -> GT satisfying Pair(a^x, b^y) = Pair(a, b)^(x*y).
type Pairing interface {
	Source1() Group
	Source2() Group
	Target() Group

	// Pair applies the bilinear map to a Source1 and a Source2 element.
	Pair(a, b Element) Element
}
