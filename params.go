package lhe

import "math/big"

// DefaultBound is the default exclusive upper bound of the plaintext
// domain. Discrete-log decoding costs O(sqrt(Bound)) per table base, so
// the bound must stay small enough for decryption to remain tractable.
const DefaultBound = 1 << 20

// Params fixes the plaintext domain [0, Bound) of a scheme instance.
// Every value that is ever decrypted, including intermediate sums and
// products, must stay inside the domain; overflow is reported as a decode
// failure, never wrapped.
type Params struct {
	Bound *big.Int
}

// NewParams returns parameters with the given plaintext bound.
func NewParams(bound *big.Int) *Params {
	return &Params{Bound: new(big.Int).Set(bound)}
}

// DefaultParams returns parameters with Bound = DefaultBound.
func DefaultParams() *Params {
	return NewParams(big.NewInt(DefaultBound))
}
