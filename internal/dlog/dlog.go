// Package dlog recovers bounded discrete logarithms in the groups of a
// pairing triple using the baby-step giant-step algorithm. A calculator
// memoizes one baby-step table per (base, bound) pair; the table is built
// at most once and shared by every subsequent search, including searches
// running concurrently.
package dlog

import (
	"errors"
	"math/big"
	"sync"

	"github.com/nthparty/lhe/group"
)

// ErrNotFound is returned when no exponent within the configured bound
// maps the base to the queried element.
var ErrNotFound = errors.New("dlog: exponent not found within bound")

// Calc finds exponents x with base^x == h for x in [0, bound), or in
// (-bound, bound) when negative search is enabled.
type Calc struct {
	g     group.Group
	bound *big.Int
	neg   bool

	tables *tableCache
}

// NewCalc returns a calculator over g with the given search bound.
func NewCalc(g group.Group, bound *big.Int) *Calc {
	return &Calc{
		g:      g,
		bound:  new(big.Int).Set(bound),
		neg:    false,
		tables: &tableCache{entries: make(map[string]*table)},
	}
}

// WithNeg returns a derived calculator that also searches negative
// exponents. The underlying tables are shared with the receiver.
func (c *Calc) WithNeg() *Calc {
	d := *c
	d.neg = true
	return &d
}

// WithBound returns a derived calculator with a different bound. The
// underlying table cache is shared with the receiver.
func (c *Calc) WithBound(bound *big.Int) *Calc {
	d := *c
	d.bound = new(big.Int).Set(bound)
	return &d
}

// BabyStepGiantStep searches for x such that base^x == h. The positive
// range is scanned first; when negative search is enabled and the positive
// scan fails, the inverse of h is scanned and the negated exponent is
// returned. Repeated queries for the same element are deterministic: they
// return the same exponent or fail identically.
func (c *Calc) BabyStepGiantStep(h, base group.Element) (*big.Int, error) {
	t := c.tables.get(c.g, base, c.bound)

	if x, ok := t.search(c.g, h); ok {
		return new(big.Int).SetInt64(x), nil
	}
	if c.neg {
		if x, ok := t.search(c.g, c.g.Invert(h)); ok {
			return new(big.Int).Neg(new(big.Int).SetInt64(x)), nil
		}
	}
	return nil, ErrNotFound
}

// table holds the baby steps base^j for j in [0, m) keyed by marshalled
// element, together with the giant step base^(-m). It is immutable once
// built.
type table struct {
	once sync.Once

	m     int64
	steps int64
	limit int64
	baby  map[string]int64
	giant group.Element
}

type tableCache struct {
	mu      sync.Mutex
	entries map[string]*table
}

// get returns the table for (base, bound), building it on first use. The
// build runs under the table's own sync.Once so concurrent callers for the
// same pair block on a single construction.
func (tc *tableCache) get(g group.Group, base group.Element, bound *big.Int) *table {
	key := string(g.Marshal(base)) + "/" + bound.String()

	tc.mu.Lock()
	t, ok := tc.entries[key]
	if !ok {
		t = &table{}
		tc.entries[key] = t
	}
	tc.mu.Unlock()

	t.once.Do(func() { t.build(g, base, bound) })
	return t
}

func (t *table) build(g group.Group, base group.Element, bound *big.Int) {
	m := new(big.Int).Sqrt(bound).Int64() + 1

	t.m = m
	t.steps = bound.Int64()/m + 1
	t.limit = bound.Int64()
	t.baby = make(map[string]int64, m)

	cur := g.Identity()
	for j := int64(0); j < m; j++ {
		t.baby[string(g.Marshal(cur))] = j
		cur = g.Combine(cur, base)
	}
	t.giant = g.Invert(g.ScalarMul(base, big.NewInt(m)))
}

func (t *table) search(g group.Group, h group.Element) (int64, bool) {
	cur := h
	for i := int64(0); i <= t.steps; i++ {
		if j, ok := t.baby[string(g.Marshal(cur))]; ok {
			if x := i*t.m + j; x < t.limit {
				return x, true
			}
			return 0, false
		}
		cur = g.Combine(cur, t.giant)
	}
	return 0, false
}
