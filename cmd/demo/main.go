// The demo walks every homomorphic level in-process: sums and scalar
// products at level 1, one pairing multiplication to level 2, and a
// boosted multiplication to level 4, followed by a small private-scoring
// example over an encrypted feature vector.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/fentec-project/gofe/data"

	"github.com/nthparty/lhe"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	scheme := lhe.NewScheme(lhe.NewParams(big.NewInt(1000)))

	sk, pk, ek, err := scheme.KeyGen()
	if err != nil {
		return err
	}
	eval := scheme.NewEvaluator(ek)

	decrypt := func(label string, ct *lhe.Ciphertext) error {
		pt, err := scheme.Decrypt(sk, ek, ct)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		fmt.Printf("%-28s = %s\n", label, pt)
		return nil
	}

	encrypt := func(m int64) (*lhe.Ciphertext, error) {
		return scheme.Encrypt(pk, big.NewInt(m))
	}

	// level 2: 3*7 and 2*5
	m1, err := encrypt(3)
	if err != nil {
		return err
	}
	m2, err := encrypt(7)
	if err != nil {
		return err
	}
	m3, err := encrypt(2)
	if err != nil {
		return err
	}
	m4, err := encrypt(5)
	if err != nil {
		return err
	}

	p1, err := eval.Multiply(m1, m2)
	if err != nil {
		return err
	}
	if err := decrypt("3 * 7", p1); err != nil {
		return err
	}

	p2, err := eval.Multiply(m3, m4)
	if err != nil {
		return err
	}
	if err := decrypt("2 * 5", p2); err != nil {
		return err
	}

	// level 4: (3*7) * (2*5)
	boosted, err := eval.BoostedMultiply(p1, p2)
	if err != nil {
		return err
	}
	if err := decrypt("(3 * 7) * (2 * 5)", boosted); err != nil {
		return err
	}

	// private scoring: the evaluator combines encrypted features with
	// cleartext weights, then squares the score with one boosted step.
	features := data.NewVector([]*big.Int{big.NewInt(2), big.NewInt(1), big.NewInt(3)})
	weights := []*big.Int{big.NewInt(4), big.NewInt(2), big.NewInt(1)}

	cts, err := scheme.EncryptVector(pk, features)
	if err != nil {
		return err
	}
	score, err := eval.InnerProduct(cts, weights)
	if err != nil {
		return err
	}
	if err := decrypt("<features, weights>", score); err != nil {
		return err
	}

	lifted, err := eval.Lift(score)
	if err != nil {
		return err
	}
	squared, err := eval.BoostedMultiply(lifted, lifted)
	if err != nil {
		return err
	}
	return decrypt("<features, weights>^2", squared)
}
