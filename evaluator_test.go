package lhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddRejectsMismatchedLevels(t *testing.T) {
	kit := newTestKit(t)

	fresh := kit.encrypt(t, 1)
	paired, err := kit.eval.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.NoError(t, err)

	_, err = kit.eval.Add(fresh, paired)
	require.ErrorIs(t, err, ErrLevelExceeded)
}

func TestMultiplyRejectsPairedOperands(t *testing.T) {
	kit := newTestKit(t)

	paired, err := kit.eval.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.NoError(t, err)

	_, err = kit.eval.Multiply(paired, paired)
	require.ErrorIs(t, err, ErrLevelExceeded)

	_, err = kit.eval.Multiply(paired, kit.encrypt(t, 1))
	require.ErrorIs(t, err, ErrLevelExceeded)
}

func TestBoostedMultiplyRejectsFreshOperands(t *testing.T) {
	kit := newTestKit(t)

	_, err := kit.eval.BoostedMultiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.ErrorIs(t, err, ErrLevelExceeded)
}

func TestBoostedMultiplyRejectsBoostedOperands(t *testing.T) {
	kit := newTestKit(t)

	p, err := kit.eval.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.NoError(t, err)
	boosted, err := kit.eval.BoostedMultiply(p, p)
	require.NoError(t, err)

	// degree 4 is the ceiling
	_, err = kit.eval.BoostedMultiply(boosted, boosted)
	require.ErrorIs(t, err, ErrLevelExceeded)
}

func TestLiftRejectsBoosted(t *testing.T) {
	kit := newTestKit(t)

	p, err := kit.eval.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.NoError(t, err)
	boosted, err := kit.eval.BoostedMultiply(p, p)
	require.NoError(t, err)

	_, err = kit.eval.Lift(boosted)
	require.ErrorIs(t, err, ErrLevelExceeded)
}

func TestBoostedMultiplyWithoutEvaluationKey(t *testing.T) {
	kit := newTestKit(t)
	bare := kit.scheme.NewEvaluator(nil)

	p, err := bare.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.NoError(t, err)
	_, err = bare.BoostedMultiply(p, p)
	require.Error(t, err)
}

// Both source-group halves of a fresh ciphertext must encode the same
// plaintext: multiplying by an encryption of one from either side yields
// the original value.
func TestDualEncodingConsistency(t *testing.T) {
	kit := newTestKit(t)

	x := kit.encrypt(t, 123)
	one := kit.encrypt(t, 1)

	left, err := kit.eval.Multiply(x, one) // uses x's G1 half
	require.NoError(t, err)
	require.Equal(t, int64(123), kit.decrypt(t, left))

	right, err := kit.eval.Multiply(one, x) // uses x's G2 half
	require.NoError(t, err)
	require.Equal(t, int64(123), kit.decrypt(t, right))
}
