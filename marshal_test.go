package lhe

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecretKeyRoundTrip(t *testing.T) {
	kit := newTestKit(t)

	raw := kit.scheme.MarshalSecretKey(kit.sk)
	require.Len(t, raw, 32)

	back, err := kit.scheme.UnmarshalSecretKey(raw)
	require.NoError(t, err)
	require.Zero(t, kit.sk.S.Cmp(back.S))
}

func TestPublicKeyRoundTrip(t *testing.T) {
	kit := newTestKit(t)

	back, err := kit.scheme.UnmarshalPublicKey(kit.scheme.MarshalPublicKey(kit.pk))
	require.NoError(t, err)

	// the restored key must encrypt values the original secret decrypts
	ct, err := kit.scheme.Encrypt(back, big.NewInt(77))
	require.NoError(t, err)
	require.Equal(t, int64(77), kit.decrypt(t, ct))
}

func TestEvaluationKeyRoundTrip(t *testing.T) {
	kit := newTestKit(t)

	back, err := kit.scheme.UnmarshalEvaluationKey(kit.scheme.MarshalEvaluationKey(kit.ek))
	require.NoError(t, err)

	p1, err := kit.eval.Multiply(kit.encrypt(t, 3), kit.encrypt(t, 7))
	require.NoError(t, err)
	p2, err := kit.eval.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 5))
	require.NoError(t, err)

	boosted, err := kit.scheme.NewEvaluator(back).BoostedMultiply(p1, p2)
	require.NoError(t, err)
	require.Equal(t, int64(210), kit.decrypt(t, boosted))
}

func TestCiphertextRoundTripAllLevels(t *testing.T) {
	kit := newTestKit(t)

	fresh := kit.encrypt(t, 9)
	paired, err := kit.eval.Multiply(kit.encrypt(t, 4), kit.encrypt(t, 6))
	require.NoError(t, err)
	boosted, err := kit.eval.BoostedMultiply(paired, paired)
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		ct   *Ciphertext
		want int64
	}{
		{"level1", fresh, 9},
		{"level2", paired, 24},
		{"level4", boosted, 576},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := kit.scheme.MarshalCiphertext(tc.ct)
			require.NoError(t, err)

			back, err := kit.scheme.UnmarshalCiphertext(raw)
			require.NoError(t, err)
			require.Equal(t, tc.ct.Level, back.Level)
			require.Equal(t, tc.want, kit.decrypt(t, back))
		})
	}
}

func TestUnmarshalCiphertextRejectsTagMismatch(t *testing.T) {
	kit := newTestKit(t)

	raw, err := kit.scheme.MarshalCiphertext(kit.encrypt(t, 9))
	require.NoError(t, err)

	// a level-1 body under a level-2 tag has the wrong length
	raw[0] = 0x02
	_, err = kit.scheme.UnmarshalCiphertext(raw)
	require.Error(t, err)

	raw[0] = 0xff
	_, err = kit.scheme.UnmarshalCiphertext(raw)
	require.Error(t, err)

	_, err = kit.scheme.UnmarshalCiphertext(nil)
	require.Error(t, err)
}

func TestUnmarshalBoostedRejectsTruncatedPairs(t *testing.T) {
	kit := newTestKit(t)

	paired, err := kit.eval.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.NoError(t, err)
	boosted, err := kit.eval.BoostedMultiply(paired, paired)
	require.NoError(t, err)

	raw, err := kit.scheme.MarshalCiphertext(boosted)
	require.NoError(t, err)

	_, err = kit.scheme.UnmarshalCiphertext(raw[:len(raw)-7])
	require.Error(t, err)
}

func TestNegativeCoefficientRoundTrip(t *testing.T) {
	kit := newTestKit(t)

	paired, err := kit.eval.Multiply(kit.encrypt(t, 2), kit.encrypt(t, 3))
	require.NoError(t, err)
	boosted, err := kit.eval.BoostedMultiply(paired, paired)
	require.NoError(t, err)

	scaled, err := kit.eval.ScalarMul(boosted, big.NewInt(-2))
	require.NoError(t, err)

	raw, err := kit.scheme.MarshalCiphertext(scaled)
	require.NoError(t, err)
	back, err := kit.scheme.UnmarshalCiphertext(raw)
	require.NoError(t, err)
	require.Zero(t, big.NewInt(-2).Cmp(back.Boosted.Pairs[0].K))
}
