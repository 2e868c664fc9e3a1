package lhe

import (
	"math/big"
	"testing"

	"github.com/fentec-project/gofe/data"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kit := newTestKit(t)
	for _, m := range []int64{0, 1, 2, 17, 500, testBound - 1} {
		require.Equal(t, m, kit.decrypt(t, kit.encrypt(t, m)))
	}
}

func TestEncryptRejectsOutOfDomain(t *testing.T) {
	kit := newTestKit(t)

	_, err := kit.scheme.Encrypt(kit.pk, big.NewInt(testBound))
	require.ErrorIs(t, err, ErrDomain)

	_, err = kit.scheme.Encrypt(kit.pk, big.NewInt(-1))
	require.ErrorIs(t, err, ErrDomain)
}

func TestAdditiveHomomorphism(t *testing.T) {
	kit := newTestKit(t)

	sum, err := kit.eval.Add(kit.encrypt(t, 120), kit.encrypt(t, 45))
	require.NoError(t, err)
	require.Equal(t, int64(165), kit.decrypt(t, sum))
}

func TestScalarHomomorphism(t *testing.T) {
	kit := newTestKit(t)

	scaled, err := kit.eval.ScalarMul(kit.encrypt(t, 21), big.NewInt(12))
	require.NoError(t, err)
	require.Equal(t, int64(252), kit.decrypt(t, scaled))
}

func TestDecryptOverflowFails(t *testing.T) {
	kit := newTestKit(t)

	// each addend is in range, the sum is not
	sum, err := kit.eval.Add(kit.encrypt(t, 600), kit.encrypt(t, 600))
	require.NoError(t, err)
	_, err = kit.scheme.Decrypt(kit.sk, kit.ek, sum)
	require.ErrorIs(t, err, ErrDecode)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	kit := newTestKit(t)
	other, _, _, err := kit.scheme.KeyGen()
	require.NoError(t, err)

	_, err = kit.scheme.Decrypt(other, kit.ek, kit.encrypt(t, 5))
	require.ErrorIs(t, err, ErrDecode)
}

func TestEncryptVector(t *testing.T) {
	kit := newTestKit(t)

	v := data.NewVector([]*big.Int{big.NewInt(3), big.NewInt(8), big.NewInt(2)})
	cts, err := kit.scheme.EncryptVector(kit.pk, v)
	require.NoError(t, err)
	require.Len(t, cts, 3)
	for i, ct := range cts {
		require.Equal(t, v[i].Int64(), kit.decrypt(t, ct))
	}
}

func TestInnerProduct(t *testing.T) {
	kit := newTestKit(t)

	v := data.NewVector([]*big.Int{big.NewInt(2), big.NewInt(1), big.NewInt(3)})
	weights := []*big.Int{big.NewInt(4), big.NewInt(2), big.NewInt(1)}

	cts, err := kit.scheme.EncryptVector(kit.pk, v)
	require.NoError(t, err)

	score, err := kit.eval.InnerProduct(cts, weights)
	require.NoError(t, err)
	require.Equal(t, int64(13), kit.decrypt(t, score))

	_, err = kit.eval.InnerProduct(cts, weights[:2])
	require.Error(t, err)
}
