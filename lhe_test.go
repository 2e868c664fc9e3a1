package lhe

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// testBound keeps discrete-log searches fast in tests.
const testBound = 1 << 10

type testKit struct {
	scheme *Scheme
	sk     *SecretKey
	pk     *PublicKey
	ek     *EvaluationKey
	eval   *Evaluator
}

func newTestKit(t *testing.T) *testKit {
	t.Helper()
	scheme := NewScheme(NewParams(big.NewInt(testBound)))
	sk, pk, ek, err := scheme.KeyGen()
	require.NoError(t, err)
	return &testKit{
		scheme: scheme,
		sk:     sk,
		pk:     pk,
		ek:     ek,
		eval:   scheme.NewEvaluator(ek),
	}
}

func (k *testKit) encrypt(t *testing.T, m int64) *Ciphertext {
	t.Helper()
	ct, err := k.scheme.Encrypt(k.pk, big.NewInt(m))
	require.NoError(t, err)
	return ct
}

func (k *testKit) decrypt(t *testing.T, ct *Ciphertext) int64 {
	t.Helper()
	pt, err := k.scheme.Decrypt(k.sk, k.ek, ct)
	require.NoError(t, err)
	return pt.Int64()
}
