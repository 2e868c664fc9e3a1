package evaluator

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nthparty/lhe"
	"github.com/nthparty/lhe/internal/common"
)

type testEnv struct {
	scheme *lhe.Scheme
	sk     *lhe.SecretKey
	ek     *lhe.EvaluationKey
	pk     *lhe.PublicKey
	router *gin.Engine
	sess   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scheme := lhe.NewScheme(lhe.NewParams(big.NewInt(1 << 10)))
	sk, pk, ek, err := scheme.KeyGen()
	require.NoError(t, err)

	logger := common.GetDiscardLogger()
	server := common.NewHttpServer("", logger, NewServer(scheme, logger).Endpoints())
	env := &testEnv{scheme: scheme, sk: sk, pk: pk, ek: ek, router: server.Router()}

	resp := env.post(t, "/sessions", gin.H{
		"publicKey":     common.EncodeBytes(scheme.MarshalPublicKey(pk)),
		"evaluationKey": common.EncodeBytes(scheme.MarshalEvaluationKey(ek)),
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	env.sess = decodeField(t, resp, "id")
	return env
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) encrypt(t *testing.T, m int64) string {
	t.Helper()
	ct, err := e.scheme.Encrypt(e.pk, big.NewInt(m))
	require.NoError(t, err)
	raw, err := e.scheme.MarshalCiphertext(ct)
	require.NoError(t, err)
	return common.EncodeBytes(raw)
}

func (e *testEnv) decrypt(t *testing.T, encoded string) int64 {
	t.Helper()
	raw, err := common.DecodeBytes(encoded)
	require.NoError(t, err)
	ct, err := e.scheme.UnmarshalCiphertext(raw)
	require.NoError(t, err)
	pt, err := e.scheme.Decrypt(e.sk, e.ek, ct)
	require.NoError(t, err)
	return pt.Int64()
}

func decodeField(t *testing.T, resp *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Contains(t, body, field)
	return body[field]
}

func TestEncryptEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/sessions/"+env.sess+"/encrypt", gin.H{"m": "42"})
	require.Equal(t, http.StatusOK, resp.Code)
	remote := decodeField(t, resp, "result")
	require.Equal(t, int64(42), env.decrypt(t, remote))

	// service-encrypted inputs combine with locally encrypted ones
	resp = env.post(t, "/sessions/"+env.sess+"/add", gin.H{
		"x": remote,
		"y": env.encrypt(t, 8),
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, int64(50), env.decrypt(t, decodeField(t, resp, "result")))
}

func TestEncryptDomainViolationMapsToUnprocessable(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/sessions/"+env.sess+"/encrypt", gin.H{"m": "1024"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = env.post(t, "/sessions/"+env.sess+"/encrypt", gin.H{"m": "-1"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = env.post(t, "/sessions/"+env.sess+"/encrypt", gin.H{"m": "not-a-number"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAddEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/sessions/"+env.sess+"/add", gin.H{
		"x": env.encrypt(t, 100),
		"y": env.encrypt(t, 23),
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, int64(123), env.decrypt(t, decodeField(t, resp, "result")))
}

func TestMultiplyAndBoostEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/sessions/"+env.sess+"/multiply", gin.H{
		"x": env.encrypt(t, 3),
		"y": env.encrypt(t, 7),
	})
	require.Equal(t, http.StatusOK, resp.Code)
	p1 := decodeField(t, resp, "result")
	require.Equal(t, int64(21), env.decrypt(t, p1))

	resp = env.post(t, "/sessions/"+env.sess+"/multiply", gin.H{
		"x": env.encrypt(t, 2),
		"y": env.encrypt(t, 5),
	})
	require.Equal(t, http.StatusOK, resp.Code)
	p2 := decodeField(t, resp, "result")

	resp = env.post(t, "/sessions/"+env.sess+"/boosted-multiply", gin.H{"x": p1, "y": p2})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, int64(210), env.decrypt(t, decodeField(t, resp, "result")))
}

func TestScalarMultiplyEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/sessions/"+env.sess+"/scalar-multiply", gin.H{
		"x": env.encrypt(t, 11),
		"k": "9",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, int64(99), env.decrypt(t, decodeField(t, resp, "result")))
}

func TestLevelViolationMapsToUnprocessable(t *testing.T) {
	env := newTestEnv(t)

	// boosted multiplication of two fresh ciphertexts is undefined
	resp := env.post(t, "/sessions/"+env.sess+"/boosted-multiply", gin.H{
		"x": env.encrypt(t, 3),
		"y": env.encrypt(t, 7),
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestMalformedCiphertextMapsToBadRequest(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/sessions/"+env.sess+"/add", gin.H{
		"x": common.EncodeBytes([]byte{0xff, 0x01, 0x02}),
		"y": env.encrypt(t, 1),
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUnknownSessionMapsToNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/sessions/00000000-0000-0000-0000-000000000000/add", gin.H{
		"x": env.encrypt(t, 1),
		"y": env.encrypt(t, 2),
	})
	require.Equal(t, http.StatusNotFound, resp.Code)
}
