package evaluator

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nthparty/lhe"
	"github.com/nthparty/lhe/internal/common"
)

// Endpoints returns the routed surface of the evaluation service.
func (s *Server) Endpoints() []common.Endpoint {
	return []common.Endpoint{
		{Method: "POST", Path: "/sessions", Function: s.registerEndpoint},
		{Method: "POST", Path: "/sessions/:id/encrypt", Function: s.encryptEndpoint},
		{Method: "POST", Path: "/sessions/:id/add", Function: s.binaryOpEndpoint(s.add)},
		{Method: "POST", Path: "/sessions/:id/multiply", Function: s.binaryOpEndpoint(s.multiply)},
		{Method: "POST", Path: "/sessions/:id/boosted-multiply", Function: s.binaryOpEndpoint(s.boostedMultiply)},
		{Method: "POST", Path: "/sessions/:id/lift", Function: s.liftEndpoint},
		{Method: "POST", Path: "/sessions/:id/scalar-multiply", Function: s.scalarMulEndpoint},
	}
}

// registerEndpoint opens an evaluation session for a key pair's public
// material.
// @endpoint /sessions [POST]
func (s *Server) registerEndpoint(c *gin.Context) (common.ResponseType, int, any) {
	var body struct {
		PublicKey     string `json:"publicKey"`
		EvaluationKey string `json:"evaluationKey"`
	}
	if err := c.BindJSON(&body); err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}

	pkBytes, err := common.DecodeBytes(body.PublicKey)
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	ekBytes, err := common.DecodeBytes(body.EvaluationKey)
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}

	id, err := s.Register(pkBytes, ekBytes)
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	return common.JSONResponse, http.StatusCreated, gin.H{"id": id.String()}
}

// encryptEndpoint encrypts a cleartext decimal under the session's
// public key, so clients without a local scheme instance can source
// level-1 inputs from the service. Plaintexts outside the message domain
// map to 422.
// @endpoint /sessions/:id/encrypt [POST]
func (s *Server) encryptEndpoint(c *gin.Context) (common.ResponseType, int, any) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	sess, err := s.session(id)
	if err != nil {
		return common.ErrorResponse, http.StatusNotFound, err
	}

	var body struct {
		M string `json:"m"`
	}
	if err := c.BindJSON(&body); err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	m, ok := new(big.Int).SetString(body.M, 10)
	if !ok {
		return common.ErrorResponse, http.StatusBadRequest, "plaintext is not a decimal integer"
	}

	ct, err := s.scheme.Encrypt(sess.pk, m)
	if err != nil {
		if errors.Is(err, lhe.ErrDomain) {
			return common.ErrorResponse, http.StatusUnprocessableEntity, err
		}
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	return s.ciphertextResponse(ct)
}

func (s *Server) add(sess *session, x, y *lhe.Ciphertext) (*lhe.Ciphertext, error) {
	return sess.eval.Add(x, y)
}

func (s *Server) multiply(sess *session, x, y *lhe.Ciphertext) (*lhe.Ciphertext, error) {
	return sess.eval.Multiply(x, y)
}

func (s *Server) boostedMultiply(sess *session, x, y *lhe.Ciphertext) (*lhe.Ciphertext, error) {
	return sess.eval.BoostedMultiply(x, y)
}

// binaryOpEndpoint decodes two ciphertext operands, applies op and
// returns the serialized result. Level violations map to 422: the request
// was well-formed but asks for a transition the scheme does not define.
func (s *Server) binaryOpEndpoint(op func(*session, *lhe.Ciphertext, *lhe.Ciphertext) (*lhe.Ciphertext, error)) func(c *gin.Context) (common.ResponseType, int, any) {
	return func(c *gin.Context) (common.ResponseType, int, any) {
		sess, x, y, errResp := s.parseBinaryRequest(c)
		if errResp != nil {
			return common.ErrorResponse, errResp.code, errResp.err
		}

		result, err := op(sess, x, y)
		if err != nil {
			if errors.Is(err, lhe.ErrLevelExceeded) {
				return common.ErrorResponse, http.StatusUnprocessableEntity, err
			}
			return common.ErrorResponse, http.StatusBadRequest, err
		}
		return s.ciphertextResponse(result)
	}
}

// liftEndpoint promotes a single ciphertext one level.
// @endpoint /sessions/:id/lift [POST]
func (s *Server) liftEndpoint(c *gin.Context) (common.ResponseType, int, any) {
	sess, x, errResp := s.parseUnaryRequest(c)
	if errResp != nil {
		return common.ErrorResponse, errResp.code, errResp.err
	}

	result, err := sess.eval.Lift(x)
	if err != nil {
		if errors.Is(err, lhe.ErrLevelExceeded) {
			return common.ErrorResponse, http.StatusUnprocessableEntity, err
		}
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	return s.ciphertextResponse(result)
}

// scalarMulEndpoint multiplies a ciphertext by a cleartext decimal
// scalar.
// @endpoint /sessions/:id/scalar-multiply [POST]
func (s *Server) scalarMulEndpoint(c *gin.Context) (common.ResponseType, int, any) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	sess, err := s.session(id)
	if err != nil {
		return common.ErrorResponse, http.StatusNotFound, err
	}

	var body struct {
		X string `json:"x"`
		K string `json:"k"`
	}
	if err := c.BindJSON(&body); err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}

	x, errResp := s.decodeCiphertext(body.X)
	if errResp != nil {
		return common.ErrorResponse, errResp.code, errResp.err
	}
	k, ok := new(big.Int).SetString(body.K, 10)
	if !ok {
		return common.ErrorResponse, http.StatusBadRequest, "scalar is not a decimal integer"
	}

	result, err := sess.eval.ScalarMul(x, k)
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	return s.ciphertextResponse(result)
}

type endpointError struct {
	code int
	err  error
}

func (s *Server) parseBinaryRequest(c *gin.Context) (*session, *lhe.Ciphertext, *lhe.Ciphertext, *endpointError) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, nil, nil, &endpointError{http.StatusBadRequest, err}
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, nil, nil, &endpointError{http.StatusNotFound, err}
	}

	var body struct {
		X string `json:"x"`
		Y string `json:"y"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, nil, nil, &endpointError{http.StatusBadRequest, err}
	}

	x, errResp := s.decodeCiphertext(body.X)
	if errResp != nil {
		return nil, nil, nil, errResp
	}
	y, errResp := s.decodeCiphertext(body.Y)
	if errResp != nil {
		return nil, nil, nil, errResp
	}
	return sess, x, y, nil
}

func (s *Server) parseUnaryRequest(c *gin.Context) (*session, *lhe.Ciphertext, *endpointError) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, nil, &endpointError{http.StatusBadRequest, err}
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, nil, &endpointError{http.StatusNotFound, err}
	}

	var body struct {
		X string `json:"x"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, nil, &endpointError{http.StatusBadRequest, err}
	}

	x, errResp := s.decodeCiphertext(body.X)
	if errResp != nil {
		return nil, nil, errResp
	}
	return sess, x, nil
}

func (s *Server) decodeCiphertext(encoded string) (*lhe.Ciphertext, *endpointError) {
	raw, err := common.DecodeBytes(encoded)
	if err != nil {
		return nil, &endpointError{http.StatusBadRequest, err}
	}
	ct, err := s.scheme.UnmarshalCiphertext(raw)
	if err != nil {
		return nil, &endpointError{http.StatusBadRequest, err}
	}
	return ct, nil
}

func (s *Server) ciphertextResponse(ct *lhe.Ciphertext) (common.ResponseType, int, any) {
	raw, err := s.scheme.MarshalCiphertext(ct)
	if err != nil {
		return common.ErrorResponse, http.StatusInternalServerError, err
	}
	return common.JSONResponse, http.StatusOK, gin.H{"result": common.EncodeBytes(raw)}
}
