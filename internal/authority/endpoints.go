package authority

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nthparty/lhe"
	"github.com/nthparty/lhe/internal/common"
)

// Endpoints returns the routed surface of the authority service.
func (a *Authority) Endpoints() []common.Endpoint {
	return []common.Endpoint{
		{Method: "POST", Path: "/keys", Function: a.generateKeysEndpoint},
		{Method: "POST", Path: "/keys/:id/decrypt", Function: a.decryptEndpoint},
	}
}

// generateKeysEndpoint creates a key pair and returns its id together
// with the serialized public material.
// @endpoint /keys [POST]
func (a *Authority) generateKeysEndpoint(c *gin.Context) (common.ResponseType, int, any) {
	id, record, err := a.GenerateKeys()
	if err != nil {
		return common.ErrorResponse, http.StatusInternalServerError, err
	}

	return common.JSONResponse, http.StatusCreated, gin.H{
		"id":            id.String(),
		"publicKey":     common.EncodeBytes(a.scheme.MarshalPublicKey(record.pk)),
		"evaluationKey": common.EncodeBytes(a.scheme.MarshalEvaluationKey(record.ek)),
	}
}

// decryptEndpoint decrypts a submitted ciphertext under the identified
// key and returns the plaintext as a decimal string.
// @endpoint /keys/:id/decrypt [POST]
func (a *Authority) decryptEndpoint(c *gin.Context) (common.ResponseType, int, any) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}

	var body struct {
		Ciphertext string `json:"ciphertext"`
	}
	if err := c.BindJSON(&body); err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}
	ctBytes, err := common.DecodeBytes(body.Ciphertext)
	if err != nil {
		return common.ErrorResponse, http.StatusBadRequest, err
	}

	plaintext, err := a.Decrypt(id, ctBytes)
	if err != nil {
		switch {
		case errors.Is(err, lhe.ErrDecode), errors.Is(err, lhe.ErrCorrectionMismatch):
			return common.ErrorResponse, http.StatusUnprocessableEntity, err
		default:
			return common.ErrorResponse, http.StatusBadRequest, err
		}
	}

	return common.JSONResponse, http.StatusOK, gin.H{"plaintext": plaintext}
}
