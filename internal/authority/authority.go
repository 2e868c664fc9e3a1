// Package authority implements the key-holder service. It generates key
// material on request, hands out the public and evaluation keys, keeps
// the secret key in memory only, and decrypts ciphertexts submitted by
// authorized clients.
package authority

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nthparty/lhe"
	"github.com/nthparty/lhe/internal/common"
)

type keyRecord struct {
	sk *lhe.SecretKey
	pk *lhe.PublicKey
	ek *lhe.EvaluationKey
}

// Authority owns generated key pairs, indexed by key id. Secret keys
// never leave the process; only public and evaluation key bytes are
// served.
type Authority struct {
	scheme *lhe.Scheme
	logger *common.Logger

	mu   sync.RWMutex
	keys map[uuid.UUID]*keyRecord
}

func NewAuthority(scheme *lhe.Scheme, logger *common.Logger) *Authority {
	return &Authority{
		scheme: scheme,
		logger: common.GetLogger("authority", logger),
		keys:   make(map[uuid.UUID]*keyRecord),
	}
}

// GenerateKeys creates a key triple and stores it under a fresh id.
func (a *Authority) GenerateKeys() (uuid.UUID, *keyRecord, error) {
	sk, pk, ek, err := a.scheme.KeyGen()
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	record := &keyRecord{sk: sk, pk: pk, ek: ek}

	a.mu.Lock()
	a.keys[id] = record
	a.mu.Unlock()

	a.logger.Info("generated key pair %s", id)
	return id, record, nil
}

// Decrypt recovers the plaintext of a serialized ciphertext under the
// identified key.
func (a *Authority) Decrypt(id uuid.UUID, ctBytes []byte) (string, error) {
	a.mu.RLock()
	record, ok := a.keys[id]
	a.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown key id %s", id)
	}

	ct, err := a.scheme.UnmarshalCiphertext(ctBytes)
	if err != nil {
		return "", err
	}
	pt, err := a.scheme.Decrypt(record.sk, record.ek, ct)
	if err != nil {
		return "", err
	}
	return pt.String(), nil
}
