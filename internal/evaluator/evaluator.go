// Package evaluator implements the untrusted evaluation service. It holds
// only public material: clients register a public and evaluation key as a
// session, then submit serialized ciphertexts for homomorphic
// combination. The service can never decrypt what it combines.
package evaluator

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nthparty/lhe"
	"github.com/nthparty/lhe/internal/common"
)

type session struct {
	pk   *lhe.PublicKey
	eval *lhe.Evaluator
}

// Server maps session ids to the evaluators bound to the registered
// evaluation keys.
type Server struct {
	scheme *lhe.Scheme
	logger *common.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func NewServer(scheme *lhe.Scheme, logger *common.Logger) *Server {
	return &Server{
		scheme:   scheme,
		logger:   common.GetLogger("evaluator", logger),
		sessions: make(map[uuid.UUID]*session),
	}
}

// Register opens a session for the given serialized public and evaluation
// keys and returns its id.
func (s *Server) Register(pkBytes, ekBytes []byte) (uuid.UUID, error) {
	pk, err := s.scheme.UnmarshalPublicKey(pkBytes)
	if err != nil {
		return uuid.Nil, err
	}
	ek, err := s.scheme.UnmarshalEvaluationKey(ekBytes)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &session{pk: pk, eval: s.scheme.NewEvaluator(ek)}
	s.mu.Unlock()

	s.logger.Info("registered session %s", id)
	return id, nil
}

func (s *Server) session(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session id %s", id)
	}
	return sess, nil
}
