package lhe

import "errors"

// The errors below classify every failure the scheme can produce. All of
// them are final for the call that reports them: each operation is
// deterministic in its inputs, so retrying with the same inputs fails the
// same way.
var (
	// ErrDomain reports a plaintext outside [0, Bound) at encryption time.
	ErrDomain = errors.New("lhe: plaintext outside message domain")

	// ErrDecode reports a failed discrete-log recovery: the underlying
	// value overflowed the bound, the wrong key was used, or the
	// ciphertext is corrupted. It is never silently clamped.
	ErrDecode = errors.New("lhe: discrete log not found within bound")

	// ErrLevelExceeded reports an operation beyond the supported
	// homomorphic degree, or on operands of mismatched levels.
	ErrLevelExceeded = errors.New("lhe: operation exceeds supported homomorphic level")

	// ErrCorrectionMismatch reports a boosted decryption whose unblinding
	// left a residual outside the message domain, which signals a
	// malformed or tampered level-4 ciphertext.
	ErrCorrectionMismatch = errors.New("lhe: boosted decryption correction out of range")

	// ErrEntropy reports an unavailable randomness source during key or
	// ciphertext generation.
	ErrEntropy = errors.New("lhe: randomness source unavailable")
)
