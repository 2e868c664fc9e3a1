package common

import "encoding/base64"

// Serialized keys and ciphertexts cross the HTTP boundary as base64 of
// their stable byte encodings.

func EncodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeBytes(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
