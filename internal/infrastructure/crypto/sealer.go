package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gtank/cryptopasta"
)

// MinKeyLength is the shortest accepted encryption or signing key.
const MinKeyLength = 32

var (
	ErrKeyTooShort      = errors.New("key too short, want at least 32 chars")
	ErrMalformedPayload = errors.New("sealed payload is malformed")
	ErrSignatureInvalid = errors.New("signature validation failed")
)

// Sealer encrypts with AES-GCM and signs the ciphertext with HMAC-SHA512/256.
// Sealed payloads are "<ciphertext>.<signature>", both base64 raw URL encoded.
type Sealer struct {
	key *[32]byte
	sig *[32]byte
}

// NewSealer builds a Sealer from two secrets of at least MinKeyLength characters.
func NewSealer(key, sig string) (*Sealer, error) {
	rawKey, err := toKey(key)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	rawSig, err := toKey(sig)
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}
	return &Sealer{key: rawKey, sig: rawSig}, nil
}

// Seal encrypts and signs plaintext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	cyphertext, err := cryptopasta.Encrypt(plaintext, s.key)
	if err != nil {
		return nil, err
	}
	signature := cryptopasta.GenerateHMAC(cyphertext, s.sig)

	encoded := base64.RawURLEncoding.EncodeToString(cyphertext) + "." +
		base64.RawURLEncoding.EncodeToString(signature)
	return []byte(encoded), nil
}

// Open checks the signature and decrypts a payload produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	bits := strings.SplitN(string(sealed), ".", 2)
	if len(bits) != 2 {
		return nil, ErrMalformedPayload
	}

	cyphertext, err := base64.RawURLEncoding.DecodeString(bits[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	signature, err := base64.RawURLEncoding.DecodeString(bits[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if !cryptopasta.CheckHMAC(cyphertext, signature, s.sig) {
		return nil, ErrSignatureInvalid
	}

	return cryptopasta.Decrypt(cyphertext, s.key)
}

// toKey uses the first 32 bytes of s.
func toKey(s string) (*[32]byte, error) {
	if len(s) < MinKeyLength {
		return nil, ErrKeyTooShort
	}
	data := &[32]byte{}
	copy(data[:], s)
	return data, nil
}
