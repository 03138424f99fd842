package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeyBytes is the size of the derived sealing key and of generated secrets.
	KeyBytes = chacha20poly1305.KeySize
	// MinSecretBytes is the shortest secret NewSealer accepts.
	MinSecretBytes = 16

	sealInfo = "billetera cookie seal v1"
)

var (
	// ErrShortSecret is returned when the sealing secret is too short.
	ErrShortSecret = errors.New("seal secret too short")
	// ErrUnseal is returned when a sealed value is malformed, forged, or was
	// sealed for a different purpose.
	ErrUnseal = errors.New("sealed value rejected")
)

// Sealer encrypts and authenticates short values.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a sealing key from secret.
func NewSealer(secret []byte) (*Sealer, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrShortSecret
	}
	key := make([]byte, KeyBytes)
	defer Wipe(key)

	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(sealInfo)), key); err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// RandomSecret returns KeyBytes of fresh randomness.
func RandomSecret() ([]byte, error) {
	b := make([]byte, KeyBytes)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Seal returns nonce||ciphertext of plaintext, bound to purpose, as URL-safe base64.
func (s *Sealer) Seal(purpose string, plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, plaintext, []byte(purpose))
	return B64URL(out), nil
}

// Open reverses Seal. Any tampering, truncation or purpose mismatch yields ErrUnseal.
func (s *Sealer) Open(purpose, sealed string) ([]byte, error) {
	raw, err := FromB64URL(sealed)
	if err != nil {
		return nil, ErrUnseal
	}
	ns := s.aead.NonceSize()
	if len(raw) < ns+s.aead.Overhead() {
		return nil, ErrUnseal
	}
	pt, err := s.aead.Open(nil, raw[:ns], raw[ns:], []byte(purpose))
	if err != nil {
		return nil, ErrUnseal
	}
	return pt, nil
}
