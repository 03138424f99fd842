package crypto

import "encoding/base64"

// B64URL returns unpadded URL-safe base64, suitable for cookie values.
func B64URL(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// FromB64URL decodes unpadded URL-safe base64.
func FromB64URL(s string) ([]byte, error) { return base64.RawURLEncoding.DecodeString(s) }
