// Package crypto exposes the few primitives the browser front end needs.
//
// Contents
//
//   - Authenticated sealing of small values for cookies (Sealer), using
//     XChaCha20-Poly1305 with a key derived from a secret by HKDF-SHA256
//   - Best-effort memory wiping for key material (Wipe)
//   - Short fingerprints of identifiers for logs (Fingerprint)
//   - URL-safe base64 helpers (B64URL, FromB64URL)
//
// # Notes
//
// Sealed values are bound to a purpose string passed as associated data, so a
// value sealed for one cookie cannot be replayed as another.
package crypto
