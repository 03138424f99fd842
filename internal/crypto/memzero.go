package crypto

import "runtime"

// Wipe zeroes every buffer in bufs once a secret or derived key is no longer
// needed. Copies the runtime made elsewhere are not reached.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
	runtime.KeepAlive(bufs)
}
