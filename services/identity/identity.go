package identity

import (
	"sync"

	"barrique-go/x/conv"
)

// The node identity is a 9-digit decimal string derived from the 64-bit
// hardware-unique value. Same hardware, same identity, every boot.

const apPrefix = "Barrique-"

var (
	once   sync.Once
	cached string
)

// Get returns the node identity, derived once and cached for the process
// lifetime.
func Get() string {
	once.Do(func() { cached = Derive(Source()) })
	return cached
}

// Derive folds the 64-bit hardware value into a 9-digit decimal string.
// The two 32-bit halves are recombined with the high half shifted back to
// bit 32, so the fold is lossless, then reduced modulo 1e9 and zero-padded.
func Derive(hw uint64) string {
	hi := uint32(hw >> 32)
	lo := uint32(hw)
	mixed := uint64(hi)<<32 ^ uint64(lo)
	n := mixed % 1_000_000_000
	var buf [20]byte
	return string(conv.UtoaPad(buf[:], n, 9))
}

// APName is the provisioning access point name for an identity.
func APName(id string) string { return apPrefix + id }
