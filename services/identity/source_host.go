//go:build !rp2040 && !rp2350

package identity

import (
	"hash/fnv"
	"os"
)

// Source yields the 64-bit hardware-unique value. The host default hashes
// the hostname so simulators keep a stable identity across runs; tests may
// override it before the first Get.
var Source = func() uint64 {
	name, err := os.Hostname()
	if err != nil {
		name = "barrique-host"
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}
