//go:build rp2040 || rp2350

package identity

import "machine"

// Source yields the 64-bit hardware-unique value from the flash chip's
// unique ID.
var Source = func() uint64 {
	id := machine.DeviceID()
	var v uint64
	for i := 0; i < len(id) && i < 8; i++ {
		v = v<<8 | uint64(id[i])
	}
	return v
}
