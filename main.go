package main

import (
	"time"

	"barrique-go/services/identity"
	"barrique-go/x/conv"
)

// Bring-up shim: prints the hardware value and the derived identity so a
// bench operator can label the unit. The real control loop lives in
// cmd/barrique-main.
func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	hw := identity.Source()
	var hi, lo [8]byte
	println("hw", string(conv.U32Hex(hi[:], uint32(hw>>32))), string(conv.U32Hex(lo[:], uint32(hw))))
	println("id", identity.Get())

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for range tick.C {
		println("alive", identity.Get())
	}
}
