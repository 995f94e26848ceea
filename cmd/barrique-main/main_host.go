//go:build !rp2040 && !rp2350

package main

// Firmware entry point; build with tinygo for a pico-w class target.
// Host-side development uses cmd/node-sim instead.
func main() {
	println("barrique-main targets rp2040/rp2350; run cmd/node-sim on the host")
}
