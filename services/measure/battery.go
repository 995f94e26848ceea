package measure

// battMilliV converts a 16-bit ADC reading of the battery rail, taken
// through the board's 2:1 divider against the 3.3 V reference, to
// millivolts. The doubling happens before the divide so the divider does
// not cost a millivolt of truncation; the product fits in uint32.
func battMilliV(raw uint16) uint16 {
	return uint16(uint32(raw) * 2 * 3300 / 65535)
}
