package conv

// UtoaPad writes base-10 representation of n into buf, left-padded with '0'
// to at least width digits, and returns the used slice. buf should be length
// >= max(width, 20).
func UtoaPad(buf []byte, n uint64, width int) []byte {
	s := Utoa(buf, n)
	for len(s) < width {
		i := len(buf) - len(s) - 1
		if i < 0 {
			break
		}
		buf[i] = '0'
		s = buf[i:]
	}
	return s
}
