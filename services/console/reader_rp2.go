//go:build rp2040 || rp2350

package console

import (
	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// uartReader serves the console over UART0. Defaults inside uartx apply for
// the pin mux; the baud matches the field service cable.
type uartReader struct {
	u   *uartx.UART
	buf []byte
}

// NewPlatformReader configures UART0 for the console.
func NewPlatformReader() LineReader {
	hw := uartx.UART0
	_ = hw.Configure(uartx.UARTConfig{BaudRate: 115200})
	return &uartReader{u: hw, buf: make([]byte, 0, 128)}
}

func (r *uartReader) ReadLine() (string, error) {
	var one [1]byte
	for {
		n, err := r.u.Read(one[:])
		if err != nil {
			return "", err
		}
		if n == 0 {
			continue
		}
		c := one[0]
		if c == '\r' {
			continue
		}
		if c == '\n' {
			line := string(r.buf)
			r.buf = r.buf[:0]
			return line, nil
		}
		if len(r.buf) < cap(r.buf) {
			r.buf = append(r.buf, c)
		}
	}
}
