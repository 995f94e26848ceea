//go:build !rp2040 && !rp2350

package console

import (
	"bufio"
	"os"
	"strings"
)

// StdinReader serves the console from standard input on host builds.
type StdinReader struct {
	r *bufio.Reader
}

func NewStdinReader() *StdinReader {
	return &StdinReader{r: bufio.NewReader(os.Stdin)}
}

func (s *StdinReader) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
