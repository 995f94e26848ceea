//go:build rp2040 || rp2350

package update

import (
	"machine"

	"barrique-go/errcode"
	"barrique-go/types"
	"barrique-go/x/mathx"
)

// rp2Flasher stages the incoming image into the upper half of on-board
// flash. The staged area only becomes bootable after Commit writes the
// trailer the stage-2 bootloader checks; an aborted or incomplete stage is
// never picked up. The trailer lives in its own erase block (see layout.go)
// so credential rewrites cannot clobber it.
const stageTrailerMagic uint32 = 0x42525155 // "BRQU"

type rp2Flasher struct {
	busy bool
}

// NewPlatformFlasher returns the flash transaction backend.
func NewPlatformFlasher() types.Flasher { return &rp2Flasher{} }

func stageBase() int64 { return machine.Flash.Size() / 2 }

func (f *rp2Flasher) Begin(size int64) (types.WriteRegion, error) {
	if f.busy {
		return nil, errcode.FlashBusy
	}
	if size > stageLimit(machine.Flash.Size(), machine.Flash.EraseBlockSize()) {
		return nil, &errcode.E{C: errcode.FlashBusy, Op: "begin", Msg: "image too large"}
	}
	blocks := (size + machine.Flash.EraseBlockSize() - 1) / machine.Flash.EraseBlockSize()
	if err := machine.Flash.EraseBlocks(stageBase()/machine.Flash.EraseBlockSize(), blocks); err != nil {
		return nil, err
	}
	f.busy = true
	return &rp2Region{f: f, size: size}, nil
}

type rp2Region struct {
	f       *rp2Flasher
	size    int64
	written int64
	sum     uint32
	closed  bool
}

func (r *rp2Region) Write(p []byte) (int, error) {
	if r.closed {
		return 0, errcode.FlashBusy
	}
	n, err := machine.Flash.WriteAt(p, stageBase()+r.written)
	for i := 0; i < n; i++ {
		r.sum = r.sum*31 + uint32(p[i])
	}
	r.written += int64(n)
	return n, err
}

func (r *rp2Region) Abort() {
	r.closed = true
	r.f.busy = false
}

// Commit re-reads the staged bytes, verifies the running checksum, then
// erases the trailer block and writes the boot trailer.
func (r *rp2Region) Commit() error {
	defer func() { r.closed = true; r.f.busy = false }()
	if r.written != r.size {
		return errcode.SizeMismatch
	}
	var sum uint32
	buf := make([]byte, 256)
	for off := int64(0); off < r.size; {
		n := mathx.Min(int64(len(buf)), r.size-off)
		if _, err := machine.Flash.ReadAt(buf[:n], stageBase()+off); err != nil {
			return err
		}
		for i := int64(0); i < n; i++ {
			sum = sum*31 + uint32(buf[i])
		}
		off += n
	}
	if sum != r.sum {
		return errcode.VerifyFailed
	}
	trailer := []byte{
		byte(stageTrailerMagic), byte(stageTrailerMagic >> 8),
		byte(stageTrailerMagic >> 16), byte(stageTrailerMagic >> 24),
		byte(r.size), byte(r.size >> 8), byte(r.size >> 16), byte(r.size >> 24),
	}
	eb := machine.Flash.EraseBlockSize()
	tr := trailerOffset(machine.Flash.Size(), eb)
	if err := machine.Flash.EraseBlocks(tr/eb, 1); err != nil {
		return err
	}
	_, err := machine.Flash.WriteAt(trailer, tr)
	return err
}
