//go:build rp2040 || rp2350

package netman

import (
	"machine"

	"barrique-go/errcode"
	"barrique-go/types"
)

// flashStore persists credentials in the last erase block of on-board
// flash, after the image area. Layout: magic, ssid len, pass len, ssid,
// pass.
const credMagic = 0xB4

type flashStore struct{}

// NewPlatformStore returns the credential store backed by on-board flash.
func NewPlatformStore() types.CredentialStore { return flashStore{} }

func (flashStore) offset() int64 {
	return machine.Flash.Size() - machine.Flash.EraseBlockSize()
}

func (s flashStore) Load() (types.Credentials, bool) {
	var hdr [3]byte
	if _, err := machine.Flash.ReadAt(hdr[:], s.offset()); err != nil {
		return types.Credentials{}, false
	}
	if hdr[0] != credMagic {
		return types.Credentials{}, false
	}
	sl, pl := int(hdr[1]), int(hdr[2])
	buf := make([]byte, sl+pl)
	if _, err := machine.Flash.ReadAt(buf, s.offset()+3); err != nil {
		return types.Credentials{}, false
	}
	return types.Credentials{
		SSID: string(buf[:sl]),
		Pass: string(buf[sl:]),
	}, true
}

func (s flashStore) Store(c types.Credentials) error {
	if len(c.SSID) > 255 || len(c.Pass) > 255 {
		return &errcode.E{C: errcode.Error, Op: "credstore", Msg: "credentials too long"}
	}
	blk := s.offset() / machine.Flash.EraseBlockSize()
	if err := machine.Flash.EraseBlocks(blk, 1); err != nil {
		return err
	}
	buf := make([]byte, 3+len(c.SSID)+len(c.Pass))
	buf[0] = credMagic
	buf[1] = byte(len(c.SSID))
	buf[2] = byte(len(c.Pass))
	copy(buf[3:], c.SSID)
	copy(buf[3+len(c.SSID):], c.Pass)
	_, err := machine.Flash.WriteAt(buf, s.offset())
	return err
}
