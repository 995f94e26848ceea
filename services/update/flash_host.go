//go:build !rp2040 && !rp2350

package update

import (
	"errors"
	"sync"

	"barrique-go/types"
)

// HostFlasher is the write-region transaction fake for host builds and
// tests. It records exactly what the update manager did to it and keeps an
// image identity that only a committed-and-restarted install may change.
type HostFlasher struct {
	mu sync.Mutex

	BeginErr  error
	CommitErr error

	// ImageID stands in for the running image's identity; no operation in
	// this package changes it (the restart does, elsewhere).
	ImageID string

	Last *HostRegion // most recent transaction, nil before any Begin
}

type HostRegion struct {
	f *HostFlasher

	Size      int64
	Written   int64
	Aborted   bool
	Committed bool
	Data      []byte
}

func (f *HostFlasher) Begin(size int64) (types.WriteRegion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BeginErr != nil {
		return nil, f.BeginErr
	}
	r := &HostRegion{f: f, Size: size}
	f.Last = r
	return r, nil
}

func (r *HostRegion) Write(p []byte) (int, error) {
	if r.Aborted || r.Committed {
		return 0, errors.New("write on closed region")
	}
	r.Data = append(r.Data, p...)
	r.Written += int64(len(p))
	return len(p), nil
}

func (r *HostRegion) Abort() { r.Aborted = true }

func (r *HostRegion) Commit() error {
	if r.f.CommitErr != nil {
		return r.f.CommitErr
	}
	if r.Written != r.Size {
		return errors.New("staged image incomplete")
	}
	r.Committed = true
	return nil
}
