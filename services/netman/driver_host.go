//go:build !rp2040 && !rp2350

package netman

import (
	"sync"

	"barrique-go/types"
)

// HostDevice is the network device for host builds. It behaves like a radio
// whose link comes up a configurable number of polls after a join; the
// simulator and tests drive it directly.
type HostDevice struct {
	mu sync.Mutex

	// Behaviour knobs.
	JoinErr   error // returned by Join
	JoinOK    bool  // whether a join ever brings the link up
	JoinPolls int   // Connected() calls before the link reports up
	RSSIVal   int16
	RSSIOK    bool

	// Provisioning portal behaviour.
	PortalCreds types.Credentials
	PortalOK    bool // portal eventually supplies credentials
	PortalPolls int  // PollCredentials calls before they appear

	// Observed state.
	LastJoin     types.Credentials
	APName       string
	Provisioning bool

	joined      bool
	polls       int
	portalPolls int
}

func (d *HostDevice) Join(c types.Credentials) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.JoinErr != nil {
		return d.JoinErr
	}
	d.LastJoin = c
	d.joined = true
	d.polls = 0
	return nil
}

func (d *HostDevice) Leave() {
	d.mu.Lock()
	d.joined = false
	d.mu.Unlock()
}

func (d *HostDevice) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.joined || !d.JoinOK {
		return false
	}
	if d.polls < d.JoinPolls {
		d.polls++
		return false
	}
	return true
}

func (d *HostDevice) RSSI() (int16, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.RSSIVal, d.RSSIOK
}

func (d *HostDevice) StartProvisioning(apName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.APName = apName
	d.Provisioning = true
	d.portalPolls = 0
	return nil
}

func (d *HostDevice) PollCredentials() (types.Credentials, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.Provisioning || !d.PortalOK {
		return types.Credentials{}, false
	}
	if d.portalPolls < d.PortalPolls {
		d.portalPolls++
		return types.Credentials{}, false
	}
	return d.PortalCreds, true
}

func (d *HostDevice) StopProvisioning() {
	d.mu.Lock()
	d.Provisioning = false
	d.mu.Unlock()
}

// MemStore is an in-memory credential store for host builds.
type MemStore struct {
	mu    sync.Mutex
	creds types.Credentials
	ok    bool
}

func (s *MemStore) Load() (types.Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, s.ok
}

func (s *MemStore) Store(c types.Credentials) error {
	s.mu.Lock()
	s.creds = c
	s.ok = true
	s.mu.Unlock()
	return nil
}

// Seed pre-loads stored credentials, as if a previous boot provisioned them.
func (s *MemStore) Seed(c types.Credentials) { _ = s.Store(c) }
