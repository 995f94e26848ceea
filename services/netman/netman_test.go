package netman

import (
	"errors"
	"testing"

	"barrique-go/types"
)

// fakeClock advances virtual time on every sleep, so the 30 s / 180 s
// windows run instantly.
type fakeClock struct {
	ms     uint32
	slept  uint32
	sleeps int
}

func (c *fakeClock) now() uint32 { return c.ms }
func (c *fakeClock) sleep(ms uint32) {
	c.ms += ms
	c.slept += ms
	c.sleeps++
}

func newTestManager(dev types.NetDevice, store types.CredentialStore) (*Manager, *fakeClock) {
	m := New(dev, store, "123456789", nil)
	clk := &fakeClock{}
	m.SetClock(clk.now, clk.sleep)
	return m, clk
}

func TestConnectWithStoredCredentials(t *testing.T) {
	dev := &HostDevice{JoinOK: true, JoinPolls: 3}
	store := &MemStore{}
	store.Seed(types.Credentials{SSID: "field", Pass: "secret"})

	m, _ := newTestManager(dev, store)
	if !m.Connect() {
		t.Fatal("expected connect to succeed with stored credentials")
	}
	if dev.LastJoin.SSID != "field" {
		t.Fatalf("joined with %q, want stored SSID", dev.LastJoin.SSID)
	}
	if dev.Provisioning || dev.APName != "" {
		t.Fatal("provisioning must not start when stored credentials work")
	}
	if !m.IsConnected() {
		t.Fatal("IsConnected() = false after successful connect")
	}
}

func TestConnectFallsBackToProvisioning(t *testing.T) {
	// No stored credentials; the portal supplies some after a few polls.
	dev := &HostDevice{
		JoinOK:      true,
		PortalOK:    true,
		PortalPolls: 2,
		PortalCreds: types.Credentials{SSID: "new-net", Pass: "pw"},
	}
	store := &MemStore{}

	m, _ := newTestManager(dev, store)
	if !m.Connect() {
		t.Fatal("expected provisioning to succeed")
	}
	if dev.APName != "Barrique-123456789" {
		t.Fatalf("AP name = %q", dev.APName)
	}
	if dev.Provisioning {
		t.Fatal("provisioning AP left up after success")
	}
	// New credentials persisted for the next boot.
	if c, ok := store.Load(); !ok || c.SSID != "new-net" {
		t.Fatalf("credentials not persisted: %v %v", c, ok)
	}
}

func TestConnectGivesUpAfterProvisionWindow(t *testing.T) {
	dev := &HostDevice{JoinOK: true} // no stored creds, portal never delivers
	m, clk := newTestManager(dev, &MemStore{})

	if m.Connect() {
		t.Fatal("expected connect to fail")
	}
	if clk.slept < 180_000 {
		t.Fatalf("gave up after %d ms, want full 180 s window", clk.slept)
	}
	if dev.Provisioning {
		t.Fatal("provisioning AP left up after timeout")
	}
	if m.IsConnected() {
		t.Fatal("IsConnected() = true with no link")
	}
}

func TestStoredJoinTimesOutThenProvisions(t *testing.T) {
	// Stored credentials never bring the link up within the reuse window;
	// the portal then rescues the cycle.
	dev := &HostDevice{
		JoinOK:      false,
		PortalOK:    true,
		PortalCreds: types.Credentials{SSID: "rescue", Pass: "pw"},
	}
	store := &MemStore{}
	store.Seed(types.Credentials{SSID: "stale", Pass: "old"})

	dev.PortalPolls = 1
	m, clk := newTestManager(dev, store)

	if m.Connect() {
		t.Fatal("join cannot come up while the radio refuses to associate")
	}
	if dev.APName != "Barrique-123456789" {
		t.Fatal("provisioning was not attempted after the stored window")
	}
	// Stored window plus the rescue join's window were both honoured.
	if clk.slept < 60_000 {
		t.Fatalf("windows not honoured: slept %d ms", clk.slept)
	}
}

func TestSignalStrengthSentinel(t *testing.T) {
	dev := &HostDevice{JoinOK: true, RSSIVal: -67, RSSIOK: true}
	store := &MemStore{}
	store.Seed(types.Credentials{SSID: "s", Pass: "p"})
	m, _ := newTestManager(dev, store)

	if got := m.SignalStrength(); got != types.RSSIUnknown {
		t.Fatalf("RSSI before connect = %d, want sentinel", got)
	}
	if !m.Connect() {
		t.Fatal("connect failed")
	}
	if got := m.SignalStrength(); got != -67 {
		t.Fatalf("RSSI = %d, want -67", got)
	}

	dev.RSSIOK = false
	if got := m.SignalStrength(); got != types.RSSIUnknown {
		t.Fatalf("RSSI without radio support = %d, want sentinel", got)
	}
}

func TestMaintainRateLimits(t *testing.T) {
	dev := &HostDevice{JoinErr: errors.New("radio busy")}
	store := &MemStore{}
	store.Seed(types.Credentials{SSID: "s", Pass: "p"})
	m, clk := newTestManager(dev, store)

	m.Maintain()

	// Within the 60 s window nothing should be attempted again.
	dev.JoinErr = nil
	dev.JoinOK = true
	clk.ms += 10_000
	m.Maintain()
	if m.IsConnected() {
		t.Fatal("retry happened inside the 60 s window")
	}

	// After the window elapses the retry runs and restores the link.
	clk.ms += 60_000
	m.Maintain()
	if !m.IsConnected() {
		t.Fatal("retry did not run after the 60 s window")
	}
}

func TestMaintainNeverProvisions(t *testing.T) {
	dev := &HostDevice{PortalOK: true, PortalCreds: types.Credentials{SSID: "x"}}
	m, clk := newTestManager(dev, &MemStore{})

	m.Maintain()
	clk.ms += 120_000
	m.Maintain()

	if dev.Provisioning || dev.APName != "" {
		t.Fatal("Maintain must not open the provisioning AP")
	}
}
