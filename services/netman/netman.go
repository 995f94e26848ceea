package netman

import (
	"barrique-go/bus"
	"barrique-go/services/identity"
	"barrique-go/types"
	"barrique-go/x/logx"
	"barrique-go/x/timex"
)

// -----------------------------------------------------------------------------
// Timing constants
// -----------------------------------------------------------------------------

const (
	serviceName = "netman"

	pollMs      = 500     // cadence while waiting for the link to come up
	reuseMs     = 30_000  // window for a join with stored credentials
	provisionMs = 180_000 // window for an operator to supply credentials
	retryMs     = 60_000  // background re-attempt cadence in looping modes
)

var topicStateNet = bus.Topic{"state", "net"}

// -----------------------------------------------------------------------------
// Manager
// -----------------------------------------------------------------------------

// Manager owns the single network link. No other component touches the
// radio. Having no link is a normal state: Connect reports it as a boolean
// and callers degrade their behaviour for the cycle.
type Manager struct {
	dev   types.NetDevice
	creds types.CredentialStore
	id    string
	conn  *bus.Connection // nil when running without diagnostics

	now   func() uint32
	sleep func(ms uint32)

	lastRetry  uint32
	retryArmed bool
}

func New(dev types.NetDevice, creds types.CredentialStore, id string, conn *bus.Connection) *Manager {
	return &Manager{
		dev:   dev,
		creds: creds,
		id:    id,
		conn:  conn,
		now:   timex.Ticks,
		sleep: timex.SleepMs,
	}
}

// SetClock swaps the tick source and sleep function. Tests use this to run
// the retry windows without real wall-clock waits.
func (m *Manager) SetClock(now func() uint32, sleep func(ms uint32)) {
	m.now = now
	m.sleep = sleep
}

// Connect brings the link up: stored credentials first, then the
// provisioning access point. Returns whether the link is up afterwards.
func (m *Manager) Connect() bool {
	if m.tryStored() {
		m.publishLink()
		return true
	}
	if m.tryProvision() {
		m.publishLink()
		return true
	}
	logx.Warn(serviceName, "no link this cycle")
	m.publishLink()
	return false
}

// IsConnected reports the current link state.
func (m *Manager) IsConnected() bool { return m.dev.Connected() }

// SignalStrength returns the link RSSI, or types.RSSIUnknown when the link
// is down or the radio cannot measure it.
func (m *Manager) SignalStrength() int16 {
	if !m.dev.Connected() {
		return types.RSSIUnknown
	}
	if rssi, ok := m.dev.RSSI(); ok {
		return rssi
	}
	return types.RSSIUnknown
}

// Maintain re-attempts a dropped connection at most once per retry interval,
// using stored credentials only. Evaluated from modes that keep looping;
// it never re-enters provisioning.
func (m *Manager) Maintain() {
	if m.dev.Connected() {
		return
	}
	now := m.now()
	if m.retryArmed && timex.Since(m.lastRetry, now) < retryMs {
		return
	}
	m.lastRetry = now
	m.retryArmed = true
	logx.Info(serviceName, "retrying stored credentials")
	if m.tryStored() {
		logx.Info(serviceName, "link restored")
	}
	m.publishLink()
}

// -----------------------------------------------------------------------------
// Join strategies
// -----------------------------------------------------------------------------

// tryStored joins with persisted credentials and polls the link for up to
// the reuse window.
func (m *Manager) tryStored() bool {
	c, ok := m.creds.Load()
	if !ok {
		return false
	}
	if err := m.dev.Join(c); err != nil {
		logx.Warn(serviceName, "join failed:", err)
		return false
	}
	return m.awaitLink(reuseMs)
}

// tryProvision opens the provisioning access point and waits for an operator
// to supply credentials. On success the credentials are persisted for reuse.
func (m *Manager) tryProvision() bool {
	ap := identity.APName(m.id)
	if err := m.dev.StartProvisioning(ap); err != nil {
		logx.Warn(serviceName, "provisioning AP failed:", err)
		return false
	}
	logx.Info(serviceName, "provisioning AP up:", ap)

	start := m.now()
	for {
		if c, ok := m.dev.PollCredentials(); ok {
			m.dev.StopProvisioning()
			if err := m.dev.Join(c); err != nil {
				logx.Warn(serviceName, "join failed:", err)
				return false
			}
			if !m.awaitLink(reuseMs) {
				return false
			}
			if err := m.creds.Store(c); err != nil {
				logx.Warn(serviceName, "credential store failed:", err)
			}
			return true
		}
		if timex.Since(start, m.now()) >= provisionMs {
			m.dev.StopProvisioning()
			return false
		}
		m.sleep(pollMs)
	}
}

// awaitLink polls the device at the fixed cadence until the link is up or
// the window elapses.
func (m *Manager) awaitLink(windowMs uint32) bool {
	start := m.now()
	for {
		if m.dev.Connected() {
			return true
		}
		if timex.Since(start, m.now()) >= windowMs {
			return false
		}
		m.sleep(pollMs)
	}
}

// -----------------------------------------------------------------------------
// Retained state
// -----------------------------------------------------------------------------

func (m *Manager) publishLink() {
	if m.conn == nil {
		return
	}
	st := types.LinkState{Link: types.LinkDown, RSSI: types.RSSIUnknown, TS: timex.NowMs()}
	if m.dev.Connected() {
		st.Link = types.LinkUp
		st.RSSI = m.SignalStrength()
	}
	m.conn.Publish(m.conn.NewMessage(topicStateNet, st, true))
}
