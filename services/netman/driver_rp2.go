//go:build rp2040 || rp2350

package netman

import (
	"time"

	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"

	"barrique-go/types"
)

// PortalCredentials is the hook the provisioning portal glue sets; it
// reports credentials an operator submitted while the access point was up.
// The portal itself (captive page, form handling) is outside this firmware.
var PortalCredentials = func() (types.Credentials, bool) {
	return types.Credentials{}, false
}

// rp2Device adapts the board's netlink driver (wifinina on Pico W class
// boards) to types.NetDevice.
type rp2Device struct {
	link netlink.Netlinker
	up   bool
}

// NewPlatformDevice probes the board's network driver.
func NewPlatformDevice() types.NetDevice {
	link, _ := probe.Probe()
	d := &rp2Device{link: link}
	link.NetNotify(func(e netlink.Event) {
		switch e {
		case netlink.EventNetUp:
			d.up = true
		case netlink.EventNetDown:
			d.up = false
		}
	})
	return d
}

func (d *rp2Device) Join(c types.Credentials) error {
	return d.link.NetConnect(&netlink.ConnectParams{
		Ssid:           c.SSID,
		Passphrase:     c.Pass,
		ConnectTimeout: 30 * time.Second,
	})
}

func (d *rp2Device) Leave() {
	d.link.NetDisconnect()
	d.up = false
}

func (d *rp2Device) Connected() bool { return d.up }

func (d *rp2Device) RSSI() (int16, bool) {
	// Not all netlink drivers expose RSSI; probe for it.
	type rssier interface{ GetRSSI() (int32, error) }
	if r, ok := d.link.(rssier); ok {
		if v, err := r.GetRSSI(); err == nil {
			return int16(v), true
		}
	}
	return 0, false
}

func (d *rp2Device) StartProvisioning(apName string) error {
	return d.link.NetConnect(&netlink.ConnectParams{
		Ssid:        apName,
		ConnectMode: netlink.ConnectModeAP,
	})
}

func (d *rp2Device) PollCredentials() (types.Credentials, bool) {
	return PortalCredentials()
}

func (d *rp2Device) StopProvisioning() {
	d.link.NetDisconnect()
}
