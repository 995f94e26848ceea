package control

import (
	"errors"
	"io"
	"strings"
	"testing"

	"barrique-go/bus"
	"barrique-go/services/measure"
	"barrique-go/services/netman"
	"barrique-go/services/remote"
	"barrique-go/services/report"
	"barrique-go/services/sched"
	"barrique-go/services/update"
	"barrique-go/types"
	"barrique-go/x/semver"
)

// End-to-end cycles through the real services with only the platform edges
// (radio, flash, sensor, suspension) and the HTTP client faked.

// e2eClient serves the three endpoints from memory and records traffic.
// Config bodies are served in order, the last one repeating.
type e2eClient struct {
	configs    []string
	cfgServed  int
	descriptor string
	image      string

	gets  []string
	posts []string
}

func (c *e2eClient) Get(url string) (*remote.Response, error) {
	c.gets = append(c.gets, url)
	var body string
	switch {
	case url == remote.ConfigURL:
		i := c.cfgServed
		if i >= len(c.configs) {
			i = len(c.configs) - 1
		}
		c.cfgServed++
		body = c.configs[i]
	case url == update.DescriptorURL:
		body = c.descriptor
	case strings.HasSuffix(url, ".bin"):
		body = c.image
	default:
		return nil, errors.New("unexpected URL " + url)
	}
	return &remote.Response{
		Status:        200,
		ContentLength: int64(len(body)),
		Body:          io.NopCloser(strings.NewReader(body)),
	}, nil
}

func (c *e2eClient) Post(url, ct string, body []byte) (*remote.Response, error) {
	c.posts = append(c.posts, string(body))
	return &remote.Response{Status: 201, Body: io.NopCloser(strings.NewReader(""))}, nil
}

type e2eRig struct {
	client  *e2eClient
	dev     *netman.HostDevice
	flasher *update.HostFlasher
	susp    *sched.HostSuspender
	rst     *sched.HostRestarter
	loop    *Loop
}

func newE2E(t *testing.T, client *e2eClient) *e2eRig {
	t.Helper()

	const (
		id = "987654321"
		fw = "1.1.2"
	)
	b := bus.NewBus(16)

	dev := &netman.HostDevice{JoinOK: true, RSSIVal: -58, RSSIOK: true}
	store := &netman.MemStore{}
	store.Seed(types.Credentials{SSID: "field-net", Pass: "field-pass"})
	net := netman.New(dev, store, id, b.NewConnection("netman"))
	clock := uint32(0)
	net.SetClock(func() uint32 { return clock }, func(ms uint32) { clock += ms })

	flasher := &update.HostFlasher{ImageID: "fw-" + fw}
	sensor := &measure.HostSensor{Raw: 512, Batt: 3050}
	sampler := measure.New(sensor, net.SignalStrength, id, fw)
	sampler.SetNow(func() uint64 { return 1_700_000_000 })

	susp := &sched.HostSuspender{}
	rst := &sched.HostRestarter{}

	rig := &e2eRig{client: client, dev: dev, flasher: flasher, susp: susp, rst: rst}
	rig.loop = New(Deps{
		Firmware:  semver.Parse(fw),
		Network:   net,
		Config:    remote.NewFetcher(client, net),
		Updater:   update.New(client, flasher, b.NewConnection("update")),
		Sampler:   sampler,
		Submitter: report.New(client, net, b.NewConnection("report")),
		Scheduler: sched.New(susp),
		Restarter: rst,
		Conn:      b.NewConnection("control"),
	})
	rig.loop.SetWait(func(ms uint32) {})
	return rig
}

func countGets(urls []string, target string) int {
	n := 0
	for _, u := range urls {
		if u == target {
			n++
		}
	}
	return n
}

func TestEndToEndNormalCycle(t *testing.T) {
	rig := newE2E(t, &e2eClient{
		configs: []string{`{"measure_interval_s":3600,"maintenance":false,"test_mode":false}`},
	})

	rig.loop.Run()

	if len(rig.client.posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(rig.client.posts))
	}
	want := `{"id":"987654321","fw":"1.1.2","value_raw":512,"rssi":-58,"battery_mv":3050,"ts":1700000000}`
	if rig.client.posts[0] != want {
		t.Fatalf("report body\n got %s\nwant %s", rig.client.posts[0], want)
	}
	if n := countGets(rig.client.gets, update.DescriptorURL); n != 0 {
		t.Fatalf("descriptor fetched %d times outside maintenance", n)
	}
	if len(rig.susp.Plans) != 1 || rig.susp.Plans[0].DurationMs != 3_600_000 {
		t.Fatalf("plans = %+v", rig.susp.Plans)
	}
}

func TestEndToEndMaintenanceInstallsAndRestarts(t *testing.T) {
	rig := newE2E(t, &e2eClient{
		configs:    []string{`{"measure_interval_s":3600,"maintenance":true}`},
		descriptor: `{"version":"1.2.0","url":"https://cdn.barrique.io/fw/1.2.0.bin"}`,
		image:      "new image bytes",
	})

	rig.loop.Run()

	if rig.rst.Requested != 1 {
		t.Fatalf("restarts = %d, want 1", rig.rst.Requested)
	}
	if len(rig.susp.Plans) != 0 {
		t.Fatal("suspended after an applied update")
	}
	r := rig.flasher.Last
	if r == nil || !r.Committed || r.Aborted {
		t.Fatalf("region = %+v", r)
	}
	if string(r.Data) != "new image bytes" {
		t.Fatalf("staged %q", r.Data)
	}
}

func TestEndToEndMaintenanceNoUpdateThenNormal(t *testing.T) {
	rig := newE2E(t, &e2eClient{
		configs: []string{
			`{"measure_interval_s":3600,"maintenance":true}`,
			`{"measure_interval_s":3600,"maintenance":false}`,
		},
		descriptor: `{"version":"1.1.2","url":"https://cdn.barrique.io/fw/1.1.2.bin"}`,
	})

	rig.loop.Run()

	if n := countGets(rig.client.gets, update.DescriptorURL); n != 1 {
		t.Fatalf("descriptor fetches = %d, want 1", n)
	}
	if rig.flasher.Last != nil {
		t.Fatal("same-version descriptor must not open a flash transaction")
	}
	if len(rig.client.posts) != 2 {
		t.Fatalf("posts = %d, want one per iteration", len(rig.client.posts))
	}
	if rig.rst.Requested != 0 {
		t.Fatal("restarted without an applied update")
	}
	if len(rig.susp.Plans) != 1 || rig.susp.Plans[0].DurationMs != 3_600_000 {
		t.Fatalf("plans = %+v", rig.susp.Plans)
	}
}
