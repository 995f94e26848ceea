//go:build !rp2040 && !rp2350

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"barrique-go/bus"
	"barrique-go/services/console"
	"barrique-go/services/control"
	"barrique-go/services/identity"
	"barrique-go/services/measure"
	"barrique-go/services/netman"
	"barrique-go/services/remote"
	"barrique-go/services/report"
	"barrique-go/services/sched"
	"barrique-go/services/update"
	"barrique-go/types"
	"barrique-go/x/logx"
	"barrique-go/x/semver"
)

// Host simulator: runs the full control loop against fake platform devices
// and canned endpoints, printing every decision. Useful for exercising mode
// changes and update outcomes without a board on the desk.

const firmwareVersion = "1.1.2"

// cannedClient answers the three fixed endpoints from memory.
type cannedClient struct {
	config     string
	descriptor string
	image      string
}

func (c *cannedClient) Get(url string) (*remote.Response, error) {
	var body string
	switch url {
	case remote.ConfigURL:
		body = c.config
	case update.DescriptorURL:
		body = c.descriptor
	default:
		if strings.HasSuffix(url, ".bin") {
			body = c.image
		} else {
			return nil, errors.New("no canned response for " + url)
		}
	}
	return &remote.Response{
		Status:        200,
		ContentLength: int64(len(body)),
		Body:          io.NopCloser(strings.NewReader(body)),
	}, nil
}

func (c *cannedClient) Post(url, ct string, body []byte) (*remote.Response, error) {
	logx.Info("sim", "POST", url, string(body))
	return &remote.Response{Status: 201, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func main() {
	maintenance := flag.Bool("maintenance", false, "serve a maintenance configuration")
	test := flag.Bool("test", false, "serve a test-mode configuration")
	interval := flag.Uint("interval", 3600, "measure interval in seconds")
	offerVersion := flag.String("offer", "", "firmware version the descriptor offers (empty: same as running)")
	flag.Parse()

	cfg := `{"measure_interval_s":` + uitoa(*interval) +
		`,"maintenance":` + btoa(*maintenance) +
		`,"test_mode":` + btoa(*test) + `}`
	offered := firmwareVersion
	if *offerVersion != "" {
		offered = *offerVersion
	}
	client := &cannedClient{
		config:     cfg,
		descriptor: `{"version":"` + offered + `","url":"https://cdn.sim/fw/` + offered + `.bin"}`,
		image:      "simulated image payload",
	}

	id := identity.Get()
	b := bus.NewBus(16)

	dev := &netman.HostDevice{JoinOK: true, JoinPolls: 1, RSSIVal: -58, RSSIOK: true}
	store := &netman.MemStore{}
	store.Seed(types.Credentials{SSID: "sim-net", Pass: "sim-pass"})
	net := netman.New(dev, store, id, b.NewConnection("netman"))

	flasher := &update.HostFlasher{ImageID: "fw-" + firmwareVersion}
	sensor := &measure.HostSensor{Raw: 512, Batt: 3050}

	susp := &sched.HostSuspender{OnSuspend: func(p types.SleepPlan) {
		logx.Info("sim", "suspended for", p.DurationMs, "ms; next wake would re-enter main")
		os.Exit(0)
	}}
	rst := &sched.HostRestarter{OnRestart: func() {
		logx.Info("sim", "restart into new image")
		os.Exit(0)
	}}

	fetcher := remote.NewFetcher(client, net)
	updater := update.New(client, flasher, b.NewConnection("update"))

	cons := console.New(b.NewConnection("console"), console.NewStdinReader(),
		id, firmwareVersion, rst, fetcher, updater)
	cons.Start(context.Background())

	loop := control.New(control.Deps{
		Firmware:  semver.Parse(firmwareVersion),
		Network:   net,
		Config:    fetcher,
		Updater:   updater,
		Sampler:   measure.New(sensor, net.SignalStrength, id, firmwareVersion),
		Submitter: report.New(client, net, b.NewConnection("report")),
		Scheduler: sched.New(susp),
		Restarter: rst,
		Conn:      b.NewConnection("control"),
	})
	// Keep the maintenance wait short so the simulator stays interactive.
	loop.SetWait(func(ms uint32) { time.Sleep(time.Second) })

	logx.Info("sim", "node", id, "fw", firmwareVersion)
	loop.Run()
}

func btoa(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func uitoa(u uint) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}
