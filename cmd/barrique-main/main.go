//go:build rp2040 || rp2350

package main

import (
	"context"
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
	"barrique-go/x/semver"
)

// FirmwareVersion is stamped by the release build.
const FirmwareVersion = "1.1.2"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot", FirmwareVersion)

	id := identity.Get()
	b := bus.NewBus(16)

	net := netman.New(netman.NewPlatformDevice(), netman.NewPlatformStore(),
		id, b.NewConnection("netman"))
	client := remote.NewHTTPClient(30 * time.Second)
	fetcher := remote.NewFetcher(client, net)
	updater := update.New(client, update.NewPlatformFlasher(), b.NewConnection("update"))
	sampler := measure.New(measure.NewPlatformSensor(), net.SignalStrength, id, FirmwareVersion)
	submitter := report.New(client, net, b.NewConnection("report"))
	restarter := sched.NewPlatformRestarter()

	cons := console.New(b.NewConnection("console"), console.NewPlatformReader(),
		id, FirmwareVersion, restarter, fetcher, updater)
	cons.Start(context.Background())

	loop := control.New(control.Deps{
		Firmware:  semver.Parse(FirmwareVersion),
		Network:   net,
		Config:    fetcher,
		Updater:   updater,
		Sampler:   sampler,
		Submitter: submitter,
		Scheduler: sched.New(sched.NewPlatformSuspender()),
		Restarter: restarter,
		Conn:      b.NewConnection("control"),
	})

	// Every path out of Run ends in suspension or a restart.
	loop.Run()
}
