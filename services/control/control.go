package control

import (
	"barrique-go/bus"
	"barrique-go/services/sched"
	"barrique-go/services/update"
	"barrique-go/types"
	"barrique-go/x/logx"
	"barrique-go/x/semver"
	"barrique-go/x/timex"
)

const serviceName = "control"

var topicStateMode = bus.Topic{"state", "mode"}

// Narrow views of the collaborating services. The loop owns the cycle;
// everything else is called synchronously through these.

type Network interface {
	Connect() bool
	Maintain()
}

type ConfigSource interface {
	Fetch() types.RemoteConfig
}

type Updater interface {
	CheckAndApply(current semver.Version) (update.Outcome, error)
}

type Sampler interface {
	Take() types.Sample
}

type Submitter interface {
	Report(s types.Sample) bool
}

// Loop drives one boot's worth of wake cycles: connect, measure and report,
// fetch configuration, resolve the mode, then either keep looping
// (maintenance) or suspend (normal/test). Suspension and restart are
// terminal: on hardware neither returns, and the process re-enters at the
// top on the next wake.
type Loop struct {
	fw      semver.Version
	net     Network
	cfgs    ConfigSource
	updater Updater
	sampler Sampler
	sub     Submitter
	sched   *sched.Scheduler
	restart types.Restarter
	conn    *bus.Connection // nil when running without diagnostics

	wait func(ms uint32) // maintenance inter-iteration wait, injectable
}

type Deps struct {
	Firmware  semver.Version
	Network   Network
	Config    ConfigSource
	Updater   Updater
	Sampler   Sampler
	Submitter Submitter
	Scheduler *sched.Scheduler
	Restarter types.Restarter
	Conn      *bus.Connection
}

func New(d Deps) *Loop {
	return &Loop{
		fw:      d.Firmware,
		net:     d.Network,
		cfgs:    d.Config,
		updater: d.Updater,
		sampler: d.Sampler,
		sub:     d.Submitter,
		sched:   d.Scheduler,
		restart: d.Restarter,
		conn:    d.Conn,
		wait:    timex.SleepMs,
	}
}

// SetWait swaps the maintenance wait (tests).
func (l *Loop) SetWait(wait func(ms uint32)) { l.wait = wait }

// Run executes the control flow for this boot. On hardware it never
// returns: every path ends in suspension or a restart. Host fakes may
// return, which is what the tests observe.
func (l *Loop) Run() {
	l.net.Connect()

	for {
		l.sub.Report(l.sampler.Take())

		cfg := l.cfgs.Fetch()
		mode := Resolve(cfg)
		interval := IntervalMs(mode, cfg)
		l.publishMode(mode, interval)
		logx.Info(serviceName, "mode", mode.String(), "interval", interval, "ms")

		if mode != types.ModeMaintenance {
			// Terminal: all per-cycle work, including the deliberate
			// omission of the update check, is complete here.
			l.sched.Suspend(sched.Plan(interval))
			return
		}

		// Maintenance is the only mode permitted to replace the image.
		outcome, _ := l.updater.CheckAndApply(l.fw)
		if outcome == update.Applied {
			logx.Info(serviceName, "restarting into new image")
			l.restart.Restart()
			return
		}

		l.wait(uint32(interval))
		l.net.Maintain()
	}
}

func (l *Loop) publishMode(mode types.Mode, intervalMs uint64) {
	if l.conn == nil {
		return
	}
	st := types.NodeState{Mode: mode.String(), IntervalMs: intervalMs, TS: timex.NowMs()}
	l.conn.Publish(l.conn.NewMessage(topicStateMode, st, true))
}
