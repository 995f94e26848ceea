package console

import (
	"context"
	"time"

	"github.com/google/shlex"

	"barrique-go/bus"
	"barrique-go/services/update"
	"barrique-go/types"
	"barrique-go/x/conv"
	"barrique-go/x/logx"
	"barrique-go/x/semver"
)

const serviceName = "console"

// Operator console, served while the node stays awake in maintenance mode.
// Diagnostics, an on-demand config fetch and update check, and an explicit
// reboot; everything else the operator does goes through the remote
// configuration endpoint.

// LineReader delivers one operator line at a time. ReadLine blocks; an
// error ends the console loop.
type LineReader interface {
	ReadLine() (string, error)
}

// ConfigSource fetches the active remote configuration on demand.
type ConfigSource interface {
	Fetch() types.RemoteConfig
}

// UpdateChecker runs one update check against the running version.
type UpdateChecker interface {
	CheckAndApply(current semver.Version) (update.Outcome, error)
}

type Console struct {
	conn    *bus.Connection
	in      LineReader
	out     func(string)
	id      string
	version string
	restart types.Restarter
	cfgs    ConfigSource  // nil: config command unavailable
	upd     UpdateChecker // nil: update command unavailable
}

func New(conn *bus.Connection, in LineReader, id, version string,
	restart types.Restarter, cfgs ConfigSource, upd UpdateChecker) *Console {
	return &Console{
		conn:    conn,
		in:      in,
		out:     func(s string) { logx.Print(s) },
		id:      id,
		version: version,
		restart: restart,
		cfgs:    cfgs,
		upd:     upd,
	}
}

// SetOutput swaps the output sink (tests).
func (c *Console) SetOutput(out func(string)) { c.out = out }

// Start launches the console reader in a goroutine.
func (c *Console) Start(ctx context.Context) {
	go c.serviceLoop(ctx)
}

func (c *Console) serviceLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := c.in.ReadLine()
		if err != nil {
			logx.Info(serviceName, "input closed")
			return
		}
		c.Handle(line)
	}
}

// Handle runs one command line.
func (c *Console) Handle(line string) {
	fields, err := shlex.Split(line)
	if err != nil {
		c.out("parse error: " + err.Error())
		return
	}
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "help":
		c.out("commands: help id state config update reboot")
	case "id":
		c.out("id " + c.id + " fw " + c.version)
	case "state":
		c.printState()
	case "config":
		c.printConfig()
	case "update":
		c.runUpdate()
	case "reboot":
		c.out("rebooting")
		c.restart.Restart()
	default:
		c.out("unknown command: " + fields[0])
	}
}

// printConfig fetches and prints the active configuration.
func (c *Console) printConfig() {
	if c.cfgs == nil {
		c.out("config unavailable")
		return
	}
	cfg := c.cfgs.Fetch()
	var tmp [20]byte
	c.out("config interval_s " + string(conv.Utoa(tmp[:], uint64(cfg.MeasureIntervalS))) +
		" maintenance " + boolStr(cfg.Maintenance) +
		" test " + boolStr(cfg.Test))
}

// runUpdate runs one update check and prints the outcome. An applied image
// is left for the operator to reboot into.
func (c *Console) runUpdate() {
	if c.upd == nil {
		c.out("update unavailable")
		return
	}
	outcome, err := c.upd.CheckAndApply(semver.Parse(c.version))
	if err != nil {
		c.out("update " + outcome.String() + ": " + err.Error())
		return
	}
	if outcome == update.Applied {
		c.out("update applied; reboot to run the new image")
		return
	}
	c.out("update " + outcome.String())
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// printState drains the retained state topics and prints one line each.
func (c *Console) printState() {
	sub := c.conn.Subscribe(bus.Topic{"state", bus.WildcardRest})
	defer c.conn.Unsubscribe(sub)

	deadline := time.After(50 * time.Millisecond)
	for {
		select {
		case m := <-sub.Channel():
			c.out(renderState(m))
		case <-deadline:
			return
		}
	}
}

func renderState(m *bus.Message) string {
	name := "?"
	if len(m.Topic) > 1 {
		name = m.Topic[1]
	}
	switch st := m.Payload.(type) {
	case types.LinkState:
		return "net " + string(st.Link)
	case types.NodeState:
		return "mode " + st.Mode
	case types.UpdateState:
		if st.Error != "" {
			return "update " + st.Outcome + " (" + st.Error + ")"
		}
		return "update " + st.Outcome
	case types.ReportState:
		if st.OK {
			return "report ok"
		}
		return "report failed"
	default:
		return name + " ?"
	}
}
