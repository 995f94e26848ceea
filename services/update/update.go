package update

import (
	"io"

	"github.com/andreyvit/tinyjson"

	"barrique-go/bus"
	"barrique-go/errcode"
	"barrique-go/services/remote"
	"barrique-go/types"
	"barrique-go/x/logx"
	"barrique-go/x/semver"
	"barrique-go/x/timex"
)

const (
	serviceName = "update"

	// DescriptorURL is the fixed firmware descriptor endpoint.
	DescriptorURL = "https://api.barrique.io/v1/firmware"

	maxDescriptorBody = 2 * 1024
)

var topicStateUpdate = bus.Topic{"state", "update"}

// Outcome of one update check. The caller performs any restart; this
// component only reports.
type Outcome uint8

const (
	NoUpdate Outcome = iota
	Applied
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "no_update"
	}
}

// Descriptor names a candidate image.
type Descriptor struct {
	Version semver.Version
	URL     string
}

// Manager checks the firmware descriptor and, when it names a newer image,
// streams it into a flash write-region transaction. Every failure path
// leaves the running image untouched.
type Manager struct {
	client remote.Client
	flash  types.Flasher
	conn   *bus.Connection // nil when running without diagnostics
	url    string
}

func New(client remote.Client, flash types.Flasher, conn *bus.Connection) *Manager {
	return &Manager{client: client, flash: flash, conn: conn, url: DescriptorURL}
}

// SetURL points the manager elsewhere (host simulator, tests).
func (m *Manager) SetURL(url string) { m.url = url }

// CheckAndApply fetches the descriptor, compares versions and installs a
// newer image if one is offered. Only ever invoked in maintenance mode.
// A non-nil error accompanies exactly the Failed outcome.
func (m *Manager) CheckAndApply(current semver.Version) (Outcome, error) {
	desc, err := m.fetchDescriptor()
	if err != nil {
		return m.fail(err)
	}
	if !desc.Version.Newer(current) {
		logx.Info(serviceName, "no update:", desc.Version.String(), "<=", current.String())
		m.publish(NoUpdate, desc.Version.String(), nil)
		return NoUpdate, nil
	}
	logx.Info(serviceName, "installing", desc.Version.String())
	if err := m.install(desc); err != nil {
		return m.fail(err)
	}
	m.publish(Applied, desc.Version.String(), nil)
	return Applied, nil
}

func (m *Manager) fail(err error) (Outcome, error) {
	logx.Warn(serviceName, "update failed:", err)
	m.publish(Failed, "", err)
	return Failed, err
}

// fetchDescriptor retrieves and parses the version descriptor.
func (m *Manager) fetchDescriptor() (Descriptor, error) {
	resp, err := m.client.Get(m.url)
	if err != nil {
		return Descriptor{}, errcode.Wrap(errcode.Transport, "descriptor", err)
	}
	defer resp.Body.Close()
	if resp.Status != 200 {
		return Descriptor{}, &errcode.E{C: errcode.Transport, Op: "descriptor"}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDescriptorBody))
	if err != nil {
		return Descriptor{}, errcode.Wrap(errcode.Transport, "descriptor", err)
	}
	obj, ok := remote.ExtractObject(body)
	if !ok {
		return Descriptor{}, errcode.MalformedDescriptor
	}
	r := tinyjson.Raw(obj)
	fields, ok := r.Value().(map[string]any)
	if !ok {
		return Descriptor{}, errcode.MalformedDescriptor
	}
	vs, ok := fields["version"].(string)
	if !ok || vs == "" {
		return Descriptor{}, errcode.MalformedDescriptor
	}
	url, ok := fields["url"].(string)
	if !ok || url == "" {
		return Descriptor{}, errcode.MalformedDescriptor
	}
	return Descriptor{Version: semver.Parse(vs), URL: url}, nil
}

// install streams the image into a write-region transaction. The region
// must not become a valid image unless Commit succeeds.
func (m *Manager) install(desc Descriptor) error {
	resp, err := m.client.Get(desc.URL)
	if err != nil {
		return errcode.Wrap(errcode.Transport, "image", err)
	}
	defer resp.Body.Close()
	if resp.Status != 200 {
		return &errcode.E{C: errcode.Transport, Op: "image"}
	}
	if resp.ContentLength <= 0 {
		return errcode.NoContentLength
	}

	region, err := m.flash.Begin(resp.ContentLength)
	if err != nil {
		return errcode.Wrap(errcode.FlashBusy, "begin", err)
	}

	n, err := io.Copy(region, resp.Body)
	if err != nil {
		region.Abort()
		return errcode.Wrap(errcode.Transport, "stream", err)
	}
	if n != resp.ContentLength {
		region.Abort()
		return errcode.SizeMismatch
	}

	if err := region.Commit(); err != nil {
		return errcode.Wrap(errcode.VerifyFailed, "commit", err)
	}
	return nil
}

func (m *Manager) publish(o Outcome, version string, err error) {
	if m.conn == nil {
		return
	}
	st := types.UpdateState{Outcome: o.String(), Version: version, TS: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	m.conn.Publish(m.conn.NewMessage(topicStateUpdate, st, true))
}
