package report

import (
	"encoding/json"

	"barrique-go/bus"
	"barrique-go/services/remote"
	"barrique-go/types"
	"barrique-go/x/logx"
	"barrique-go/x/timex"
)

const (
	serviceName = "report"

	// IngestURL is the fixed measurement submission endpoint.
	IngestURL = "https://api.barrique.io/v1/measurements"

	contentType = "application/json"
)

var topicStateReport = bus.Topic{"state", "report"}

// Reporter submits one sample per cycle. A failed submission is a soft
// failure: logged, the sample dropped, never retried within the cycle.
type Reporter struct {
	client remote.Client
	link   remote.LinkChecker
	conn   *bus.Connection // nil when running without diagnostics
	url    string
}

func New(client remote.Client, link remote.LinkChecker, conn *bus.Connection) *Reporter {
	return &Reporter{client: client, link: link, conn: conn, url: IngestURL}
}

// SetURL points the reporter elsewhere (host simulator, tests).
func (r *Reporter) SetURL(url string) { r.url = url }

// Report submits the sample. Returns whether the endpoint accepted it.
func (r *Reporter) Report(s types.Sample) bool {
	if !r.link.IsConnected() {
		logx.Warn(serviceName, "no link, dropping sample")
		return r.done(false)
	}
	body, err := json.Marshal(s)
	if err != nil {
		logx.Error(serviceName, "marshal:", err)
		return r.done(false)
	}
	resp, err := r.client.Post(r.url, contentType, body)
	if err != nil {
		logx.Warn(serviceName, "submit:", err)
		return r.done(false)
	}
	defer resp.Body.Close()
	if resp.Status != 200 && resp.Status != 201 {
		logx.Warn(serviceName, "submit status", resp.Status)
		return r.done(false)
	}
	return r.done(true)
}

func (r *Reporter) done(ok bool) bool {
	if r.conn != nil {
		st := types.ReportState{OK: ok, TS: timex.NowMs()}
		r.conn.Publish(r.conn.NewMessage(topicStateReport, st, true))
	}
	return ok
}
