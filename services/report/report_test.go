package report

import (
	"errors"
	"io"
	"strings"
	"testing"

	"barrique-go/services/remote"
	"barrique-go/types"
)

type fakeLink struct{ up bool }

func (l fakeLink) IsConnected() bool { return l.up }

type fakeClient struct {
	status  int
	err     error
	gotURL  string
	gotCT   string
	gotBody string
}

func (c *fakeClient) Get(url string) (*remote.Response, error) {
	return nil, errors.New("unexpected GET")
}

func (c *fakeClient) Post(url, ct string, body []byte) (*remote.Response, error) {
	c.gotURL = url
	c.gotCT = ct
	c.gotBody = string(body)
	if c.err != nil {
		return nil, c.err
	}
	return &remote.Response{
		Status: c.status,
		Body:   io.NopCloser(strings.NewReader("")),
	}, nil
}

func sample() types.Sample {
	return types.Sample{
		DeviceID:      "123456789",
		Firmware:      "1.1.2",
		RawValue:      512,
		RSSI:          -71,
		BatteryMilliV: 3050,
		TS:            1_700_000_000,
	}
}

func TestReportDisconnectedSkipsRequest(t *testing.T) {
	c := &fakeClient{status: 200}
	r := New(c, fakeLink{up: false}, nil)

	if r.Report(sample()) {
		t.Fatal("report succeeded without a link")
	}
	if c.gotURL != "" {
		t.Fatal("request issued while disconnected")
	}
}

func TestReportWireShape(t *testing.T) {
	c := &fakeClient{status: 200}
	r := New(c, fakeLink{up: true}, nil)

	if !r.Report(sample()) {
		t.Fatal("report failed")
	}
	if c.gotCT != "application/json" {
		t.Fatalf("content type = %q", c.gotCT)
	}
	want := `{"id":"123456789","fw":"1.1.2","value_raw":512,"rssi":-71,"battery_mv":3050,"ts":1700000000}`
	if c.gotBody != want {
		t.Fatalf("body = %s, want %s", c.gotBody, want)
	}
}

func TestReportAcceptedStatuses(t *testing.T) {
	for _, status := range []int{200, 201} {
		c := &fakeClient{status: status}
		r := New(c, fakeLink{up: true}, nil)
		if !r.Report(sample()) {
			t.Fatalf("status %d treated as failure", status)
		}
	}
	for _, status := range []int{202, 204, 400, 500} {
		c := &fakeClient{status: status}
		r := New(c, fakeLink{up: true}, nil)
		if r.Report(sample()) {
			t.Fatalf("status %d treated as success", status)
		}
	}
}

func TestReportTransportErrorIsSoft(t *testing.T) {
	c := &fakeClient{err: errors.New("broken pipe")}
	r := New(c, fakeLink{up: true}, nil)

	if r.Report(sample()) {
		t.Fatal("transport error treated as success")
	}
}
