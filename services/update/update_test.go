package update

import (
	"errors"
	"io"
	"strings"
	"testing"

	"barrique-go/errcode"
	"barrique-go/services/remote"
	"barrique-go/x/semver"
)

type fakeResp struct {
	status  int
	body    string
	declare int64 // ContentLength; -1 follows body length
	err     error
}

type fakeClient struct {
	resps map[string]fakeResp
}

func (c *fakeClient) Get(url string) (*remote.Response, error) {
	r, ok := c.resps[url]
	if !ok {
		return nil, errors.New("unexpected URL " + url)
	}
	if r.err != nil {
		return nil, r.err
	}
	cl := r.declare
	if cl == -1 {
		cl = int64(len(r.body))
	}
	return &remote.Response{
		Status:        r.status,
		ContentLength: cl,
		Body:          io.NopCloser(strings.NewReader(r.body)),
	}, nil
}

func (c *fakeClient) Post(url, ct string, body []byte) (*remote.Response, error) {
	return nil, errors.New("unexpected POST")
}

const imageURL = "https://cdn.barrique.io/fw/1.1.3.bin"

func newTestManager(resps map[string]fakeResp) (*Manager, *HostFlasher) {
	fl := &HostFlasher{ImageID: "fw-1.1.2"}
	m := New(&fakeClient{resps: resps}, fl, nil)
	return m, fl
}

func descriptorBody(version string) fakeResp {
	return fakeResp{status: 200, declare: -1,
		body: `{"version":"` + version + `","url":"` + imageURL + `"}`}
}

func TestNoUpdateWhenRemoteOlderOrEqual(t *testing.T) {
	for _, v := range []string{"1.1.2", "1.1.1", "0.9.9"} {
		m, fl := newTestManager(map[string]fakeResp{
			DescriptorURL: descriptorBody(v),
		})
		out, err := m.CheckAndApply(semver.Parse("1.1.2"))
		if out != NoUpdate || err != nil {
			t.Fatalf("remote %s: outcome = %v, err = %v", v, out, err)
		}
		if fl.Last != nil {
			t.Fatalf("remote %s: flash touched on NoUpdate", v)
		}
	}
}

func TestAppliedWhenRemoteNewer(t *testing.T) {
	img := "new image bytes"
	m, fl := newTestManager(map[string]fakeResp{
		DescriptorURL: descriptorBody("1.1.3"),
		imageURL:      {status: 200, body: img, declare: -1},
	})

	out, err := m.CheckAndApply(semver.Parse("1.1.2"))
	if out != Applied || err != nil {
		t.Fatalf("outcome = %v, err = %v", out, err)
	}
	if fl.Last == nil || !fl.Last.Committed {
		t.Fatal("region not committed")
	}
	if string(fl.Last.Data) != img {
		t.Fatalf("staged %q, want %q", fl.Last.Data, img)
	}
}

func TestDescriptorTransportFailure(t *testing.T) {
	m, fl := newTestManager(map[string]fakeResp{
		DescriptorURL: {err: errors.New("connection reset")},
	})
	out, err := m.CheckAndApply(semver.Parse("1.0.0"))
	if out != Failed || errcode.Of(err) != errcode.Transport {
		t.Fatalf("outcome = %v, code = %v", out, errcode.Of(err))
	}
	if fl.Last != nil {
		t.Fatal("flash touched on descriptor failure")
	}
}

func TestDescriptorMissingFields(t *testing.T) {
	for _, body := range []string{
		`{"url":"` + imageURL + `"}`,
		`{"version":"1.2.0"}`,
		`no object at all`,
		`{"version":1.2,"url":"` + imageURL + `"}`,
	} {
		m, _ := newTestManager(map[string]fakeResp{
			DescriptorURL: {status: 200, body: body, declare: -1},
		})
		out, err := m.CheckAndApply(semver.Parse("1.0.0"))
		if out != Failed || errcode.Of(err) != errcode.MalformedDescriptor {
			t.Fatalf("body %q: outcome = %v, err = %v", body, out, err)
		}
	}
}

func TestImageRequiresDeclaredLength(t *testing.T) {
	m, fl := newTestManager(map[string]fakeResp{
		DescriptorURL: descriptorBody("2.0.0"),
		imageURL:      {status: 200, body: "data", declare: 0},
	})
	out, err := m.CheckAndApply(semver.Parse("1.0.0"))
	if out != Failed || errcode.Of(err) != errcode.NoContentLength {
		t.Fatalf("outcome = %v, code = %v", out, errcode.Of(err))
	}
	if fl.Last != nil {
		t.Fatal("transaction opened without a declared length")
	}
}

func TestShortStreamAbortsTransaction(t *testing.T) {
	body := "only part of the image"
	m, fl := newTestManager(map[string]fakeResp{
		DescriptorURL: descriptorBody("2.0.0"),
		// Declares one byte more than the stream delivers.
		imageURL: {status: 200, body: body, declare: int64(len(body)) + 1},
	})

	out, err := m.CheckAndApply(semver.Parse("1.0.0"))
	if out != Failed || errcode.Of(err) != errcode.SizeMismatch {
		t.Fatalf("outcome = %v, code = %v", out, errcode.Of(err))
	}
	if fl.Last == nil {
		t.Fatal("no transaction recorded")
	}
	if !fl.Last.Aborted || fl.Last.Committed {
		t.Fatalf("region aborted=%v committed=%v, want aborted and not committed",
			fl.Last.Aborted, fl.Last.Committed)
	}
	// The running image's identity is untouched.
	if fl.ImageID != "fw-1.1.2" {
		t.Fatalf("image identity changed: %q", fl.ImageID)
	}
}

func TestCommitVerifyFailure(t *testing.T) {
	body := "complete image"
	m, fl := newTestManager(map[string]fakeResp{
		DescriptorURL: descriptorBody("2.0.0"),
		imageURL:      {status: 200, body: body, declare: -1},
	})
	fl.CommitErr = errors.New("checksum mismatch")

	out, err := m.CheckAndApply(semver.Parse("1.0.0"))
	if out != Failed || errcode.Of(err) != errcode.VerifyFailed {
		t.Fatalf("outcome = %v, code = %v", out, errcode.Of(err))
	}
	if fl.Last.Committed {
		t.Fatal("region reported committed despite verify failure")
	}
	if fl.ImageID != "fw-1.1.2" {
		t.Fatalf("image identity changed: %q", fl.ImageID)
	}
}
