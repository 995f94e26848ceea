package remote

import (
	"bytes"
	"io"

	"github.com/andreyvit/tinyjson"

	"barrique-go/types"
	"barrique-go/x/logx"
)

const (
	serviceName = "remote"

	// ConfigURL is the fixed configuration endpoint.
	ConfigURL = "https://api.barrique.io/v1/config"

	maxConfigBody = 8 * 1024
)

// LinkChecker is the slice of the connectivity manager the fetcher needs.
type LinkChecker interface {
	IsConnected() bool
}

// Fetcher retrieves the operating configuration. It never fails: any
// transport or parse problem degrades to types.DefaultConfig(), so callers
// always get a usable configuration. It also never preserves a previous
// fetch; defaults are rebuilt from scratch every call.
type Fetcher struct {
	client Client
	link   LinkChecker
	url    string
}

func NewFetcher(client Client, link LinkChecker) *Fetcher {
	return &Fetcher{client: client, link: link, url: ConfigURL}
}

// SetURL points the fetcher elsewhere (host simulator, tests).
func (f *Fetcher) SetURL(url string) { f.url = url }

// Fetch returns the remote configuration, or the default one on any failure.
func (f *Fetcher) Fetch() types.RemoteConfig {
	if !f.link.IsConnected() {
		return types.DefaultConfig()
	}
	resp, err := f.client.Get(f.url)
	if err != nil {
		logx.Warn(serviceName, "config fetch:", err)
		return types.DefaultConfig()
	}
	defer resp.Body.Close()
	if resp.Status != 200 {
		logx.Warn(serviceName, "config fetch status", resp.Status)
		return types.DefaultConfig()
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxConfigBody))
	if err != nil {
		logx.Warn(serviceName, "config body:", err)
		return types.DefaultConfig()
	}
	obj, ok := ExtractObject(body)
	if !ok {
		logx.Warn(serviceName, "config body has no JSON object")
		return types.DefaultConfig()
	}
	r := tinyjson.Raw(obj)
	m, ok := r.Value().(map[string]any)
	if !ok {
		logx.Warn(serviceName, "config body is not a JSON object")
		return types.DefaultConfig()
	}
	return configFromMap(m)
}

// ExtractObject strips any surrounding text from a response body: the
// object is the substring from the first '{' to the last '}'. Responses may
// legitimately carry text around the object.
func ExtractObject(body []byte) ([]byte, bool) {
	i := bytes.IndexByte(body, '{')
	j := bytes.LastIndexByte(body, '}')
	if i < 0 || j < i {
		return nil, false
	}
	return body[i : j+1], true
}

// configFromMap is the single defaulting site for RemoteConfig. Each field
// falls back independently: a zero or missing interval means the default
// week, maintenance defaults to on, test defaults to off. Deployments name
// the test flag either "test_mode" or "test_20s"; semantics are identical.
func configFromMap(m map[string]any) types.RemoteConfig {
	cfg := types.DefaultConfig()
	if v, ok := m["measure_interval_s"].(float64); ok && v > 0 {
		cfg.MeasureIntervalS = uint32(v)
	}
	if v, ok := m["maintenance"].(bool); ok {
		cfg.Maintenance = v
	}
	if v, ok := m["test_mode"].(bool); ok {
		cfg.Test = v
	} else if v, ok := m["test_20s"].(bool); ok {
		cfg.Test = v
	}
	return cfg
}
