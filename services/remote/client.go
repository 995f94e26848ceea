package remote

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// The control core treats HTTPS as a black box: issue a request, get back a
// status, a declared length and a byte stream, or a transport error. TLS and
// the socket layer live in the platform's net stack.

type Response struct {
	Status        int
	ContentLength int64 // -1 when the server did not declare one
	Body          io.ReadCloser
}

type Client interface {
	Get(url string) (*Response, error)
	Post(url, contentType string, body []byte) (*Response, error)
}

// HTTPClient is the production client over the platform net stack.
type HTTPClient struct {
	c *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{c: &http.Client{Timeout: timeout}}
}

func (h *HTTPClient) Get(url string) (*Response, error) {
	resp, err := h.c.Get(url)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status:        resp.StatusCode,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

func (h *HTTPClient) Post(url, contentType string, body []byte) (*Response, error) {
	resp, err := h.c.Post(url, contentType, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Response{
		Status:        resp.StatusCode,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}
