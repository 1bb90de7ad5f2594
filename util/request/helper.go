package request

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/cod3gen/zeekr-homeassistant/util/transport"
)

// Timeout is the default request timeout used by the Helper
var Timeout = 10 * time.Second

// Helper provides utility primitives
type Helper struct {
	*http.Client
}

// NewClient creates http client with default transport
func NewClient(log *util.Logger) *http.Client {
	return &http.Client{
		Timeout:   Timeout,
		Transport: NewTripper(log, transport.Default()),
	}
}

// NewHelper creates http helper for simplified PUT GET logic
func NewHelper(log *util.Logger) *Helper {
	return &Helper{
		Client: NewClient(log),
	}
}

// DoBody executes HTTP request and returns the response body
func (r *Helper) DoBody(req *http.Request) ([]byte, error) {
	resp, err := r.Do(req)
	if err != nil {
		return nil, err
	}
	return ReadBody(resp)
}

// GetBody executes HTTP GET request and returns the response body
func (r *Helper) GetBody(url string) ([]byte, error) {
	resp, err := r.Get(url)
	if err != nil {
		return nil, err
	}
	return ReadBody(resp)
}

// DoJSON executes HTTP request and decodes JSON response.
// It returns a StatusError on response codes other than HTTP 2xx.
func (r *Helper) DoJSON(req *http.Request, res interface{}) error {
	resp, err := r.Do(req)
	if err == nil {
		err = DecodeJSON(resp, &res)
	}
	return err
}

// GetJSON executes HTTP GET request and decodes JSON response.
// It returns a StatusError on response codes other than HTTP 2xx.
func (r *Helper) GetJSON(url string, res interface{}) error {
	req, err := New(http.MethodGet, url, nil, AcceptJSON)
	if err == nil {
		err = r.DoJSON(req, &res)
	}
	return err
}

// NewWithContext builds a request bound to ctx
func NewWithContext(ctx context.Context, method, uri string, data io.Reader, headers ...map[string]string) (*http.Request, error) {
	req, err := New(method, uri, data, headers...)
	if err == nil {
		req = req.WithContext(ctx)
	}
	return req, err
}
