package transport

import (
	"net"
	"net/http"
	"time"
)

// Default returns a default http transport with sane timeouts
func Default() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Decorator decorates each request before passing it to the base round tripper
type Decorator struct {
	Base      http.RoundTripper
	Decorator func(req *http.Request) error
}

// RoundTrip implements http.RoundTripper
func (t *Decorator) RoundTrip(req *http.Request) (*http.Response, error) {
	// the request must not be modified, see http.RoundTripper
	req2 := req.Clone(req.Context())

	if err := t.Decorator(req2); err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}

	return t.base().RoundTrip(req2)
}

func (t *Decorator) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// DecorateHeaders returns a decorator that adds the given headers
func DecorateHeaders(headers map[string]string) func(req *http.Request) error {
	return func(req *http.Request) error {
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return nil
	}
}
