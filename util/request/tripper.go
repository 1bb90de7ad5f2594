package request

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cod3gen/zeekr-homeassistant/util"
)

var LogHeaders bool

// Tripper is a http.RoundTripper that logs requests and responses at TRACE level
type Tripper struct {
	log  *util.Logger
	base http.RoundTripper
}

// NewTripper creates a logging round tripper
func NewTripper(log *util.Logger, base http.RoundTripper) http.RoundTripper {
	return &Tripper{
		log:  log,
		base: base,
	}
}

func dump(name string, h http.Header, body []byte) string {
	var b strings.Builder
	b.WriteString(name)

	if LogHeaders {
		for k, v := range h {
			fmt.Fprintf(&b, "\n%s: %s", k, strings.Join(v, ", "))
		}
	}

	if len(body) > 0 {
		b.WriteString("\n")
		b.Write(bytes.TrimSpace(body))
	}

	return b.String()
}

// RoundTrip implements http.RoundTripper
func (r *Tripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var reqBody []byte
	if req.Body != nil && req.GetBody != nil {
		if rc, err := req.GetBody(); err == nil {
			reqBody, _ = io.ReadAll(rc)
			rc.Close()
		}
	}

	r.log.TRACE.Println(dump(fmt.Sprintf("%s %s", req.Method, req.URL.String()), req.Header, reqBody))

	resp, err := r.base.RoundTrip(req)
	if err != nil {
		r.log.TRACE.Printf("%s %s: %v", req.Method, req.URL.String(), err)
		return resp, err
	}

	if resp.Body != nil {
		body, rerr := io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))

		if rerr == nil {
			r.log.TRACE.Println(dump(resp.Status, resp.Header, body))
		}
	}

	return resp, nil
}
