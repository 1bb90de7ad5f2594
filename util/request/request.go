package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// JSONEncoding specifies application/json
	JSONEncoding = map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}

	// AcceptJSON accepting application/json
	AcceptJSON = map[string]string{
		"Accept": "application/json",
	}
)

// StatusError indicates unsuccessful http response
type StatusError struct {
	resp *http.Response
}

// NewStatusError create new StatusError for given response
func NewStatusError(resp *http.Response) *StatusError {
	return &StatusError{resp: resp}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d (%s)", e.resp.StatusCode, http.StatusText(e.resp.StatusCode))
}

// Response returns the response with the unexpected error
func (e *StatusError) Response() *http.Response {
	return e.resp
}

// StatusCode returns the response's status code
func (e *StatusError) StatusCode() int {
	return e.resp.StatusCode
}

// HasStatus returns true if the response's status code matches any of the given codes
func (e *StatusError) HasStatus(codes ...int) bool {
	for _, code := range codes {
		if e.resp.StatusCode == code {
			return true
		}
	}
	return false
}

// ResponseError turns an HTTP status code into an error
func ResponseError(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewStatusError(resp)
	}
	return nil
}

// New builds and executes HTTP request and returns the response
func New(method, uri string, data io.Reader, headers ...map[string]string) (*http.Request, error) {
	req, err := http.NewRequest(method, uri, data)
	if err == nil {
		for _, hdrs := range headers {
			for k, v := range hdrs {
				req.Header.Add(k, v)
			}
		}
	}

	return req, err
}

type errorReader struct {
	err error
}

func (r *errorReader) Read(p []byte) (int, error) {
	return 0, r.err
}

// MarshalJSON marshals JSON into an io.Reader
func MarshalJSON(data interface{}) io.Reader {
	if data == nil {
		return nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return &errorReader{err: err}
	}

	return bytes.NewReader(body)
}

// ReadBody reads HTTP response and returns error on response codes other than HTTP 2xx. It closes the request body after reading.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return []byte{}, err
	}

	if err := ResponseError(resp); err != nil {
		if len(b) > 0 {
			return b, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(b)))
		}
		return b, err
	}

	return b, nil
}

// DecodeJSON reads HTTP response and decodes JSON body if error is nil
func DecodeJSON(resp *http.Response, res interface{}) error {
	if err := ResponseError(resp); err != nil {
		_ = resp.Body.Close()
		return err
	}

	err := json.NewDecoder(resp.Body).Decode(&res)
	_ = resp.Body.Close()

	if errors.Is(err, io.EOF) {
		err = nil
	}

	return err
}
