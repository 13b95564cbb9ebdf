// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an unexpected response body ends up in a StatusError.
const maxErrorBody = 512

// StatusError is returned when the server answers with a status code other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("'%s' returned HTTP status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("'%s' returned HTTP status code: %d (%s)", e.URL, e.StatusCode, e.Body)
}

// Doer performs requests that are expected to answer 200 OK.
type Doer struct {
	client *http.Client
}

// DoHTTP wraps client into a Doer.
func DoHTTP(client *http.Client) *Doer {
	return &Doer{client: client}
}

// Request performs req and hands the response body to assign.
func (d *Doer) Request(req *http.Request, assign func(body io.Reader) error) error {
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("error on HTTP request '%s': %w", req.URL, err)
	}
	defer CloseBody(resp)

	if resp.StatusCode != http.StatusOK {
		bs, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(bs)),
		}
	}

	if assign == nil {
		return nil
	}
	return assign(resp.Body)
}

// RequestJSON performs req and decodes the JSON response body into v.
func (d *Doer) RequestJSON(req *http.Request, v any) error {
	return d.Request(req, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return fmt.Errorf("error on decoding response from '%s': %w", req.URL, err)
		}
		return nil
	})
}

// RequestBytes performs req and returns the whole response body.
func (d *Doer) RequestBytes(req *http.Request) ([]byte, error) {
	var bs []byte
	err := d.Request(req, func(body io.Reader) error {
		var err error
		if bs, err = io.ReadAll(body); err != nil {
			return fmt.Errorf("error on reading response from '%s': %w", req.URL, err)
		}
		return nil
	})
	return bs, err
}

// CloseBody drains and closes the response body so the connection can be reused.
func CloseBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
