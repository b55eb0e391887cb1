// Package httpx holds the request plumbing shared by the geocoding and routing
// adapters: JSON requests, status checking and failure classification.
package httpx

import (
	"context"
	"delivery-route-planner/internal/domain"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Unwrap makes every status failure match domain.ErrLookupFailed.
func (e *StatusError) Unwrap() error { return domain.ErrLookupFailed }

// NewRequest builds a request that accepts JSON and sets the given headers.
func NewRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
	headers map[string]string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends req once. Transport errors are wrapped with domain.ErrLookupFailed and
// non-2xx replies come back as *StatusError with the body already closed.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", req.Method, req.URL.Path, domain.ErrLookupFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// DoJSON sends req once and decodes a successful JSON body into out.
func DoJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := Do(client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w: %v", req.URL.Path, domain.ErrLookupFailed, err)
	}
	return nil
}
