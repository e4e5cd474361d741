package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/pkg/retry"
)

// maxErrorBody bounds how much of a failed response is kept as detail.
const maxErrorBody = 4 << 10

// HTTPError is a non-2xx answer from the service. Body carries the detail
// the server sent, which is what the user sees.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: http %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Temporary reports whether a later identical request may succeed.
func (e *HTTPError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

type baseClient struct {
	client  *http.Client
	baseURL string
	retrier *retry.Retrier
}

func newBaseClient(baseURL string, timeout time.Duration) baseClient {
	return baseClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		retrier: retry.NewDefaultRetrier(),
	}
}

func (b *baseClient) doRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	target := b.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", core.AppUserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}

// call performs the request and decodes a 2xx JSON body into out (if non-nil).
func (b *baseClient) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := b.doRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(detail)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// get retries transient failures. Only idempotent reads go through here;
// posts are sent once.
func (b *baseClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return b.retrier.Do(ctx, func(ctx context.Context) error {
		err := b.call(ctx, http.MethodGet, path, query, nil, out)
		if err == nil || transient(err) {
			return err
		}
		return retry.Permanent(err)
	})
}

func transient(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	// timeouts are final
	var urlErr *url.Error
	return errors.As(err, &urlErr) && !urlErr.Timeout() && !errors.Is(err, context.Canceled)
}
