package bunny

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cdn-service/domain/apperror"
	"cdn-service/infrastructure/metrics"
)

const (
	storageService = "bunny-storage"
	streamService  = "bunny-stream"

	defaultTimeout = 15 * time.Second
	// maxErrorBody bounds how much of a failed response ends up in the error message.
	maxErrorBody = 512
)

// baseURL accepts either a bare host or a full URL and returns it without a trailing slash.
func baseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// escapePath escapes every segment of a slash-separated object path.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// do sends req and returns the response when it is 2xx. Any other outcome is an
// UpstreamError and the body is already closed.
func do(client *http.Client, service, op string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(service, op, start, err)
		return nil, &apperror.UpstreamError{Service: service, Op: op, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		upstream := &apperror.UpstreamError{Service: service, Op: op, StatusCode: res.StatusCode, Err: errors.New(msg)}
		metrics.ObserveUpstream(service, op, start, upstream)
		return nil, upstream
	}
	metrics.ObserveUpstream(service, op, start, nil)
	return res, nil
}

// timeoutBody cancels the request context once the body is closed.
type timeoutBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *timeoutBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

func newRequest(ctx context.Context, method, rawURL, accessKey string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	if accessKey != "" {
		req.Header.Set("AccessKey", accessKey)
	}
	return req, nil
}
