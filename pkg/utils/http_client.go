package utils

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
)

const (
	defaultClientTimeout = 10 * time.Second
	// maxBodyBytes caps how much of an upstream body is buffered.
	maxBodyBytes = 8 << 20
)

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// Client is a thin wrapper around http.Client used for upstream API calls.
// It negotiates gzip and brotli itself and always returns a decoded body.
type Client struct {
	http *http.Client
}

// TransportError means the request never produced an HTTP response:
// DNS failure, refused connection, timeout, TLS failure and the like.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FetchResult encapsulates the results of an HTTP fetch operation.
type FetchResult struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// NewClient creates a client with the given overall request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// DefaultClient returns the process-wide client, creating it on first use.
func DefaultClient() *Client {
	defaultClientOnce.Do(func() {
		defaultClient = NewClient(defaultClientTimeout)
	})
	return defaultClient
}

// Fetch sends req and reads the whole (decoded) body.
//
// A *TransportError is returned when no response was received. When the
// response headers arrived but the body could not be read or decoded, the
// returned FetchResult is non-nil (status and headers set, Body nil) together
// with a non-transport error.
func (c *Client) Fetch(ctx context.Context, req *http.Request) (*FetchResult, error) {
	req = req.WithContext(ctx)
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: redactURL(req.URL), Err: err}
	}
	defer resp.Body.Close()

	result := &FetchResult{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
	}

	body, err := decodeBody(resp)
	if err != nil {
		return result, fmt.Errorf("failed to read response body from %s: %w", redactURL(req.URL), err)
	}
	result.Body = body
	return result, nil
}

func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = io.LimitReader(resp.Body, maxBodyBytes)

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "gzip":
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "br":
		reader = brotli.NewReader(reader)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(reader, maxBodyBytes)); err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return buf.Bytes(), nil
}

// redactURL keeps only scheme and host; paths and queries may carry
// addresses or keys.
func redactURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
