package breach

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caknak/email_check_api/pkg/utils"
)

const (
	DefaultBaseURL   = "https://haveibeenpwned.com/api/v3"
	DefaultUserAgent = "CaKnak Email Security Checker"

	apiKeyHeader = "hibp-api-key"
)

// Fetcher performs one upstream request. *utils.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, req *http.Request) (*utils.FetchResult, error)
}

// Options configures a Checker. Zero values fall back to the defaults above.
type Options struct {
	BaseURL         string
	APIKey          string
	UserAgent       string
	SimulationDelay time.Duration
	Fetcher         Fetcher
}

// Checker queries the breach registry for email addresses. It holds no
// per-request state and is safe for concurrent use.
type Checker struct {
	baseURL         string
	apiKey          string
	userAgent       string
	simulationDelay time.Duration
	fetcher         Fetcher
}

func NewChecker(opts Options) *Checker {
	c := &Checker{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		apiKey:          opts.APIKey,
		userAgent:       opts.UserAgent,
		simulationDelay: opts.SimulationDelay,
		fetcher:         opts.Fetcher,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.simulationDelay < 0 {
		c.simulationDelay = 0
	}
	if c.fetcher == nil {
		c.fetcher = utils.DefaultClient()
	}
	return c
}

// CheckEmail looks email up in the breach registry.
//
// 404 means secure; 200 is parsed into breaches (an unreadable or
// non-array body degrades to at-risk without details); 429 yields
// ErrRateLimited and any other status an *UpstreamError. When the registry
// cannot be reached at all the result is simulated instead of failing.
func (c *Checker) CheckEmail(ctx context.Context, email string) (LookupResult, error) {
	if email == "" {
		return LookupResult{}, ErrInvalidInput
	}
	if c.apiKey == "" {
		return LookupResult{}, ErrConfiguration
	}

	req, err := c.newRequest(email)
	if err != nil {
		return LookupResult{}, err
	}

	res, err := c.fetcher.Fetch(ctx, req)
	var transportErr *utils.TransportError
	if errors.As(err, &transportErr) {
		log.Printf("WARN: breach registry unreachable for %s, using simulation: %v", utils.MaskEmail(email), transportErr)
		return Simulate(ctx, email, c.simulationDelay)
	}
	if res == nil {
		return LookupResult{}, fmt.Errorf("breach registry request: %w", err)
	}

	switch res.StatusCode {
	case http.StatusNotFound:
		return secureResult(), nil
	case http.StatusOK:
		if err != nil {
			log.Printf("ERROR: reading breach payload: %v", err)
			return degradedResult(MessageDetailsUnreadable), nil
		}
		return classify(res.Body), nil
	case http.StatusTooManyRequests:
		return LookupResult{}, ErrRateLimited
	default:
		return LookupResult{}, &UpstreamError{StatusCode: res.StatusCode}
	}
}

func (c *Checker) newRequest(email string) (*http.Request, error) {
	endpoint := c.baseURL + "/breachedaccount/" + url.PathEscape(email) + "?truncateResponse=false"
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building breach registry request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// classify turns a 200 body into a result.
func classify(body []byte) LookupResult {
	breaches, err := ParseBreaches(body)
	switch {
	case errors.Is(err, ErrNotArray):
		log.Printf("ERROR: breach registry returned a non-array payload (%d bytes)", len(body))
		return degradedResult(MessageDetailsUnavailable)
	case err != nil:
		log.Printf("ERROR: %v", err)
		return degradedResult(MessageDetailsUnreadable)
	case len(breaches) == 0:
		return secureResult()
	}
	return atRiskResult(breaches)
}
