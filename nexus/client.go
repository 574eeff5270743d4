// Package nexus is the HTTP client for the Nexus Mods public API. It owns
// authentication, rate-limit bookkeeping, conditional GETs, and the mapping
// from transport outcomes onto a typed error taxonomy. Callers above this
// package never see raw HTTP.
package nexus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ceejbot/modcache/logger"
)

// BaseURL is where the Nexus lives.
const BaseURL = "https://api.nexusmods.com"

// UserAgent identifies this client to the Nexus, as their API docs request.
const UserAgent = "modcache: github.com/ceejbot/modcache"

// DefaultTimeout bounds a full request/response exchange. The Nexus can be
// slow to first byte on large mod lists.
const DefaultTimeout = 50 * time.Second

// Client wraps the Nexus API so nobody else has to think about rate
// limiting. Not safe for concurrent use; the CLI never issues concurrent
// requests.
type Client struct {
	http   *http.Client
	base   string
	apikey string
	limits RateLimits
	log    logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client somewhere other than the production Nexus.
// Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a client for the given API key.
func New(apikey string, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{Timeout: DefaultTimeout},
		base:   BaseURL,
		apikey: apikey,
		limits: defaultRateLimits(),
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Limits returns a copy of the current quota state.
func (c *Client) Limits() RateLimits {
	return c.limits
}

// do gates the request on the local quota, issues it, and unconditionally
// feeds rate-limit headers back into the limiter. These side effects happen
// regardless of the logical success of the call.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limits.Allow(); err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.apikey)
	req.Header.Set("user-agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "transport failure for %s", req.URL.Path)
	}
	if err := c.limits.RecordHeaders(resp.Header); err != nil {
		resp.Body.Close()
		return nil, err
	}
	c.log.Trace("%s %s -> %d (remaining %d/hr %d/day)",
		req.Method, req.URL.Path, resp.StatusCode,
		c.limits.HourlyRemaining, c.limits.DailyRemaining)
	return resp, nil
}

// Get fetches path and decodes the JSON body into T. When etag is non-empty
// the request is conditional: a 304 yields (nil, etag, nil), meaning the
// caller's copy is still current. A 200 yields the record plus the fresh
// ETag from the response.
func Get[T any](ctx context.Context, c *Client, path string, etag string) (*T, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "building request for %s", path)
	}
	if etag != "" {
		req.Header.Set("if-none-match", etag)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	newEtag := resp.Header.Get("etag")
	if newEtag == "" {
		newEtag = etag
	}

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return nil, etag, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, newEtag, ErrRateLimited
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, newEtag, errors.Wrapf(err, "reading response from %s", path)
		}
		var record T
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, newEtag, &DecodeError{URL: path, Err: err}
		}
		return &record, newEtag, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, newEtag, &RemoteError{Status: resp.StatusCode, Body: string(body)}
	}
}

// Form issues a POST or DELETE with a form-encoded body and decodes the
// JSON response into T. Tracking and endorsement mutations use this.
func Form[T any](ctx context.Context, c *Client, method, path string, form url.Values) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", path)
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return nil, ErrRateLimited
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "reading response from %s", path)
		}
		var record T
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, &DecodeError{URL: path, Err: err}
		}
		return &record, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, &RemoteError{Status: resp.StatusCode, Body: string(body)}
	}
}

// TrackingResponse is the Nexus's answer to track/untrack requests.
type TrackingResponse struct {
	Message string `json:"message"`
}

// EndorseResponse is the Nexus's answer to endorse/abstain requests.
type EndorseResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Track adds a mod to the authenticated user's tracking list.
func (c *Client) Track(ctx context.Context, domain string, modID int64) (*TrackingResponse, error) {
	form := url.Values{
		"domain_name": {domain},
		"mod_id":      {strconv.FormatInt(modID, 10)},
	}
	return Form[TrackingResponse](ctx, c, http.MethodPost, "/v1/user/tracked_mods.json", form)
}

// Untrack removes a mod from the tracking list.
func (c *Client) Untrack(ctx context.Context, domain string, modID int64) (*TrackingResponse, error) {
	form := url.Values{
		"domain_name": {domain},
		"mod_id":      {strconv.FormatInt(modID, 10)},
	}
	return Form[TrackingResponse](ctx, c, http.MethodDelete, "/v1/user/tracked_mods.json", form)
}

// Endorse records an endorsement for a mod.
func (c *Client) Endorse(ctx context.Context, domain string, modID int64, version string) (*EndorseResponse, error) {
	form := url.Values{"version": {version}}
	path := "/v1/games/" + domain + "/mods/" + strconv.FormatInt(modID, 10) + "/endorse.json"
	return Form[EndorseResponse](ctx, c, http.MethodPost, path, form)
}

// Abstain records a refusal to endorse a mod.
func (c *Client) Abstain(ctx context.Context, domain string, modID int64, version string) (*EndorseResponse, error) {
	form := url.Values{"version": {version}}
	path := "/v1/games/" + domain + "/mods/" + strconv.FormatInt(modID, 10) + "/abstain.json"
	return Form[EndorseResponse](ctx, c, http.MethodPost, path, form)
}
