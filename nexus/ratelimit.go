package nexus

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// RateLimits tracks the hourly and daily request quotas the Nexus reports in
// response headers. State is process-lifetime and never persisted. The
// server is authoritative: every response carrying quota headers overwrites
// these fields unconditionally.
type RateLimits struct {
	HourlyLimit     int
	HourlyRemaining int
	HourlyReset     time.Time
	DailyLimit      int
	DailyRemaining  int
	DailyReset      time.Time
}

// defaultRateLimits simulates a full quota until the first response teaches
// us better. The numbers match the limits the Nexus documents.
func defaultRateLimits() RateLimits {
	now := time.Now()
	return RateLimits{
		HourlyLimit:     100,
		HourlyRemaining: 100,
		HourlyReset:     now.Add(time.Hour),
		DailyLimit:      2500,
		DailyRemaining:  2500,
		DailyReset:      now.Add(24 * time.Hour),
	}
}

// Allow reports whether another request may be issued. When a window is
// exhausted it returns a QuotaError naming the window and its reset time,
// and the caller must not touch the network.
func (r *RateLimits) Allow() error {
	if r.HourlyRemaining < 1 {
		return &QuotaError{Window: "hourly", Limit: r.HourlyLimit, Reset: r.HourlyReset}
	}
	if r.DailyRemaining < 1 {
		return &QuotaError{Window: "daily", Limit: r.DailyLimit, Reset: r.DailyReset}
	}
	return nil
}

// RecordHeaders updates quota state from a response. Parse failures are
// returned as errors rather than ignored: a misunderstood quota contract
// risks violating the service's limits.
func (r *RateLimits) RecordHeaders(h http.Header) error {
	if err := recordCount(h, "x-rl-hourly-limit", &r.HourlyLimit); err != nil {
		return err
	}
	if err := recordCount(h, "x-rl-hourly-remaining", &r.HourlyRemaining); err != nil {
		return err
	}
	if err := recordTime(h, "x-rl-hourly-reset", &r.HourlyReset); err != nil {
		return err
	}
	if err := recordCount(h, "x-rl-daily-limit", &r.DailyLimit); err != nil {
		return err
	}
	if err := recordCount(h, "x-rl-daily-remaining", &r.DailyRemaining); err != nil {
		return err
	}
	if err := recordTime(h, "x-rl-daily-reset", &r.DailyReset); err != nil {
		return err
	}

	// remaining <= limit always holds, even if the server contradicts itself
	if r.HourlyRemaining > r.HourlyLimit {
		r.HourlyRemaining = r.HourlyLimit
	}
	if r.DailyRemaining > r.DailyLimit {
		r.DailyRemaining = r.DailyLimit
	}
	return nil
}

func recordCount(h http.Header, name string, dest *int) error {
	v := h.Get(name)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return errors.Wrapf(err, "malformed %s header %q", name, v)
	}
	*dest = parsed
	return nil
}

// resetTimeLayouts covers the datetime shapes the Nexus has used for reset
// headers over time.
var resetTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 -0700",
}

func recordTime(h http.Header, name string, dest *time.Time) error {
	v := h.Get(name)
	if v == "" {
		return nil
	}
	v = strings.TrimSpace(v)
	for _, layout := range resetTimeLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			*dest = parsed
			return nil
		}
	}
	return errors.Newf("malformed %s header %q", name, v)
}
