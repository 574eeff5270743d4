package nexus

import (
	"net/http"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullHeaders() http.Header {
	h := http.Header{}
	h.Set("x-rl-hourly-limit", "100")
	h.Set("x-rl-hourly-remaining", "96")
	h.Set("x-rl-hourly-reset", "2026-08-30T18:00:00+00:00")
	h.Set("x-rl-daily-limit", "2500")
	h.Set("x-rl-daily-remaining", "2404")
	h.Set("x-rl-daily-reset", "2026-08-31T00:00:00+00:00")
	return h
}

func TestDefaultsSimulateFullQuota(t *testing.T) {
	limits := defaultRateLimits()
	assert.Equal(t, 100, limits.HourlyRemaining)
	assert.Equal(t, 2500, limits.DailyRemaining)
	assert.NoError(t, limits.Allow())
}

func TestRecordHeadersOverwritesEverything(t *testing.T) {
	limits := defaultRateLimits()
	require.NoError(t, limits.RecordHeaders(fullHeaders()))

	assert.Equal(t, 100, limits.HourlyLimit)
	assert.Equal(t, 96, limits.HourlyRemaining)
	assert.Equal(t, 2500, limits.DailyLimit)
	assert.Equal(t, 2404, limits.DailyRemaining)
	assert.Equal(t, time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC), limits.HourlyReset.UTC())
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), limits.DailyReset.UTC())
}

func TestRecordHeadersIgnoresAbsentHeaders(t *testing.T) {
	limits := defaultRateLimits()
	before := limits
	require.NoError(t, limits.RecordHeaders(http.Header{}))
	assert.Equal(t, before.HourlyRemaining, limits.HourlyRemaining)
	assert.Equal(t, before.DailyRemaining, limits.DailyRemaining)
}

func TestRecordHeadersToleratesWhitespace(t *testing.T) {
	limits := defaultRateLimits()
	h := http.Header{}
	h.Set("x-rl-hourly-remaining", " 42 ")
	require.NoError(t, limits.RecordHeaders(h))
	assert.Equal(t, 42, limits.HourlyRemaining)
}

func TestRecordHeadersAlternateTimeLayout(t *testing.T) {
	limits := defaultRateLimits()
	h := http.Header{}
	h.Set("x-rl-hourly-reset", "2026-08-30 18:00:00 +0000")
	require.NoError(t, limits.RecordHeaders(h))
	assert.Equal(t, time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC), limits.HourlyReset.UTC())
}

func TestMalformedCountIsFatal(t *testing.T) {
	limits := defaultRateLimits()
	h := http.Header{}
	h.Set("x-rl-hourly-remaining", "not-a-number")
	assert.Error(t, limits.RecordHeaders(h))
}

func TestMalformedResetIsFatal(t *testing.T) {
	limits := defaultRateLimits()
	h := http.Header{}
	h.Set("x-rl-daily-reset", "sometime tomorrow")
	assert.Error(t, limits.RecordHeaders(h))
}

func TestRemainingClampedToLimit(t *testing.T) {
	limits := defaultRateLimits()
	h := http.Header{}
	h.Set("x-rl-hourly-limit", "100")
	h.Set("x-rl-hourly-remaining", "120")
	require.NoError(t, limits.RecordHeaders(h))
	assert.Equal(t, 100, limits.HourlyRemaining)
}

func TestAllowRefusesExhaustedHourlyWindow(t *testing.T) {
	limits := defaultRateLimits()
	limits.HourlyRemaining = 0

	err := limits.Allow()
	require.Error(t, err)
	var quota *QuotaError
	require.True(t, errors.As(err, &quota))
	assert.Equal(t, "hourly", quota.Window)
	assert.Equal(t, 100, quota.Limit)

	// a refusal mutates nothing; daily stays full
	assert.Equal(t, 2500, limits.DailyRemaining)
}

func TestAllowRefusesExhaustedDailyWindow(t *testing.T) {
	limits := defaultRateLimits()
	limits.DailyRemaining = 0

	err := limits.Allow()
	require.Error(t, err)
	var quota *QuotaError
	require.True(t, errors.As(err, &quota))
	assert.Equal(t, "daily", quota.Window)
}
