package ghclient

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ErrRateLimited is returned when the GitHub API quota is exhausted.
// There is no back-off: a limited call degrades to "no data" like any
// other transport failure.
var ErrRateLimited = errors.New("GitHub API rate limit exceeded")

// RateLimitLowWatermark is the remaining-quota level below which a
// warning is logged.
const RateLimitLowWatermark = 100

// RateLimitState tracks the global rate limit state observed from
// response headers.
type RateLimitState struct {
	mu        sync.RWMutex
	limited   bool
	resetAt   time.Time
	remaining int
	limit     int
}

var globalRateLimitState = &RateLimitState{}

// IsLimited returns true if we are currently rate limited.
func (s *RateLimitState) IsLimited() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.limited {
		return false
	}
	// Quota may have reset since we were limited.
	return time.Now().Before(s.resetAt)
}

// SetLimited sets the rate limit state.
func (s *RateLimitState) SetLimited(limited bool, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limited = limited
	s.resetAt = resetAt
}

// Update records the quota observed on a response.
func (s *RateLimitState) Update(remaining, limit int, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = remaining
	s.limit = limit
	s.resetAt = resetAt
	if remaining == 0 {
		s.limited = true
	}
}

// Status returns the current rate limit status.
func (s *RateLimitState) Status() (remaining, limit int, resetAt time.Time, limited bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remaining, s.limit, s.resetAt, s.limited && time.Now().Before(s.resetAt)
}

// IsRateLimited reports whether the global quota is currently exhausted.
func IsRateLimited() bool {
	return globalRateLimitState.IsLimited()
}

// GetRateLimitStatus returns the global rate limit status.
func GetRateLimitStatus() (remaining, limit int, resetAt time.Time, limited bool) {
	return globalRateLimitState.Status()
}

// parseRateLimitHeaders extracts rate limit info from response headers.
func parseRateLimitHeaders(resp *http.Response) (remaining, limit int, resetAt time.Time) {
	remaining = -1
	limit = -1

	if remainingStr := resp.Header.Get("X-RateLimit-Remaining"); remainingStr != "" {
		if rem, err := strconv.Atoi(remainingStr); err == nil {
			remaining = rem
		}
	}

	if limitStr := resp.Header.Get("X-RateLimit-Limit"); limitStr != "" {
		if lim, err := strconv.Atoi(limitStr); err == nil {
			limit = lim
		}
	}

	if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
		if resetTime, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			resetAt = time.Unix(resetTime, 0)
		}
	}

	return remaining, limit, resetAt
}
