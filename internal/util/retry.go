// ABOUTME: Retry utilities for API calls with exponential backoff
// ABOUTME: Shared by the LLM client for consistent retry behavior
package util

import (
	"math/rand/v2"
	"time"
)

// Backoff returns the delay before the given retry attempt: base doubled
// per attempt with up to 25% random jitter, capped at 30 seconds.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	delay := base * time.Duration(1<<uint(attempt))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
