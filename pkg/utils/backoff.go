package utils

import (
	"math/rand/v2"
	"time"
)

// CalculateExponentialBackoffWithJitter computes a jittered exponential backoff delay.
// - count: Retry attempt number (1-based, e.g., 1 for first retry)
// - base: Base delay (e.g., 500 * time.Millisecond)
// - max: Maximum allowable delay (e.g., 30 * time.Second)
// Returns the calculated duration with jitter.
func CalculateExponentialBackoffWithJitter(count int, base time.Duration, max time.Duration) time.Duration {
	if count <= 0 || base <= 0 {
		return 0
	}

	// Exponential backoff: base * 2^(count-1), capped before shifting overflows
	baseDelay := max
	if count < 32 {
		baseDelay = base << (count - 1)
		if baseDelay <= 0 || baseDelay > max {
			baseDelay = max
		}
	}

	// Add jitter: -12.5% to +12.5% of baseDelay to avoid synchronization
	delay := baseDelay
	if spread := int64(baseDelay / 4); spread > 0 {
		delay += time.Duration(rand.Int64N(spread)) - baseDelay/8
	}

	if delay > max {
		delay = max
	}
	return delay
}
