package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateExponentialBackoffWithJitter(t *testing.T) {
	base, max := 100*time.Millisecond, time.Second
	tests := []struct {
		count int
		want  time.Duration
	}{
		{count: 1, want: 100 * time.Millisecond},
		{count: 2, want: 200 * time.Millisecond},
		{count: 3, want: 400 * time.Millisecond},
		{count: 4, want: 800 * time.Millisecond},
	}
	for _, tt := range tests {
		for i := 0; i < 20; i++ {
			got := CalculateExponentialBackoffWithJitter(tt.count, base, max)
			assert.GreaterOrEqual(t, got, tt.want-tt.want/8)
			assert.LessOrEqual(t, got, tt.want+tt.want/8)
		}
	}
}

func TestCalculateExponentialBackoffWithJitter_Capped(t *testing.T) {
	for _, count := range []int{5, 31, 32, 1000} {
		got := CalculateExponentialBackoffWithJitter(count, 100*time.Millisecond, time.Second)
		assert.LessOrEqual(t, got, time.Second)
		assert.GreaterOrEqual(t, got, time.Second-time.Second/8)
	}
}

func TestCalculateExponentialBackoffWithJitter_Zero(t *testing.T) {
	assert.Zero(t, CalculateExponentialBackoffWithJitter(0, time.Second, time.Minute))
	assert.Zero(t, CalculateExponentialBackoffWithJitter(3, 0, time.Minute))
}
