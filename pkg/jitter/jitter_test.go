package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		name    string
		base    time.Duration
		max     time.Duration
		attempt int
		want    time.Duration
	}{
		{"first attempt", 100 * time.Millisecond, time.Second, 0, 100 * time.Millisecond},
		{"doubles", 100 * time.Millisecond, time.Second, 3, 800 * time.Millisecond},
		{"capped", 100 * time.Millisecond, time.Second, 10, time.Second},
		{"base above max", 2 * time.Second, time.Second, 0, time.Second},
		{"no max", time.Millisecond, 0, 4, 16 * time.Millisecond},
		{"zero base", 0, time.Second, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backoff(tt.base, tt.max, tt.attempt))
		})
	}
}

func TestExponentialBackoff_WithinJitterRange(t *testing.T) {
	for attempt := range 5 {
		want := backoff(10*time.Millisecond, 100*time.Millisecond, attempt)
		got := ExponentialBackoff(10*time.Millisecond, 100*time.Millisecond, attempt, DefaultJitter)

		assert.GreaterOrEqual(t, got, want)
		assert.LessOrEqual(t, got, want+want/2)
	}
}

func TestApply(t *testing.T) {
	assert.Equal(t, time.Second, apply(time.Second, 0, 0.9))
	assert.Equal(t, 1500*time.Millisecond, apply(time.Second, 0.5, 1))
	assert.Equal(t, 1250*time.Millisecond, apply(time.Second, 0.5, 0.5))
}
