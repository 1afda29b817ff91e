// ABOUTME: Tests for exponential backoff calculation
// ABOUTME: Verifies growth, jitter bounds, and the 30s cap
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	if d := CalculateBackoff(time.Second, 0); d != 0 {
		t.Errorf("CalculateBackoff(1s, 0) = %v, want 0", d)
	}
	if d := CalculateBackoff(time.Second, -5); d != 0 {
		t.Errorf("CalculateBackoff(1s, -5) = %v, want 0", d)
	}
}

func TestCalculateBackoff_ZeroBaseDelay(t *testing.T) {
	// OPENAI_RETRY_DELAY=0s is a valid configuration; the jitter range is
	// empty then and must not be fed to the random source.
	for _, attempt := range []int{1, 2, 5} {
		if d := CalculateBackoff(0, attempt); d != 0 {
			t.Errorf("CalculateBackoff(0, %d) = %v, want 0", attempt, d)
		}
	}
	if d := CalculateBackoff(time.Nanosecond, 1); d < 0 || d > 3*time.Nanosecond {
		t.Errorf("CalculateBackoff(1ns, 1) = %v, want tiny non-negative delay", d)
	}
}

func TestCalculateBackoff_Growth(t *testing.T) {
	base := 100 * time.Millisecond

	// With +/-25% jitter, attempt 1 is in [150ms, 250ms] and attempt 2 in [300ms, 500ms]
	d1 := CalculateBackoff(base, 1)
	if d1 < 150*time.Millisecond || d1 > 250*time.Millisecond {
		t.Errorf("attempt 1 backoff = %v, want within [150ms, 250ms]", d1)
	}

	d2 := CalculateBackoff(base, 2)
	if d2 < 300*time.Millisecond || d2 > 500*time.Millisecond {
		t.Errorf("attempt 2 backoff = %v, want within [300ms, 500ms]", d2)
	}
}

func TestCalculateBackoff_Cap(t *testing.T) {
	// Huge attempt counts must not overflow and must respect the 30s cap (+25% jitter)
	for _, attempt := range []int{20, 30, 100} {
		d := CalculateBackoff(time.Second, attempt)
		if d <= 0 {
			t.Errorf("attempt %d: backoff = %v, want positive", attempt, d)
		}
		if d > 38*time.Second {
			t.Errorf("attempt %d: backoff = %v, exceeds cap with jitter", attempt, d)
		}
	}
}
