package cache

import (
	"testing"
	"time"
)

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"

	if hashIP(ip) != hashIP(ip) {
		t.Error("Same IP should produce same hash")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv4 localhost", "127.0.0.1"},
		{"IPv6 localhost", "::1"},
		{"IPv6 full", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash := hashIP(tt.ip)
			// hashIP uses first 8 bytes of SHA256, encoded as 16 hex chars
			if len(hash) != 16 {
				t.Errorf("expected 16 hex chars, got %d (%s)", len(hash), hash)
			}
		})
	}
}

func TestResetAfter(t *testing.T) {
	t.Parallel()

	// Refill rate of 1 token/second (60 per minute)
	const rate = 1.0

	tests := []struct {
		name      string
		remaining int64
		burst     int
		want      time.Duration
	}{
		{"full bucket", 60, 60, 0},
		{"empty bucket", 0, 60, 60 * time.Second},
		{"half drained", 30, 60, 30 * time.Second},
		{"one consumed", 59, 60, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resetAfter(tt.remaining, tt.burst, rate); got != tt.want {
				t.Errorf("resetAfter(%d, %d, %v) = %v, want %v",
					tt.remaining, tt.burst, rate, got, tt.want)
			}
		})
	}
}

func TestResetAfter_ScalesWithRate(t *testing.T) {
	t.Parallel()

	// 2 tokens/second refills a 20-token deficit in 10 seconds
	got := resetAfter(0, 20, 2.0)
	if got != 10*time.Second {
		t.Errorf("expected 10s, got %v", got)
	}
}

func TestHashIP_DistinctInputs(t *testing.T) {
	t.Parallel()

	if hashIP("10.0.0.1") == hashIP("10.0.0.2") {
		t.Error("distinct IPs should produce distinct hashes")
	}
}
