package reminder

import (
	"testing"
	"time"
)

func TestCanSend(t *testing.T) {
	lastSent := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lastSentAt *time.Time
		now        time.Time
		want       bool
	}{
		{
			name:       "never sent",
			lastSentAt: nil,
			now:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want:       true,
		},
		{
			name:       "three days after is inside the cooldown",
			lastSentAt: &lastSent,
			now:        time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			want:       false,
		},
		{
			name:       "just past five days",
			lastSentAt: &lastSent,
			now:        time.Date(2024, 1, 6, 1, 0, 0, 0, time.UTC),
			want:       true,
		},
		{
			name:       "exactly five days is allowed",
			lastSentAt: &lastSent,
			now:        time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
			want:       true,
		},
		{
			name:       "one second short of five days",
			lastSentAt: &lastSent,
			now:        time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC),
			want:       false,
		},
		{
			name:       "same instant as last send",
			lastSentAt: &lastSent,
			now:        lastSent,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanSend(tt.lastSentAt, tt.now, DefaultCooldown)
			if got != tt.want {
				t.Fatalf("CanSend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextAllowedAt(t *testing.T) {
	lastSent := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)
	want := time.Date(2024, 1, 6, 12, 30, 0, 0, time.UTC)

	got := NextAllowedAt(lastSent, DefaultCooldown)
	if !got.Equal(want) {
		t.Fatalf("NextAllowedAt() = %v, want %v", got, want)
	}

	if !CanSend(&lastSent, got, DefaultCooldown) {
		t.Fatalf("expected sending to be allowed at the next-allowed instant")
	}
}
