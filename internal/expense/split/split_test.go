package split

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func members(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name       string
		totalCents int64
		members    int
		want       []int64
	}{
		{
			name:       "ten dollars across three members",
			totalCents: 1000,
			members:    3,
			want:       []int64{334, 333, 333},
		},
		{
			name:       "cottage rental across three members",
			totalCents: 234200,
			members:    3,
			want:       []int64{78067, 78067, 78066},
		},
		{
			name:       "divides evenly",
			totalCents: 900,
			members:    3,
			want:       []int64{300, 300, 300},
		},
		{
			name:       "zero total",
			totalCents: 0,
			members:    4,
			want:       []int64{0, 0, 0, 0},
		},
		{
			name:       "single member takes everything",
			totalCents: 1234567,
			members:    1,
			want:       []int64{1234567},
		},
		{
			name:       "total smaller than member count",
			totalCents: 2,
			members:    5,
			want:       []int64{1, 1, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := members(tt.members)
			shares, err := Equal(tt.totalCents, ids)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("expected %d shares, got %d", len(tt.want), len(shares))
			}

			var sum int64
			for i, s := range shares {
				if s.UserID != ids[i] {
					t.Fatalf("share %d assigned to wrong member", i)
				}
				if s.AmountCents != tt.want[i] {
					t.Fatalf("share %d: expected %d cents, got %d", i, tt.want[i], s.AmountCents)
				}
				sum += s.AmountCents
			}
			if sum != tt.totalCents {
				t.Fatalf("shares sum to %d, expected %d", sum, tt.totalCents)
			}
		})
	}
}

func TestEqualSharesDifferByAtMostOneCent(t *testing.T) {
	for _, total := range []int64{0, 1, 7, 99, 100, 101, 999983, 234200} {
		for n := 1; n <= 9; n++ {
			shares, err := Equal(total, members(n))
			if err != nil {
				t.Fatalf("Equal(%d, %d members): %v", total, n, err)
			}
			min, max := shares[0].AmountCents, shares[0].AmountCents
			for _, s := range shares {
				if s.AmountCents < min {
					min = s.AmountCents
				}
				if s.AmountCents > max {
					max = s.AmountCents
				}
			}
			if max-min > 1 {
				t.Fatalf("Equal(%d, %d members): shares differ by %d cents", total, n, max-min)
			}
		}
	}
}

func TestEqualIsDeterministic(t *testing.T) {
	ids := members(7)
	first, err := Equal(1003, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Equal(1003, ids)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: share %d changed from %+v to %+v", i, j, first[j], again[j])
			}
		}
	}
}

func TestEqualErrors(t *testing.T) {
	if _, err := Equal(1000, nil); !errors.Is(err, ErrNoMembers) {
		t.Fatalf("expected ErrNoMembers, got %v", err)
	}
	if _, err := Equal(-1, members(2)); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestValidateExact(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		totalCents int64
		shares     []Share
		wantErr    error
	}{
		{
			name:       "valid",
			totalCents: 500,
			shares:     []Share{{a, 200}, {b, 300}},
		},
		{
			name:       "sum mismatch",
			totalCents: 500,
			shares:     []Share{{a, 200}, {b, 200}},
			wantErr:    ErrSumMismatch,
		},
		{
			name:       "no shares",
			totalCents: 500,
			wantErr:    ErrNoMembers,
		},
		{
			name:       "negative share",
			totalCents: 100,
			shares:     []Share{{a, -50}, {b, 150}},
			wantErr:    ErrNegativeAmount,
		},
		{
			name:       "duplicate member",
			totalCents: 400,
			shares:     []Share{{a, 200}, {a, 200}},
			wantErr:    ErrDuplicateUser,
		},
		{
			name:       "zero share is allowed",
			totalCents: 300,
			shares:     []Share{{a, 0}, {b, 300}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExact(tt.totalCents, tt.shares)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
