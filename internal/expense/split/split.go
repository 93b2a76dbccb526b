package split

import (
	"errors"

	"github.com/google/uuid"
)

// All monetary amounts are integer minor units (cents). Floats are never
// used for money anywhere in this package.

var (
	ErrNoMembers      = errors.New("no members selected")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrSumMismatch    = errors.New("split amounts must sum to the total amount")
	ErrDuplicateUser  = errors.New("duplicate member in split")
)

// Share is one member's portion of an expense
type Share struct {
	UserID      uuid.UUID `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
}

// Equal divides totalCents across memberIDs so the shares sum to the total
// exactly. base = total / n, and the first total%n members (in the given
// order) carry the extra cent. Callers must pass a stable member order so
// repeated recomputations assign the remainder to the same members.
func Equal(totalCents int64, memberIDs []uuid.UUID) ([]Share, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}
	if totalCents < 0 {
		return nil, ErrNegativeAmount
	}

	n := int64(len(memberIDs))
	base := totalCents / n
	remainder := totalCents % n

	shares := make([]Share, len(memberIDs))
	for i, userID := range memberIDs {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares[i] = Share{UserID: userID, AmountCents: amount}
	}

	return shares, nil
}

// ValidateExact checks caller-supplied shares against the invariant that
// splits sum to the expense total, with no duplicate or negative entries.
func ValidateExact(totalCents int64, shares []Share) error {
	if len(shares) == 0 {
		return ErrNoMembers
	}
	if totalCents < 0 {
		return ErrNegativeAmount
	}

	seen := make(map[uuid.UUID]bool, len(shares))
	var sum int64
	for _, s := range shares {
		if s.AmountCents < 0 {
			return ErrNegativeAmount
		}
		if seen[s.UserID] {
			return ErrDuplicateUser
		}
		seen[s.UserID] = true
		sum += s.AmountCents
	}

	if sum != totalCents {
		return ErrSumMismatch
	}
	return nil
}
