package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense/split"
)

// SplitType defines how an expense is divided
type SplitType string

const (
	SplitTypeEqual SplitType = "EQUAL"
	SplitTypeExact SplitType = "EXACT"
)

// Expense represents one shared cost in a room. AmountCents is integer
// minor currency units; money is never a float.
type Expense struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"room_id"`
	Title           string    `json:"title"`
	AmountCents     int64     `json:"amount_cents"`
	Currency        string    `json:"currency"`
	PaidByUserID    uuid.UUID `json:"paid_by_user_id"`
	CreatedByUserID uuid.UUID `json:"created_by_user_id"`
	ReceiptPath     *string   `json:"receipt_path,omitempty"`
	IsCottageRental bool      `json:"is_cottage_rental"`
	Pinned          bool      `json:"pinned"`
	CreatedAt       time.Time `json:"created_at"`

	// Populated from JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split is one member's persisted share of an expense. The sum of an
// expense's splits always equals the expense amount exactly.
type Split struct {
	ExpenseID   uuid.UUID `json:"expense_id"`
	UserID      uuid.UUID `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`

	// Populated from JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its split set
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// Shares returns the split set as calculator shares, in row order
func (e *ExpenseWithSplits) Shares() []split.Share {
	shares := make([]split.Share, len(e.Splits))
	for i, s := range e.Splits {
		shares[i] = split.Share{UserID: s.UserID, AmountCents: s.AmountCents}
	}
	return shares
}
