package rental

import (
	"github.com/umerqur/cottagetrip/internal/expense"
)

// SetAmountRequest represents the request to set the total cottage cost
type SetAmountRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"gte=0"`
}

// SetPaymentStatusRequest represents the request to mark a member's rental
// share paid or unpaid
type SetPaymentStatusRequest struct {
	Paid bool `json:"paid"`
}

// RentalResponse is the pinned rental expense with its splits and each
// member's settlement status
type RentalResponse struct {
	Expense  *expense.ExpenseResponse `json:"expense"`
	Payments []*Payment               `json:"payments"`
}
