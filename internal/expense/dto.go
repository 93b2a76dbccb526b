package expense

import (
	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense/split"
)

// CreateExpenseRequest represents the request to create an expense.
// For EQUAL splits the amount is divided across member_ids in room join
// order; for EXACT splits the caller supplies the shares and they must sum
// to amount_cents.
type CreateExpenseRequest struct {
	Title        string        `json:"title" validate:"required,min=1,max=255"`
	AmountCents  int64         `json:"amount_cents" validate:"required,gte=0"`
	PaidByUserID uuid.UUID     `json:"paid_by_user_id,omitempty"`
	ReceiptPath  *string       `json:"receipt_path,omitempty"`
	SplitType    SplitType     `json:"split_type" validate:"required,oneof=EQUAL EXACT"`
	MemberIDs    []uuid.UUID   `json:"member_ids,omitempty"`
	Splits       []split.Share `json:"splits,omitempty"`
}

// UpdateExpenseRequest represents the request to update an expense with a
// full split-set replacement. Splits are never edited independently of the
// whole set, which is what keeps the sum invariant intact.
type UpdateExpenseRequest struct {
	Title        string        `json:"title" validate:"required,min=1,max=255"`
	AmountCents  int64         `json:"amount_cents" validate:"required,gte=0"`
	PaidByUserID uuid.UUID     `json:"paid_by_user_id,omitempty"`
	ReceiptPath  *string       `json:"receipt_path,omitempty"`
	SplitType    SplitType     `json:"split_type" validate:"required,oneof=EQUAL EXACT"`
	MemberIDs    []uuid.UUID   `json:"member_ids,omitempty"`
	Splits       []split.Share `json:"splits,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID              uuid.UUID        `json:"id"`
	RoomID          uuid.UUID        `json:"room_id"`
	Title           string           `json:"title"`
	AmountCents     int64            `json:"amount_cents"`
	Currency        string           `json:"currency"`
	PaidByUserID    uuid.UUID        `json:"paid_by_user_id"`
	PayerName       string           `json:"payer_name,omitempty"`
	CreatedByUserID uuid.UUID        `json:"created_by_user_id"`
	ReceiptPath     *string          `json:"receipt_path,omitempty"`
	IsCottageRental bool             `json:"is_cottage_rental"`
	Pinned          bool             `json:"pinned"`
	CreatedAt       string           `json:"created_at"`
	Splits          []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents one split in an expense response
type SplitResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	AmountCents int64     `json:"amount_cents"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:              e.ID,
		RoomID:          e.RoomID,
		Title:           e.Title,
		AmountCents:     e.AmountCents,
		Currency:        e.Currency,
		PaidByUserID:    e.PaidByUserID,
		PayerName:       e.PayerName,
		CreatedByUserID: e.CreatedByUserID,
		ReceiptPath:     e.ReceiptPath,
		IsCottageRental: e.IsCottageRental,
		Pinned:          e.Pinned,
		CreatedAt:       e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		UserID:      s.UserID,
		UserName:    s.UserName,
		AmountCents: s.AmountCents,
	}
}
