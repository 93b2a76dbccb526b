package balance

import "github.com/google/uuid"

// MemberBalance is one member's net position in a room.
// Positive net_cents means the member owes money; negative means they are
// owed; zero means settled.
type MemberBalance struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name,omitempty"`
	NetCents int64     `json:"net_cents"`
}

// TransferSuggestion is one settlement transfer decorated with names
type TransferSuggestion struct {
	FromUserID  uuid.UUID `json:"from_user_id"`
	FromName    string    `json:"from_name,omitempty"`
	ToUserID    uuid.UUID `json:"to_user_id"`
	ToName      string    `json:"to_name,omitempty"`
	AmountCents int64     `json:"amount_cents"`
}

// RoomBalanceSummary is returned for GET /rooms/{id}/balances
type RoomBalanceSummary struct {
	RoomID          uuid.UUID            `json:"room_id"`
	Currency        string               `json:"currency"`
	TotalSpentCents int64                `json:"total_spent_cents"`
	Balances        []MemberBalance      `json:"balances"`
	Transfers       []TransferSuggestion `json:"transfers"`
}
