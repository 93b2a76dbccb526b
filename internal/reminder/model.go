package reminder

import (
	"time"

	"github.com/google/uuid"
)

// ReminderType distinguishes what a reminder is nudging about
type ReminderType string

const (
	// TypeRentalShare nudges a member about their unpaid cottage-rental share
	TypeRentalShare ReminderType = "RENTAL_SHARE"
	// TypeExpenseDebt nudges a member about a settlement transfer they owe
	TypeExpenseDebt ReminderType = "EXPENSE_DEBT"
)

// Reminder records the last send per (room, sender, recipient, type). The
// cooldown gate reads and writes this single row; there is no send history.
type Reminder struct {
	RoomID       uuid.UUID    `json:"room_id"`
	FromUserID   uuid.UUID    `json:"from_user_id"`
	ToUserID     uuid.UUID    `json:"to_user_id"`
	ReminderType ReminderType `json:"reminder_type"`
	LastSentAt   time.Time    `json:"last_sent_at"`
}
