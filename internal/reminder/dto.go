package reminder

import "github.com/google/uuid"

// SendReminderRequest represents the request to send a payment reminder.
// ReminderType defaults to RENTAL_SHARE when omitted.
type SendReminderRequest struct {
	ToUserID     uuid.UUID    `json:"to_user_id" validate:"required"`
	ReminderType ReminderType `json:"reminder_type,omitempty" validate:"omitempty,oneof=RENTAL_SHARE EXPENSE_DEBT"`
	AmountCents  int64        `json:"amount_cents,omitempty" validate:"gte=0"`
}

// ReminderResponse represents a sent reminder
type ReminderResponse struct {
	RoomID       uuid.UUID    `json:"room_id"`
	FromUserID   uuid.UUID    `json:"from_user_id"`
	ToUserID     uuid.UUID    `json:"to_user_id"`
	ReminderType ReminderType `json:"reminder_type"`
	SentAt       string       `json:"sent_at"`
}

// CooldownDetails is attached to the conflict response so clients can show
// when the next reminder will be allowed without a follow-up request.
type CooldownDetails struct {
	LastSentAt    string `json:"last_sent_at"`
	NextAllowedAt string `json:"next_allowed_at"`
}

// ToResponse converts a Reminder model to a ReminderResponse DTO
func (r *Reminder) ToResponse() *ReminderResponse {
	return &ReminderResponse{
		RoomID:       r.RoomID,
		FromUserID:   r.FromUserID,
		ToUserID:     r.ToUserID,
		ReminderType: r.ReminderType,
		SentAt:       r.LastSentAt.Format("2006-01-02T15:04:05Z"),
	}
}
