package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository handles reminder cooldown persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new reminder repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CheckAndRecord claims a send slot in one statement. The insert takes the
// slot when no row exists; the conditional update takes it only when the
// cooldown has elapsed. Concurrent callers race on the same row, so exactly
// one of them gets it back and the rest see no row. Returns the recorded
// reminder when the slot was claimed, nil when the cooldown is still active.
func (r *Repository) CheckAndRecord(ctx context.Context, roomID, fromUserID, toUserID uuid.UUID, reminderType ReminderType, cooldown time.Duration) (*Reminder, error) {
	query := `
		INSERT INTO payment_reminders (room_id, from_user_id, to_user_id, reminder_type, last_sent_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (room_id, from_user_id, to_user_id, reminder_type)
		DO UPDATE SET last_sent_at = NOW()
		WHERE payment_reminders.last_sent_at <= NOW() - make_interval(secs => $5)
		RETURNING last_sent_at
	`

	reminder := &Reminder{
		RoomID:       roomID,
		FromUserID:   fromUserID,
		ToUserID:     toUserID,
		ReminderType: reminderType,
	}
	err := r.db.QueryRowContext(ctx, query,
		roomID, fromUserID, toUserID, reminderType, cooldown.Seconds(),
	).Scan(&reminder.LastSentAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to record reminder: %w", err)
	}

	return reminder, nil
}

// GetLastSentAt retrieves the last send time for a reminder key
func (r *Repository) GetLastSentAt(ctx context.Context, roomID, fromUserID, toUserID uuid.UUID, reminderType ReminderType) (*time.Time, error) {
	query := `
		SELECT last_sent_at
		FROM payment_reminders
		WHERE room_id = $1 AND from_user_id = $2 AND to_user_id = $3 AND reminder_type = $4
	`

	var lastSentAt time.Time
	err := r.db.QueryRowContext(ctx, query, roomID, fromUserID, toUserID, reminderType).Scan(&lastSentAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}

	return &lastSentAt, nil
}
