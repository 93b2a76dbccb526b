package database

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables and indexes if they do not exist. The
// partial unique index on expenses is what makes "at most one pinned
// cottage rental per room" a database guarantee rather than a code path.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			avatar_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS rooms (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT,
			currency TEXT NOT NULL DEFAULT 'EUR',
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS room_members (
			room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id),
			role TEXT NOT NULL DEFAULT 'MEMBER',
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (room_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
			currency TEXT NOT NULL,
			paid_by_user_id UUID NOT NULL REFERENCES users(id),
			created_by_user_id UUID NOT NULL REFERENCES users(id),
			receipt_path TEXT,
			is_cottage_rental BOOLEAN NOT NULL DEFAULT FALSE,
			pinned BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS expenses_pinned_rental_idx
			ON expenses (room_id) WHERE is_cottage_rental AND pinned;

		CREATE TABLE IF NOT EXISTS expense_splits (
			expense_id UUID NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id),
			amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
			position INT NOT NULL DEFAULT 0,
			PRIMARY KEY (expense_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS rental_payments (
			room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id),
			amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at TIMESTAMPTZ,
			PRIMARY KEY (room_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS payment_reminders (
			room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			from_user_id UUID NOT NULL REFERENCES users(id),
			to_user_id UUID NOT NULL REFERENCES users(id),
			reminder_type TEXT NOT NULL,
			last_sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (room_id, from_user_id, to_user_id, reminder_type)
		);
	`); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}
