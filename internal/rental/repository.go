package rental

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/umerqur/cottagetrip/internal/expense"
	"github.com/umerqur/cottagetrip/internal/expense/split"
)

// Repository handles pinned-rental and rental-payment persistence. The
// operations that touch the expense, its splits and the payment rows
// together always run in one transaction.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new rental repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreatePinned inserts the room's pinned cottage-rental expense with its
// zero splits and unpaid payment rows. The partial unique index on
// (room_id) WHERE is_cottage_rental AND pinned makes the "first" insert
// race-free: the loser's insert conflicts and nothing is written, so the
// caller re-reads the winner's row. Returns false when the rental already
// existed.
func (r *Repository) CreatePinned(ctx context.Context, exp *expense.Expense, shares []split.Share) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (id, room_id, title, amount_cents, currency, paid_by_user_id,
		                      created_by_user_id, is_cottage_rental, pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, TRUE)
		ON CONFLICT (room_id) WHERE is_cottage_rental AND pinned DO NOTHING
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query,
		exp.ID,
		exp.RoomID,
		exp.Title,
		exp.AmountCents,
		exp.Currency,
		exp.PaidByUserID,
		exp.CreatedByUserID,
	).Scan(&exp.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			// Lost the race: a pinned rental already exists for the room.
			return false, nil
		}
		return false, fmt.Errorf("failed to create pinned rental: %w", err)
	}

	if err := insertSplits(ctx, tx, exp.ID, shares); err != nil {
		return false, err
	}

	insertPayment := `
		INSERT INTO rental_payments (room_id, user_id, amount_cents, paid)
		VALUES ($1, $2, $3, FALSE)
	`
	for _, share := range shares {
		if _, err := tx.ExecContext(ctx, insertPayment, exp.RoomID, share.UserID, share.AmountCents); err != nil {
			return false, fmt.Errorf("failed to insert rental payment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// ReplaceSplitsAndResync sets the rental amount, replaces the full split
// set, and re-syncs the payment rows in one transaction. Payment amounts
// are always overwritten from the splits; paid/paid_at survive where a row
// already exists, new members start unpaid, and rows for members no longer
// in the split set are removed.
func (r *Repository) ReplaceSplitsAndResync(ctx context.Context, expenseID, roomID uuid.UUID, amountCents int64, shares []split.Share) error {
	if err := split.ValidateExact(amountCents, shares); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = $2 WHERE id = $1`, expenseID, amountCents); err != nil {
		return fmt.Errorf("failed to update rental amount: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expense_splits WHERE expense_id = $1`, expenseID); err != nil {
		return fmt.Errorf("failed to clear splits: %w", err)
	}

	if err := insertSplits(ctx, tx, expenseID, shares); err != nil {
		return err
	}

	upsertPayment := `
		INSERT INTO rental_payments (room_id, user_id, amount_cents, paid)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (room_id, user_id)
		DO UPDATE SET amount_cents = EXCLUDED.amount_cents
	`
	memberIDs := make([]string, len(shares))
	for i, share := range shares {
		memberIDs[i] = share.UserID.String()
		if _, err := tx.ExecContext(ctx, upsertPayment, roomID, share.UserID, share.AmountCents); err != nil {
			return fmt.Errorf("failed to upsert rental payment: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rental_payments WHERE room_id = $1 AND user_id != ALL($2)`,
		roomID, pq.Array(memberIDs)); err != nil {
		return fmt.Errorf("failed to prune rental payments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPayments retrieves a room's rental payment rows in member join order
func (r *Repository) GetPayments(ctx context.Context, roomID uuid.UUID) ([]*Payment, error) {
	query := `
		SELECT rp.room_id, rp.user_id, rp.amount_cents, rp.paid, rp.paid_at, u.name
		FROM rental_payments rp
		JOIN users u ON rp.user_id = u.id
		LEFT JOIN room_members rm ON rp.room_id = rm.room_id AND rp.user_id = rm.user_id
		WHERE rp.room_id = $1
		ORDER BY rm.joined_at, rp.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rental payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(&p.RoomID, &p.UserID, &p.AmountCents, &p.Paid, &p.PaidAt, &p.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan rental payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, nil
}

// SetPaymentStatus marks a member's rental share paid or unpaid. paid_at is
// set only on the unpaid-to-paid transition and cleared when unpaid; marking
// an already-paid row paid again keeps the original timestamp.
func (r *Repository) SetPaymentStatus(ctx context.Context, roomID, userID uuid.UUID, paid bool) (*Payment, error) {
	query := `
		UPDATE rental_payments
		SET paid = $3,
		    paid_at = CASE
		        WHEN $3 AND NOT paid THEN NOW()
		        WHEN $3 THEN paid_at
		        ELSE NULL
		    END
		WHERE room_id = $1 AND user_id = $2
		RETURNING room_id, user_id, amount_cents, paid, paid_at
	`

	p := &Payment{}
	err := r.db.QueryRowContext(ctx, query, roomID, userID, paid).Scan(
		&p.RoomID,
		&p.UserID,
		&p.AmountCents,
		&p.Paid,
		&p.PaidAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set payment status: %w", err)
	}

	return p, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID uuid.UUID, shares []split.Share) error {
	query := `
		INSERT INTO expense_splits (expense_id, user_id, amount_cents, position)
		VALUES ($1, $2, $3, $4)
	`
	for i, share := range shares {
		if _, err := tx.ExecContext(ctx, query, expenseID, share.UserID, share.AmountCents, i); err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}
