package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// UpsertWithSplits writes an expense and its full split set in one
// transaction: either the expense row and all split rows land, or nothing
// does. The split set always replaces the previous one wholesale. The sum
// invariant is re-checked here so no caller can persist a split set that
// does not sum to the expense amount.
func (r *Repository) UpsertWithSplits(ctx context.Context, exp *Expense, shares []split.Share) error {
	if err := split.ValidateExact(exp.AmountCents, shares); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (id, room_id, title, amount_cents, currency, paid_by_user_id,
		                      created_by_user_id, receipt_path, is_cottage_rental, pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    amount_cents = EXCLUDED.amount_cents,
		    paid_by_user_id = EXCLUDED.paid_by_user_id,
		    receipt_path = EXCLUDED.receipt_path
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
		exp.ReceiptPath,
		exp.IsCottageRental,
		exp.Pinned,
	).Scan(&exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, exp.ID); err != nil {
		return fmt.Errorf("failed to clear splits: %w", err)
	}

	insertSplit := `
		INSERT INTO expense_splits (expense_id, user_id, amount_cents, position)
		VALUES ($1, $2, $3, $4)
	`
	for i, share := range shares {
		if _, err := tx.ExecContext(ctx, insertSplit, exp.ID, share.UserID, share.AmountCents, i); err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT e.id, e.room_id, e.title, e.amount_cents, e.currency, e.paid_by_user_id,
		       e.created_by_user_id, e.receipt_path, e.is_cottage_rental, e.pinned,
		       e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.paid_by_user_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.RoomID,
		&expense.Title,
		&expense.AmountCents,
		&expense.Currency,
		&expense.PaidByUserID,
		&expense.CreatedByUserID,
		&expense.ReceiptPath,
		&expense.IsCottageRental,
		&expense.Pinned,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves an expense's splits in insertion order.
// The order matters: it is the member ordering the splits were computed
// with, and amount edits recompute over the same ordered set.
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]*Split, error) {
	query := `
		SELECT s.expense_id, s.user_id, s.amount_cents, u.name
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.position
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ExpenseID, &s.UserID, &s.AmountCents, &s.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// ListByRoomID retrieves expenses for a room, newest first, with the pinned
// rental always surfaced on top
func (r *Repository) ListByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE room_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, roomID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.room_id, e.title, e.amount_cents, e.currency, e.paid_by_user_id,
		       e.created_by_user_id, e.receipt_path, e.is_cottage_rental, e.pinned,
		       e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.paid_by_user_id = u.id
		WHERE e.room_id = $1
		ORDER BY e.pinned DESC, e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, roomID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.RoomID,
			&expense.Title,
			&expense.AmountCents,
			&expense.Currency,
			&expense.PaidByUserID,
			&expense.CreatedByUserID,
			&expense.ReceiptPath,
			&expense.IsCottageRental,
			&expense.Pinned,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListWithSplitsByRoomID loads every expense in a room together with its
// splits. This feeds the settlement engine, which always recomputes from
// scratch rather than incrementally.
func (r *Repository) ListWithSplitsByRoomID(ctx context.Context, roomID uuid.UUID) ([]*ExpenseWithSplits, error) {
	query := `
		SELECT e.id, e.room_id, e.title, e.amount_cents, e.currency, e.paid_by_user_id,
		       e.created_by_user_id, e.receipt_path, e.is_cottage_rental, e.pinned, e.created_at
		FROM expenses e
		WHERE e.room_id = $1
		ORDER BY e.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var result []*ExpenseWithSplits
	byID := make(map[uuid.UUID]*ExpenseWithSplits)
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.RoomID,
			&expense.Title,
			&expense.AmountCents,
			&expense.Currency,
			&expense.PaidByUserID,
			&expense.CreatedByUserID,
			&expense.ReceiptPath,
			&expense.IsCottageRental,
			&expense.Pinned,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		ews := &ExpenseWithSplits{Expense: expense}
		result = append(result, ews)
		byID[expense.ID] = ews
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	splitQuery := `
		SELECT s.expense_id, s.user_id, s.amount_cents
		FROM expense_splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.room_id = $1
		ORDER BY s.expense_id, s.position
	`

	splitRows, err := r.db.QueryContext(ctx, splitQuery, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		s := &Split{}
		if err := splitRows.Scan(&s.ExpenseID, &s.UserID, &s.AmountCents); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if ews, ok := byID[s.ExpenseID]; ok {
			ews.Splits = append(ews.Splits, s)
		}
	}

	return result, nil
}

// GetPinnedRental retrieves the room's pinned cottage-rental expense, if any
func (r *Repository) GetPinnedRental(ctx context.Context, roomID uuid.UUID) (*Expense, error) {
	query := `
		SELECT e.id, e.room_id, e.title, e.amount_cents, e.currency, e.paid_by_user_id,
		       e.created_by_user_id, e.receipt_path, e.is_cottage_rental, e.pinned,
		       e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.paid_by_user_id = u.id
		WHERE e.room_id = $1 AND e.is_cottage_rental AND e.pinned
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(
		&expense.ID,
		&expense.RoomID,
		&expense.Title,
		&expense.AmountCents,
		&expense.Currency,
		&expense.PaidByUserID,
		&expense.CreatedByUserID,
		&expense.ReceiptPath,
		&expense.IsCottageRental,
		&expense.Pinned,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pinned rental: %w", err)
	}

	return expense, nil
}

// Delete deletes an expense; splits cascade at the schema level
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
