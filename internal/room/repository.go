package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles room data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new room repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new room and its creator as admin in one transaction
func (r *Repository) Create(ctx context.Context, creatorID uuid.UUID, req *CreateRoomRequest) (*Room, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO rooms (id, name, description, currency, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, currency, created_by, created_at
	`

	room := &Room{}
	err = tx.QueryRowContext(ctx, query, uuid.New(), req.Name, req.Description, req.Currency, creatorID).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.Currency,
		&room.CreatedBy,
		&room.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	memberQuery := `
		INSERT INTO room_members (room_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, memberQuery, room.ID, creatorID, MemberRoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to add creator as admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return room, nil
}

// GetByID retrieves a room by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `
		SELECT id, name, description, currency, created_by, created_at
		FROM rooms
		WHERE id = $1
	`

	room := &Room{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.Currency,
		&room.CreatedBy,
		&room.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// ListByUserID retrieves all rooms a user belongs to
func (r *Repository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Room, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM rooms r
		JOIN room_members rm ON r.id = rm.room_id
		WHERE rm.user_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	query := `
		SELECT r.id, r.name, r.description, r.currency, r.created_by, r.created_at
		FROM rooms r
		JOIN room_members rm ON r.id = rm.room_id
		WHERE rm.user_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		room := &Room{}
		if err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Description,
			&room.Currency,
			&room.CreatedBy,
			&room.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, total, nil
}

// Delete removes a room. Members, expenses, splits, rental payments and
// reminders cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
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

// AddMember adds a user to a room
func (r *Repository) AddMember(ctx context.Context, roomID uuid.UUID, req *AddMemberRequest) (*Member, error) {
	role := req.Role
	if role == "" {
		role = MemberRoleMember
	}

	query := `
		INSERT INTO room_members (room_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING room_id, user_id, role, joined_at
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, roomID, req.UserID, role).Scan(
		&member.RoomID,
		&member.UserID,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// GetMembers retrieves all members of a room in joined_at order
func (r *Repository) GetMembers(ctx context.Context, roomID uuid.UUID) ([]*Member, error) {
	query := `
		SELECT rm.room_id, rm.user_id, rm.role, rm.joined_at, u.name, u.email
		FROM room_members rm
		JOIN users u ON rm.user_id = u.id
		WHERE rm.room_id = $1
		ORDER BY rm.joined_at, rm.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(
			&member.RoomID,
			&member.UserID,
			&member.Role,
			&member.JoinedAt,
			&member.Name,
			&member.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// ListMemberIDs returns the room's member IDs in joined_at order. This is
// the stable ordering the split calculator requires: repeated rebalances
// assign the penny remainder to the same members unless membership changes.
func (r *Repository) ListMemberIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM room_members
		WHERE room_id = $1
		ORDER BY joined_at, user_id
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetMember retrieves a specific member of a room
func (r *Repository) GetMember(ctx context.Context, roomID, userID uuid.UUID) (*Member, error) {
	query := `
		SELECT rm.room_id, rm.user_id, rm.role, rm.joined_at, u.name, u.email
		FROM room_members rm
		JOIN users u ON rm.user_id = u.id
		WHERE rm.room_id = $1 AND rm.user_id = $2
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, roomID, userID).Scan(
		&member.RoomID,
		&member.UserID,
		&member.Role,
		&member.JoinedAt,
		&member.Name,
		&member.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// RemoveMember removes a user from a room
func (r *Repository) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM room_members WHERE room_id = $1 AND user_id = $2`, roomID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
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
