package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this room")
	ErrNotMember           = errors.New("not a member of this room")
	ErrNotAdmin            = errors.New("only the room admin can perform this action")
	ErrEmptyName           = errors.New("room name is required")
	ErrAdminSelfRemove     = errors.New("the room admin cannot remove themselves")
)

// Service handles room business logic
type Service struct {
	repo *Repository
}

// NewService creates a new room service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new room with the creator as admin
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, req *CreateRoomRequest) (*Room, error) {
	if req.Name == "" {
		return nil, ErrEmptyName
	}
	if req.Currency == "" {
		req.Currency = "EUR"
	}

	return s.repo.Create(ctx, creatorID, req)
}

// GetByIDWithMembers retrieves a room with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id uuid.UUID) (*Room, []*Member, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if room == nil {
		return nil, nil, ErrRoomNotFound
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return room, members, nil
}

// ListByUserID retrieves all rooms for a user
func (s *Service) ListByUserID(ctx context.Context, userID uuid.UUID, page, perPage int) ([]*Room, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Delete removes a room. Admin only.
func (s *Service) Delete(ctx context.Context, roomID, userID uuid.UUID) error {
	if err := s.RequireAdmin(ctx, roomID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}

// AddMember adds a user to a room. Any member can add others.
func (s *Service) AddMember(ctx context.Context, roomID, addedBy uuid.UUID, req *AddMemberRequest) (*Member, error) {
	if err := s.RequireMember(ctx, roomID, addedBy); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMember(ctx, roomID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, roomID, req)
}

// GetMembers retrieves all members of a room
func (s *Service) GetMembers(ctx context.Context, roomID, userID uuid.UUID) ([]*Member, error) {
	if err := s.RequireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetMembers(ctx, roomID)
}

// ListMemberIDs returns member IDs in the stable split ordering
func (s *Service) ListMemberIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListMemberIDs(ctx, roomID)
}

// RemoveMember removes a user from a room. Admin only, and the admin
// cannot remove themselves.
func (s *Service) RemoveMember(ctx context.Context, roomID, removedBy, userID uuid.UUID) error {
	if err := s.RequireAdmin(ctx, roomID, removedBy); err != nil {
		return err
	}
	if removedBy == userID {
		return ErrAdminSelfRemove
	}

	if err := s.repo.RemoveMember(ctx, roomID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

// RequireMember returns ErrNotMember unless userID belongs to the room
func (s *Service) RequireMember(ctx context.Context, roomID, userID uuid.UUID) error {
	member, err := s.repo.GetMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	return nil
}

// RequireAdmin returns ErrNotAdmin unless userID is an admin of the room
func (s *Service) RequireAdmin(ctx context.Context, roomID, userID uuid.UUID) error {
	member, err := s.repo.GetMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	if member.Role != MemberRoleAdmin {
		return ErrNotAdmin
	}
	return nil
}

// AdminID returns the room's admin user ID (the pinned rental is paid-by
// the admin when first created).
func (s *Service) AdminID(ctx context.Context, roomID uuid.UUID) (uuid.UUID, error) {
	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return uuid.Nil, err
	}
	if room == nil {
		return uuid.Nil, ErrRoomNotFound
	}
	return room.CreatedBy, nil
}

// GetByID retrieves a room by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}
