package expense

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense/split"
	"github.com/umerqur/cottagetrip/internal/room"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrReceiptRequired = errors.New("a receipt is required for this expense")
	ErrPinnedRental    = errors.New("the pinned cottage rental is managed through the rental endpoints")
	ErrInvalidSplit    = errors.New("split_type must be EQUAL with member_ids or EXACT with splits")
	ErrNotAuthorized   = errors.New("only the payer, creator or room admin can modify this expense")
	ErrEmptyTitle      = errors.New("title is required")
)

// BalanceCache invalidates cached balance summaries when a room's expenses
// change. A nil cache is a no-op.
type BalanceCache interface {
	Invalidate(ctx context.Context, roomID uuid.UUID)
}

// Service handles expense business logic
type Service struct {
	repo  *Repository
	rooms *room.Service
	cache BalanceCache
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, rooms *room.Service, cache BalanceCache) *Service {
	return &Service{
		repo:  repo,
		rooms: rooms,
		cache: cache,
	}
}

// Create creates an expense with its splits in one atomic write
func (s *Service) Create(ctx context.Context, roomID, userID uuid.UUID, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	if err := s.rooms.RequireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, ErrEmptyTitle
	}
	if req.AmountCents < 0 {
		return nil, split.ErrNegativeAmount
	}
	// UI policy: regular expenses carry a receipt; only the pinned rental
	// is exempt, and it is not created through this path.
	if req.ReceiptPath == nil || *req.ReceiptPath == "" {
		return nil, ErrReceiptRequired
	}

	shares, err := s.resolveShares(req.AmountCents, req.SplitType, req.MemberIDs, req.Splits)
	if err != nil {
		return nil, err
	}

	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	paidBy := req.PaidByUserID
	if paidBy == uuid.Nil {
		paidBy = userID
	}

	exp := &Expense{
		ID:              uuid.New(),
		RoomID:          roomID,
		Title:           req.Title,
		AmountCents:     req.AmountCents,
		Currency:        rm.Currency,
		PaidByUserID:    paidBy,
		CreatedByUserID: userID,
		ReceiptPath:     req.ReceiptPath,
	}

	if err := s.repo.UpsertWithSplits(ctx, exp, shares); err != nil {
		return nil, err
	}

	s.invalidate(ctx, roomID)
	return s.GetByID(ctx, exp.ID)
}

// GetByID retrieves an expense with its splits
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByRoomID retrieves expenses for a room
func (s *Service) ListByRoomID(ctx context.Context, roomID, userID uuid.UUID, page, perPage int) ([]*Expense, int, error) {
	if err := s.rooms.RequireMember(ctx, roomID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRoomID(ctx, roomID, perPage, offset)
}

// Update replaces an expense and its full split set atomically
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}
	if existing.Pinned {
		return nil, ErrPinnedRental
	}
	if err := s.requireEditor(ctx, existing, userID); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, ErrEmptyTitle
	}
	if req.AmountCents < 0 {
		return nil, split.ErrNegativeAmount
	}

	shares, err := s.resolveShares(req.AmountCents, req.SplitType, req.MemberIDs, req.Splits)
	if err != nil {
		return nil, err
	}

	existing.Title = req.Title
	existing.AmountCents = req.AmountCents
	if req.PaidByUserID != uuid.Nil {
		existing.PaidByUserID = req.PaidByUserID
	}
	if req.ReceiptPath != nil {
		existing.ReceiptPath = req.ReceiptPath
	}

	if err := s.repo.UpsertWithSplits(ctx, existing, shares); err != nil {
		return nil, err
	}

	s.invalidate(ctx, existing.RoomID)
	return s.GetByID(ctx, id)
}

// Delete removes an expense and its splits
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrExpenseNotFound
	}
	if existing.Pinned {
		return ErrPinnedRental
	}
	if err := s.requireEditor(ctx, existing, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrExpenseNotFound
		}
		return err
	}

	s.invalidate(ctx, existing.RoomID)
	return nil
}

// resolveShares turns a split request into concrete shares: computed for
// EQUAL, validated against the sum invariant for EXACT
func (s *Service) resolveShares(amountCents int64, splitType SplitType, memberIDs []uuid.UUID, shares []split.Share) ([]split.Share, error) {
	switch splitType {
	case SplitTypeEqual:
		if len(shares) > 0 {
			return nil, ErrInvalidSplit
		}
		return split.Equal(amountCents, memberIDs)
	case SplitTypeExact:
		if len(memberIDs) > 0 {
			return nil, ErrInvalidSplit
		}
		if err := split.ValidateExact(amountCents, shares); err != nil {
			return nil, err
		}
		return shares, nil
	default:
		return nil, ErrInvalidSplit
	}
}

// requireEditor allows the payer, the creator, or the room admin to mutate
func (s *Service) requireEditor(ctx context.Context, exp *Expense, userID uuid.UUID) error {
	if exp.PaidByUserID == userID || exp.CreatedByUserID == userID {
		return nil
	}
	if err := s.rooms.RequireAdmin(ctx, exp.RoomID, userID); err != nil {
		if errors.Is(err, room.ErrNotAdmin) || errors.Is(err, room.ErrNotMember) {
			return ErrNotAuthorized
		}
		return err
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, roomID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, roomID)
	}
}
