package rental

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense"
	"github.com/umerqur/cottagetrip/internal/expense/split"
	"github.com/umerqur/cottagetrip/internal/room"
)

var (
	ErrRentalNotFound  = errors.New("rental not found")
	ErrPaymentNotFound = errors.New("rental payment not found")
	ErrNotAuthorized   = errors.New("not authorized to update this payment")
	ErrNegativeAmount  = errors.New("rental amount cannot be negative")
)

// Service handles the pinned cottage-rental lifecycle. Every room carries at
// most one pinned rental expense; its split set drives the per-member
// payment rows, never the other way around.
type Service struct {
	repo     *Repository
	expenses *expense.Repository
	rooms    *room.Service
	cache    expense.BalanceCache
}

// NewService creates a new rental service
func NewService(repo *Repository, expenses *expense.Repository, rooms *room.Service, cache expense.BalanceCache) *Service {
	return &Service{repo: repo, expenses: expenses, rooms: rooms, cache: cache}
}

// Ensure returns the room's pinned rental, creating it on first access with
// a zero amount split equally across the current members. Creation is keyed
// on a partial unique index, so concurrent first calls converge on a single
// expense.
func (s *Service) Ensure(ctx context.Context, roomID, userID uuid.UUID) (*expense.ExpenseWithSplits, []*Payment, error) {
	if err := s.rooms.RequireMember(ctx, roomID, userID); err != nil {
		return nil, nil, err
	}

	exp, err := s.expenses.GetPinnedRental(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	if exp == nil {
		exp, err = s.create(ctx, roomID, userID)
		if err != nil {
			return nil, nil, err
		}
	}

	return s.load(ctx, exp)
}

func (s *Service) create(ctx context.Context, roomID, userID uuid.UUID) (*expense.Expense, error) {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	adminID, err := s.rooms.AdminID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	memberIDs, err := s.rooms.ListMemberIDs(ctx, roomID)
	if err != nil {
		return nil, err
	}
	shares, err := split.Equal(0, memberIDs)
	if err != nil {
		return nil, err
	}

	exp := &expense.Expense{
		ID:              uuid.New(),
		RoomID:          roomID,
		Title:           "Cottage rental",
		AmountCents:     0,
		Currency:        rm.Currency,
		PaidByUserID:    adminID,
		CreatedByUserID: userID,
		IsCottageRental: true,
		Pinned:          true,
	}

	created, err := s.repo.CreatePinned(ctx, exp, shares)
	if err != nil {
		return nil, err
	}
	if !created {
		// Another request created the rental first; use its row.
		exp, err = s.expenses.GetPinnedRental(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if exp == nil {
			return nil, ErrRentalNotFound
		}
	}

	return exp, nil
}

// SetAmount changes the rental total and recomputes equal shares over the
// members currently in the split set, in their existing order. Payment
// amounts follow the new shares; paid flags are untouched. Admin only.
func (s *Service) SetAmount(ctx context.Context, roomID, userID uuid.UUID, amountCents int64) (*expense.ExpenseWithSplits, []*Payment, error) {
	if amountCents < 0 {
		return nil, nil, ErrNegativeAmount
	}
	if err := s.rooms.RequireAdmin(ctx, roomID, userID); err != nil {
		return nil, nil, err
	}

	exp, err := s.expenses.GetPinnedRental(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	if exp == nil {
		return nil, nil, ErrRentalNotFound
	}

	splits, err := s.expenses.GetSplitsByExpenseID(ctx, exp.ID)
	if err != nil {
		return nil, nil, err
	}
	memberIDs := make([]uuid.UUID, len(splits))
	for i, sp := range splits {
		memberIDs[i] = sp.UserID
	}

	return s.resync(ctx, exp, amountCents, memberIDs)
}

// Rebalance re-splits the current rental amount equally across the room's
// full membership, picking up members added since the last split. Admin
// only.
func (s *Service) Rebalance(ctx context.Context, roomID, userID uuid.UUID) (*expense.ExpenseWithSplits, []*Payment, error) {
	if err := s.rooms.RequireAdmin(ctx, roomID, userID); err != nil {
		return nil, nil, err
	}

	exp, err := s.expenses.GetPinnedRental(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	if exp == nil {
		return nil, nil, ErrRentalNotFound
	}

	memberIDs, err := s.rooms.ListMemberIDs(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	return s.resync(ctx, exp, exp.AmountCents, memberIDs)
}

func (s *Service) resync(ctx context.Context, exp *expense.Expense, amountCents int64, memberIDs []uuid.UUID) (*expense.ExpenseWithSplits, []*Payment, error) {
	shares, err := split.Equal(amountCents, memberIDs)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.ReplaceSplitsAndResync(ctx, exp.ID, exp.RoomID, amountCents, shares); err != nil {
		return nil, nil, err
	}
	exp.AmountCents = amountCents

	if s.cache != nil {
		s.cache.Invalidate(ctx, exp.RoomID)
	}

	return s.load(ctx, exp)
}

// Payments lists the room's rental payment rows
func (s *Service) Payments(ctx context.Context, roomID, userID uuid.UUID) ([]*Payment, error) {
	if err := s.rooms.RequireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}

	exp, err := s.expenses.GetPinnedRental(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, ErrRentalNotFound
	}

	return s.repo.GetPayments(ctx, roomID)
}

// SetPaymentStatus marks a member's rental share paid or unpaid. Members may
// update their own row; the room admin may update anyone's.
func (s *Service) SetPaymentStatus(ctx context.Context, roomID, callerID, targetID uuid.UUID, paid bool) (*Payment, error) {
	if err := s.rooms.RequireMember(ctx, roomID, callerID); err != nil {
		return nil, err
	}
	if callerID != targetID {
		if err := s.rooms.RequireAdmin(ctx, roomID, callerID); err != nil {
			if errors.Is(err, room.ErrNotAdmin) {
				return nil, ErrNotAuthorized
			}
			return nil, err
		}
	}

	payment, err := s.repo.SetPaymentStatus(ctx, roomID, targetID, paid)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	return payment, nil
}

func (s *Service) load(ctx context.Context, exp *expense.Expense) (*expense.ExpenseWithSplits, []*Payment, error) {
	splits, err := s.expenses.GetSplitsByExpenseID(ctx, exp.ID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.repo.GetPayments(ctx, exp.RoomID)
	if err != nil {
		return nil, nil, err
	}
	return &expense.ExpenseWithSplits{Expense: exp, Splits: splits}, payments, nil
}
