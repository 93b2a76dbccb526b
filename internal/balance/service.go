package balance

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense"
	"github.com/umerqur/cottagetrip/internal/room"
	"github.com/umerqur/cottagetrip/internal/user"
)

// Service computes the "who owes whom" summary for a room. The summary is
// always recomputed from the full expense list, never maintained
// incrementally.
type Service struct {
	expenses *expense.Repository
	rooms    *room.Service
	users    *user.Repository
	cache    *Cache
}

// NewService creates a new balance service
func NewService(expenses *expense.Repository, rooms *room.Service, users *user.Repository, cache *Cache) *Service {
	return &Service{
		expenses: expenses,
		rooms:    rooms,
		users:    users,
		cache:    cache,
	}
}

// Summary computes (or serves from cache) a room's balance summary
func (s *Service) Summary(ctx context.Context, roomID, userID uuid.UUID) (*RoomBalanceSummary, error) {
	if err := s.rooms.RequireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}

	if cached := s.cache.Get(ctx, roomID); cached != nil {
		return cached, nil
	}

	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	all, err := s.expenses.ListWithSplitsByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var totalSpent int64
	lines := make([]ExpenseLine, len(all))
	for i, ews := range all {
		totalSpent += ews.Expense.AmountCents
		lines[i] = ExpenseLine{
			PayerID:     ews.Expense.PaidByUserID,
			AmountCents: ews.Expense.AmountCents,
			Splits:      ews.Shares(),
		}
	}

	net := ComputeNetBalances(lines)
	transfers := ComputeSettlements(net)

	names, err := s.memberNames(ctx, net)
	if err != nil {
		return nil, err
	}

	summary := &RoomBalanceSummary{
		RoomID:          roomID,
		Currency:        rm.Currency,
		TotalSpentCents: totalSpent,
		Balances:        make([]MemberBalance, 0, len(net)),
		Transfers:       make([]TransferSuggestion, 0, len(transfers)),
	}

	ids := make([]uuid.UUID, 0, len(net))
	for id := range net {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	for _, id := range ids {
		summary.Balances = append(summary.Balances, MemberBalance{
			UserID:   id,
			Name:     names[id],
			NetCents: net[id],
		})
	}

	for _, t := range transfers {
		summary.Transfers = append(summary.Transfers, TransferSuggestion{
			FromUserID:  t.FromUserID,
			FromName:    names[t.FromUserID],
			ToUserID:    t.ToUserID,
			ToName:      names[t.ToUserID],
			AmountCents: t.AmountCents,
		})
	}

	s.cache.Set(ctx, roomID, summary)
	return summary, nil
}

func (s *Service) memberNames(ctx context.Context, net map[uuid.UUID]int64) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(net))
	for id := range net {
		ids = append(ids, id)
	}

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(users))
	for id, u := range users {
		names[id] = u.Name
	}
	return names, nil
}
