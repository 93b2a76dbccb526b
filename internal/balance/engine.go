package balance

import (
	"sort"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense/split"
)

// ExpenseLine is the slice of an expense the engine needs: who fronted the
// money and how the cost is divided.
type ExpenseLine struct {
	PayerID     uuid.UUID
	AmountCents int64
	Splits      []split.Share
}

// Transfer is one suggested payment that settles part of the room's debt.
type Transfer struct {
	FromUserID  uuid.UUID `json:"from_user_id"`
	ToUserID    uuid.UUID `json:"to_user_id"`
	AmountCents int64     `json:"amount_cents"`
}

// ComputeNetBalances reduces a set of expenses to each member's net
// position. For every expense the payer is credited the full amount and
// every split holder is debited their share, so the payer's own share nets
// out automatically when they appear in the split set.
//
// Sign convention: positive = this member owes money, negative = this
// member is owed money, zero = settled. The values always sum to zero
// because every cent is credited and debited exactly once.
func ComputeNetBalances(expenses []ExpenseLine) map[uuid.UUID]int64 {
	net := make(map[uuid.UUID]int64)

	for _, exp := range expenses {
		net[exp.PayerID] -= exp.AmountCents
		for _, s := range exp.Splits {
			net[s.UserID] += s.AmountCents
		}
	}

	return net
}

// ComputeSettlements reduces net balances to a list of pairwise transfers
// using greedy largest-debtor / largest-creditor matching. The result is
// always correct (transfer amounts sum to the total owed) and always
// terminates, but is a heuristic: it does not guarantee the minimum
// possible number of transfers.
func ComputeSettlements(net map[uuid.UUID]int64) []Transfer {
	type stake struct {
		userID uuid.UUID
		amount int64
	}

	// Collect in sorted-key order so equal amounts keep a stable,
	// deterministic order across runs.
	ids := make([]uuid.UUID, 0, len(net))
	for id := range net {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var debtors, creditors []stake
	for _, id := range ids {
		switch v := net[id]; {
		case v > 0:
			debtors = append(debtors, stake{id, v})
		case v < 0:
			creditors = append(creditors, stake{id, -v})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })

	var transfers []Transfer
	i, j := 0, 0

	for i < len(debtors) && j < len(creditors) {
		pay := debtors[i].amount
		if creditors[j].amount < pay {
			pay = creditors[j].amount
		}

		if pay > 0 {
			transfers = append(transfers, Transfer{
				FromUserID:  debtors[i].userID,
				ToUserID:    creditors[j].userID,
				AmountCents: pay,
			})
		}

		debtors[i].amount -= pay
		creditors[j].amount -= pay

		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}

	return transfers
}
