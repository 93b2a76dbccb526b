package balance

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense/split"
)

var (
	alice = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	carol = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	dave  = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func TestComputeNetBalancesSingleExpense(t *testing.T) {
	expenses := []ExpenseLine{
		{
			PayerID:     alice,
			AmountCents: 900,
			Splits: []split.Share{
				{UserID: alice, AmountCents: 300},
				{UserID: bob, AmountCents: 300},
				{UserID: carol, AmountCents: 300},
			},
		},
	}

	net := ComputeNetBalances(expenses)

	want := map[uuid.UUID]int64{alice: -600, bob: 300, carol: 300}
	if !reflect.DeepEqual(net, want) {
		t.Fatalf("expected %v, got %v", want, net)
	}
}

func TestComputeNetBalancesSumToZero(t *testing.T) {
	tests := []struct {
		name     string
		expenses []ExpenseLine
	}{
		{
			name:     "no expenses",
			expenses: nil,
		},
		{
			name: "payer outside the split set",
			expenses: []ExpenseLine{
				{
					PayerID:     dave,
					AmountCents: 1000,
					Splits: []split.Share{
						{UserID: alice, AmountCents: 334},
						{UserID: bob, AmountCents: 333},
						{UserID: carol, AmountCents: 333},
					},
				},
			},
		},
		{
			name: "several expenses with different payers",
			expenses: []ExpenseLine{
				{
					PayerID:     alice,
					AmountCents: 234200,
					Splits: []split.Share{
						{UserID: alice, AmountCents: 78067},
						{UserID: bob, AmountCents: 78067},
						{UserID: carol, AmountCents: 78066},
					},
				},
				{
					PayerID:     bob,
					AmountCents: 4501,
					Splits: []split.Share{
						{UserID: alice, AmountCents: 2251},
						{UserID: carol, AmountCents: 2250},
					},
				},
				{
					PayerID:     carol,
					AmountCents: 99,
					Splits: []split.Share{
						{UserID: carol, AmountCents: 99},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := ComputeNetBalances(tt.expenses)
			var sum int64
			for _, v := range net {
				sum += v
			}
			if sum != 0 {
				t.Fatalf("net balances sum to %d, expected 0", sum)
			}
		})
	}
}

func TestComputeSettlementsExample(t *testing.T) {
	net := map[uuid.UUID]int64{alice: -600, bob: 300, carol: 300}

	transfers := ComputeSettlements(net)

	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(transfers))
	}
	for _, tr := range transfers {
		if tr.ToUserID != alice {
			t.Fatalf("expected all transfers to go to the creditor, got %+v", tr)
		}
		if tr.AmountCents != 300 {
			t.Fatalf("expected 300 cent transfers, got %+v", tr)
		}
	}
	if transfers[0].FromUserID == transfers[1].FromUserID {
		t.Fatalf("both transfers came from the same debtor")
	}
}

func TestComputeSettlementsConservation(t *testing.T) {
	tests := []struct {
		name string
		net  map[uuid.UUID]int64
	}{
		{
			name: "empty",
			net:  map[uuid.UUID]int64{},
		},
		{
			name: "all settled",
			net:  map[uuid.UUID]int64{alice: 0, bob: 0},
		},
		{
			name: "one debtor one creditor",
			net:  map[uuid.UUID]int64{alice: -500, bob: 500},
		},
		{
			name: "uneven amounts",
			net:  map[uuid.UUID]int64{alice: -78067, bob: 78066, carol: -2250, dave: 2251},
		},
		{
			name: "settled member mixed in",
			net:  map[uuid.UUID]int64{alice: -100, bob: 100, carol: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := ComputeSettlements(tt.net)

			var owed, transferred int64
			for _, v := range tt.net {
				if v > 0 {
					owed += v
				}
			}
			for _, tr := range transfers {
				if tr.AmountCents <= 0 {
					t.Fatalf("emitted a non-positive transfer: %+v", tr)
				}
				if tr.FromUserID == tr.ToUserID {
					t.Fatalf("emitted a self transfer: %+v", tr)
				}
				if tt.net[tr.FromUserID] <= 0 {
					t.Fatalf("transfer from a non-debtor: %+v", tr)
				}
				if tt.net[tr.ToUserID] >= 0 {
					t.Fatalf("transfer to a non-creditor: %+v", tr)
				}
				transferred += tr.AmountCents
			}
			if transferred != owed {
				t.Fatalf("transfers sum to %d, expected %d", transferred, owed)
			}
		})
	}
}

func TestComputeSettlementsIdempotent(t *testing.T) {
	net := map[uuid.UUID]int64{alice: -78067, bob: 78066, carol: -2250, dave: 2251}

	first := ComputeSettlements(net)
	for i := 0; i < 5; i++ {
		again := ComputeSettlements(net)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: settlements changed from %v to %v", i, first, again)
		}
	}
}

func TestComputeSettlementsSettledMemberAppearsNowhere(t *testing.T) {
	net := map[uuid.UUID]int64{alice: -300, bob: 300, carol: 0}

	for _, tr := range ComputeSettlements(net) {
		if tr.FromUserID == carol || tr.ToUserID == carol {
			t.Fatalf("settled member appeared in transfer %+v", tr)
		}
	}
}
